package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBalance saldo materializado por (almacén, artículo). Único por par.
// Solo el servicio de contabilización lo modifica.
type InventoryBalance struct {
	ID          int64           `db:"id"`
	WarehouseID int64           `db:"warehouse_id"`
	ItemID      int64           `db:"item_id"`
	Quantity    decimal.Decimal `db:"quantity"`
	LastUpdated time.Time       `db:"last_updated"`
}
