package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLine artículo unido con su saldo en un almacén (LEFT JOIN: Quantity 0 si no hay fila).
type StockLine struct {
	Item
	Quantity    decimal.Decimal `db:"quantity"`
	LastUpdated *time.Time      `db:"last_updated"`
}

// MovementLine movimiento unido con artículo, documento y departamento.
// Las uniones faltantes llegan como cadena vacía.
type MovementLine struct {
	Movement
	ItemCode       string `db:"item_code"`
	ItemName       string `db:"item_name"`
	ItemUnit       string `db:"item_unit"`
	DocNumber      string `db:"doc_number"`
	DepartmentName string `db:"department_name"`
}

// DocumentLine renglón de un documento para detalle y comprobante.
type DocumentLine struct {
	MovementID int64            `db:"movement_id"`
	ItemID     int64            `db:"item_id"`
	ItemCode   string           `db:"item_code"`
	ItemName   string           `db:"item_name"`
	ItemUnit   string           `db:"item_unit"`
	Quantity   decimal.Decimal  `db:"quantity"`
	UnitPrice  *decimal.Decimal `db:"unit_price"`
}
