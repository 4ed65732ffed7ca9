package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement hecho de línea: un renglón por línea de documento. Solo se agrega, nunca se modifica.
// Quantity siempre es positiva; el signo lo da Type.
type Movement struct {
	ID           int64           `db:"id"`
	DocID        int64           `db:"doc_id"`
	ItemID       int64           `db:"item_id"`
	Type         DocumentType    `db:"type"`
	Quantity     decimal.Decimal `db:"quantity"`
	Date         time.Time       `db:"date"`
	WarehouseID  int64           `db:"warehouse_id"`
	DepartmentID *int64          `db:"department_id"`
}
