package entity

import "github.com/shopspring/decimal"

// DefaultMinStock umbral de stock bajo cuando el artículo no define MinStock.
var DefaultMinStock = decimal.NewFromInt(10)

// Item representa un artículo del catálogo. ID y Code son inmutables; Code es único.
type Item struct {
	ID       int64            `db:"id"`
	Code     string           `db:"code"`
	Name     string           `db:"name"`
	Unit     string           `db:"unit"`
	Price    *decimal.Decimal `db:"price"`
	Category *string          `db:"category"`
	MinStock *decimal.Decimal `db:"min_stock"`
}

// Threshold devuelve MinStock o el umbral por defecto.
func (i *Item) Threshold() decimal.Decimal {
	if i.MinStock != nil {
		return *i.MinStock
	}
	return DefaultMinStock
}
