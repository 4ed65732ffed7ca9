package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// StockStatus clasificación del saldo frente al umbral del artículo.
type StockStatus string

const (
	StockStatusLow    StockStatus = "low"
	StockStatusNormal StockStatus = "normal"
)

// SignedQuantity devuelve la cantidad con el signo del tipo de documento:
// positiva para entradas, negativa para salidas.
func SignedQuantity(docType entity.DocumentType, qty decimal.Decimal) decimal.Decimal {
	if docType == entity.DocumentTypeIssuance {
		return qty.Neg()
	}
	return qty
}

// ApplyMovement calcula el nuevo saldo. No verifica suficiencia: una salida mayor al saldo
// produce un saldo negativo (señal de faltante para los reportes).
func ApplyMovement(current decimal.Decimal, docType entity.DocumentType, qty decimal.Decimal) decimal.Decimal {
	return current.Add(SignedQuantity(docType, qty))
}

// Classify devuelve low cuando stock <= umbral.
func Classify(stock, threshold decimal.Decimal) StockStatus {
	if stock.LessThanOrEqual(threshold) {
		return StockStatusLow
	}
	return StockStatusNormal
}
