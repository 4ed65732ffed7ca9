package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// BalanceRepository puerto para saldos por (almacén, artículo).
// Usado dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// Get devuelve nil, nil si no existe la fila.
	Get(ctx context.Context, warehouseID, itemID int64) (*entity.InventoryBalance, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción
	// (SELECT FOR UPDATE donde el motor lo soporta).
	GetForUpdate(ctx context.Context, warehouseID, itemID int64) (*entity.InventoryBalance, error)
	Create(ctx context.Context, balance *entity.InventoryBalance) error
	Update(ctx context.Context, balance *entity.InventoryBalance) error
	// Snapshot une todos los artículos con su saldo en el almacén.
	Snapshot(ctx context.Context, warehouseID int64) ([]*entity.StockLine, error)
}
