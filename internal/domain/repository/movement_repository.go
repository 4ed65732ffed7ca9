package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// MovementRepository puerto de persistencia para movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, mov *entity.Movement) error
	ListByDocument(ctx context.Context, docID int64) ([]*entity.Movement, error)
	// History une movimientos con artículos, documentos y departamentos, del más reciente al más antiguo.
	History(ctx context.Context, warehouseID int64, limit int) ([]*entity.MovementLine, error)
	CountByWarehouse(ctx context.Context, warehouseID int64) (int, error)
}
