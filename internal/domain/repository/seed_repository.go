package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// SeedRepository operaciones de carga inicial. Todas toleran filas ya existentes
// (ON CONFLICT DO NOTHING sobre las claves únicas).
type SeedRepository interface {
	CountItems(ctx context.Context) (int, error)
	// InsertCatalog inserta el catálogo completo en una sola transacción.
	InsertCatalog(ctx context.Context, c *entity.Catalog) error
	ItemIDs(ctx context.Context) ([]int64, error)
	WarehouseIDsByCode(ctx context.Context, codes []string) ([]int64, error)
	// InsertOpeningBalances inserta un lote de saldos iniciales en una transacción.
	InsertOpeningBalances(ctx context.Context, balances []*entity.InventoryBalance) error
}
