package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción (o al almacén, fuera de ella).
type Repos struct {
	Documents  repository.DocumentRepository
	Movements  repository.MovementRepository
	Balances   repository.BalanceRepository
	Items      repository.ItemRepository
	Warehouses repository.WarehouseRepository
	Lookups    repository.LookupRepository
	Custody    repository.CustodyRepository
	Requests   repository.RequestRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
	// RunReadOnly agrupa varias lecturas para que observen un mismo estado confirmado.
	RunReadOnly(ctx context.Context, fn func(repos Repos) error) error
}

// VoucherGenerator genera el comprobante imprimible (PDF) de un documento contabilizado.
type VoucherGenerator interface {
	GenerateVoucherPDF(
		ctx context.Context,
		doc *entity.Document,
		warehouse *entity.Warehouse,
		lines []*entity.DocumentLine,
	) ([]byte, error)
}
