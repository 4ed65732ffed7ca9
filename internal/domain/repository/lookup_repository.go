package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// LookupRepository tablas de consulta (departamentos, divisiones, unidades, proveedores).
type LookupRepository interface {
	Exists(ctx context.Context, table entity.LookupTable, id int64) (bool, error)
	Departments(ctx context.Context) ([]*entity.Department, error)
}
