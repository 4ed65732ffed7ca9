package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, code, name, address, is_active, parent_id`

// WarehouseRepo implementación de WarehouseRepository.
type WarehouseRepo struct {
	c conn
}

// GetByID obtiene un almacén; nil, nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var w entity.Warehouse
	ok, err := r.c.getOne(ctx, &w, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, wrap("get warehouse", err)
	}
	return &w, nil
}

// GetByCode obtiene un almacén por código; nil, nil si no existe.
func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	ok, err := r.c.getOne(ctx, &w, `SELECT `+warehouseColumns+` FROM warehouses WHERE code = ?`, code)
	if err != nil || !ok {
		return nil, wrap("get warehouse by code", err)
	}
	return &w, nil
}

// List todos los almacenes en orden de creación.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	list := make([]*entity.Warehouse, 0)
	if err := r.c.selectAll(ctx, &list, `SELECT `+warehouseColumns+` FROM warehouses ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return list, nil
}

// ListActive solo los almacenes activos.
func (r *WarehouseRepo) ListActive(ctx context.Context) ([]*entity.Warehouse, error) {
	list := make([]*entity.Warehouse, 0)
	err := r.c.selectAll(ctx, &list, `SELECT `+warehouseColumns+` FROM warehouses WHERE is_active = ? ORDER BY id`, true)
	if err != nil {
		return nil, fmt.Errorf("list active warehouses: %w", err)
	}
	return list, nil
}
