package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.LookupRepository = (*LookupRepo)(nil)

// LookupRepo tablas de consulta.
type LookupRepo struct {
	c conn
}

// Exists indica si el ID existe en la tabla de consulta.
func (r *LookupRepo) Exists(ctx context.Context, table entity.LookupTable, id int64) (bool, error) {
	switch table {
	case entity.LookupDepartments, entity.LookupDivisions, entity.LookupUnits, entity.LookupSuppliers:
	default:
		return false, fmt.Errorf("lookup: tabla desconocida %q", table)
	}
	var n int
	if err := r.c.get(ctx, &n, `SELECT COUNT(*) FROM `+string(table)+` WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return n > 0, nil
}

// Departments lista de departamentos por nombre.
func (r *LookupRepo) Departments(ctx context.Context) ([]*entity.Department, error) {
	list := make([]*entity.Department, 0)
	if err := r.c.selectAll(ctx, &list, `SELECT id, code, name FROM departments ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return list, nil
}
