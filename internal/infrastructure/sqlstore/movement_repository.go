package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository (solo inserción y lectura).
type MovementRepo struct {
	c conn
}

// Create inserta el movimiento y asigna su ID.
func (r *MovementRepo) Create(ctx context.Context, mov *entity.Movement) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO movements (doc_id, item_id, type, quantity, date, warehouse_id, department_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		mov.DocID, mov.ItemID, mov.Type, mov.Quantity, mov.Date, mov.WarehouseID, mov.DepartmentID,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	mov.ID = id
	return nil
}

// ListByDocument movimientos de un documento en orden de inserción.
func (r *MovementRepo) ListByDocument(ctx context.Context, docID int64) ([]*entity.Movement, error) {
	list := make([]*entity.Movement, 0)
	err := r.c.selectAll(ctx, &list, `
		SELECT id, doc_id, item_id, type, quantity, date, warehouse_id, department_id
		FROM movements WHERE doc_id = ? ORDER BY id`, docID)
	if err != nil {
		return nil, fmt.Errorf("list movements by document: %w", err)
	}
	return list, nil
}

// History movimientos del almacén del más reciente al más antiguo. limit <= 0 = todos.
func (r *MovementRepo) History(ctx context.Context, warehouseID int64, limit int) ([]*entity.MovementLine, error) {
	query, extra := withLimit(`
		SELECT m.id, m.doc_id, m.item_id, m.type, m.quantity, m.date, m.warehouse_id, m.department_id,
			COALESCE(i.code, '') AS item_code,
			COALESCE(i.name, '') AS item_name,
			COALESCE(i.unit, '') AS item_unit,
			COALESCE(d.doc_number, '') AS doc_number,
			COALESCE(dep.name, '') AS department_name
		FROM movements m
		LEFT JOIN items i ON i.id = m.item_id
		LEFT JOIN documents d ON d.id = m.doc_id
		LEFT JOIN departments dep ON dep.id = m.department_id
		WHERE m.warehouse_id = ?
		ORDER BY m.date DESC, m.id DESC`, limit, 0)

	list := make([]*entity.MovementLine, 0)
	if err := r.c.selectAll(ctx, &list, query, append([]any{warehouseID}, extra...)...); err != nil {
		return nil, fmt.Errorf("movement history: %w", err)
	}
	return list, nil
}

// CountByWarehouse total de movimientos del almacén.
func (r *MovementRepo) CountByWarehouse(ctx context.Context, warehouseID int64) (int, error) {
	var n int
	if err := r.c.get(ctx, &n, `SELECT COUNT(*) FROM movements WHERE warehouse_id = ?`, warehouseID); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
