package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, department_id, items, status, requested_by, notes, created_at, processed_at, processed_by`

// RequestRepo implementación de RequestRepository. Los renglones se guardan como JSON.
type RequestRepo struct {
	c conn
}

// Create inserta la solicitud y asigna su ID.
func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO requests (department_id, items, status, requested_by, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		req.DepartmentID, req.Items, string(req.Status), req.RequestedBy, req.Notes, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	req.ID = id
	return nil
}

// GetByID obtiene la solicitud; nil, nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*entity.Request, error) {
	var req entity.Request
	ok, err := r.c.getOne(ctx, &req, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, wrap("get request", err)
	}
	return &req, nil
}

// ListByStatus solicitudes en el estado dado, más recientes primero.
func (r *RequestRepo) ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.Request, error) {
	list := make([]*entity.Request, 0)
	err := r.c.selectAll(ctx, &list,
		`SELECT `+requestColumns+` FROM requests WHERE status = ? ORDER BY created_at DESC, id DESC`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return list, nil
}

// Transition UPDATE condicional: solo cambia la fila si sigue en from.
func (r *RequestRepo) Transition(
	ctx context.Context,
	id int64,
	from, to entity.RequestStatus,
	by string,
	at time.Time,
) (bool, error) {
	res, err := r.c.exec(ctx, `
		UPDATE requests SET status = ?, processed_at = ?, processed_by = ?
		WHERE id = ? AND status = ?`,
		string(to), at, by, id, string(from))
	if err != nil {
		return false, fmt.Errorf("transition request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transition request: %w", err)
	}
	return n == 1, nil
}
