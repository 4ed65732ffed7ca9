package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.CustodyRepository = (*CustodyRepo)(nil)

// CustodyRepo implementación de CustodyRepository.
type CustodyRepo struct {
	c conn
}

// Create inserta la custodia y asigna su ID.
func (r *CustodyRepo) Create(ctx context.Context, c *entity.Custody) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO custody (item_id, department_id, employee_id, employee_name, quantity,
			received_date, condition, status, doc_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		c.ItemID, c.DepartmentID, c.EmployeeID, c.EmployeeName, c.Quantity,
		c.ReceivedDate, c.Condition, string(c.Status), c.DocID,
	)
	if err != nil {
		return fmt.Errorf("insert custody: %w", err)
	}
	c.ID = id
	return nil
}

// ListByDepartment custodias del departamento en el estado dado, más recientes primero.
func (r *CustodyRepo) ListByDepartment(ctx context.Context, departmentID int64, status entity.CustodyStatus) ([]*entity.Custody, error) {
	list := make([]*entity.Custody, 0)
	err := r.c.selectAll(ctx, &list, `
		SELECT id, item_id, department_id, employee_id, employee_name, quantity,
			received_date, condition, status, doc_id
		FROM custody
		WHERE department_id = ? AND status = ?
		ORDER BY received_date DESC, id DESC`, departmentID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list custody: %w", err)
	}
	return list, nil
}

// MarkByDocument cambia el estado de las custodias activas del documento.
func (r *CustodyRepo) MarkByDocument(ctx context.Context, docID int64, status entity.CustodyStatus) (int64, error) {
	res, err := r.c.exec(ctx, `
		UPDATE custody SET status = ?
		WHERE doc_id = ? AND status = ?`,
		string(status), docID, string(entity.CustodyStatusActive))
	if err != nil {
		return 0, fmt.Errorf("mark custody: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark custody: %w", err)
	}
	return n, nil
}
