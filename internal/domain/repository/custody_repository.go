package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// CustodyRepository puerto para custodias.
type CustodyRepository interface {
	Create(ctx context.Context, c *entity.Custody) error
	ListByDepartment(ctx context.Context, departmentID int64, status entity.CustodyStatus) ([]*entity.Custody, error)
	// MarkByDocument pasa a status las custodias activas creadas por el documento; devuelve cuántas cambió.
	MarkByDocument(ctx context.Context, docID int64, status entity.CustodyStatus) (int64, error)
}
