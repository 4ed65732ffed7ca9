package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, doc_number, type, date, warehouse_id, department_id, division_id, unit_id,
	supplier_id, recipient_name, entry_type, notes, status, item_count, total_value, reverses_doc_id, created_at`

// DocumentRepo implementación de DocumentRepository.
type DocumentRepo struct {
	c conn
}

// Create inserta la cabecera y asigna su ID.
// Un segundo documento que revierte al mismo original → domain.ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO documents (
			doc_number, type, date, warehouse_id, department_id, division_id, unit_id, supplier_id,
			recipient_name, entry_type, notes, status, item_count, total_value, reverses_doc_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		doc.DocNumber, doc.Type, doc.Date, doc.WarehouseID, doc.DepartmentID, doc.DivisionID, doc.UnitID,
		doc.SupplierID, doc.RecipientName, doc.EntryType, doc.Notes, doc.Status, doc.ItemCount,
		doc.TotalValue, doc.ReversesDocID, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: documento %s", domain.ErrDuplicate, doc.DocNumber)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	doc.ID = id
	return nil
}

// GetByID obtiene la cabecera; nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	var d entity.Document
	ok, err := r.c.getOne(ctx, &d, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, wrap("get document", err)
	}
	return &d, nil
}

// Lines renglones del documento en orden de contabilización, con los datos del artículo.
func (r *DocumentRepo) Lines(ctx context.Context, docID int64) ([]*entity.DocumentLine, error) {
	list := make([]*entity.DocumentLine, 0)
	err := r.c.selectAll(ctx, &list, `
		SELECT m.id AS movement_id, m.item_id,
			COALESCE(i.code, '') AS item_code,
			COALESCE(i.name, '') AS item_name,
			COALESCE(i.unit, '') AS item_unit,
			m.quantity, i.price AS unit_price
		FROM movements m
		LEFT JOIN items i ON i.id = m.item_id
		WHERE m.doc_id = ?
		ORDER BY m.id`, docID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	return list, nil
}
