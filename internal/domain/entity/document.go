package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento de inventario.
type DocumentType string

const (
	DocumentTypeEntry    DocumentType = "entry"    // entrada (suma)
	DocumentTypeIssuance DocumentType = "issuance" // salida / صرف (resta)
)

// Valid indica si el tipo es uno de los soportados.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeEntry || t == DocumentTypeIssuance
}

// Opposite devuelve el tipo contrario (usado por los documentos de reversa).
func (t DocumentType) Opposite() DocumentType {
	if t == DocumentTypeEntry {
		return DocumentTypeIssuance
	}
	return DocumentTypeEntry
}

// DocumentStatus estado del documento.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusApproved DocumentStatus = "approved"
)

// EntryTypeReversal marca los documentos compensatorios.
const EntryTypeReversal = "reversal"

// Document cabecera de un documento contabilizado. Inmutable tras su creación.
type Document struct {
	ID            int64            `db:"id"`
	DocNumber     string           `db:"doc_number"`
	Type          DocumentType     `db:"type"`
	Date          time.Time        `db:"date"`
	WarehouseID   int64            `db:"warehouse_id"`
	DepartmentID  *int64           `db:"department_id"`
	DivisionID    *int64           `db:"division_id"`
	UnitID        *int64           `db:"unit_id"`
	SupplierID    *int64           `db:"supplier_id"`
	RecipientName *string          `db:"recipient_name"`
	EntryType     *string          `db:"entry_type"`
	Notes         *string          `db:"notes"`
	Status        DocumentStatus   `db:"status"`
	ItemCount     int              `db:"item_count"`
	TotalValue    *decimal.Decimal `db:"total_value"`
	ReversesDocID *int64           `db:"reverses_doc_id"`
	CreatedAt     time.Time        `db:"created_at"`
}
