package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest renglón del body de POST /api/documents.
// item_id nulo = renglón todavía sin artículo; se omite al contabilizar.
type DocumentLineRequest struct {
	ItemID   *int64          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CustodyAssignmentRequest asignación de custodia para una salida.
type CustodyAssignmentRequest struct {
	EmployeeID   string `json:"employee_id" validate:"omitempty,max=50"`
	EmployeeName string `json:"employee_name" validate:"required,max=200"`
	Condition    string `json:"condition" validate:"omitempty,max=100"`
}

// PostDocumentRequest body para POST /api/documents.
type PostDocumentRequest struct {
	DocNumber     string                    `json:"doc_number" validate:"omitempty,max=50"`
	Type          string                    `json:"type" validate:"required,oneof=entry issuance"`
	Date          *time.Time                `json:"date"`
	WarehouseID   int64                     `json:"warehouse_id" validate:"required,gt=0"`
	DepartmentID  *int64                    `json:"department_id" validate:"omitempty,gt=0"`
	DivisionID    *int64                    `json:"division_id" validate:"omitempty,gt=0"`
	UnitID        *int64                    `json:"unit_id" validate:"omitempty,gt=0"`
	SupplierID    *int64                    `json:"supplier_id" validate:"omitempty,gt=0"`
	RecipientName string                    `json:"recipient_name" validate:"omitempty,max=200"`
	EntryType     string                    `json:"entry_type" validate:"omitempty,max=50"`
	Notes         string                    `json:"notes" validate:"omitempty,max=1000"`
	Lines         []DocumentLineRequest     `json:"lines" validate:"required,min=1"`
	Custody       *CustodyAssignmentRequest `json:"custody"`
}

// ReverseDocumentRequest body opcional para POST /api/documents/:id/reverse.
type ReverseDocumentRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

// PostDocumentResponse salida de una contabilización.
type PostDocumentResponse struct {
	DocumentID int64 `json:"document_id"`
}

// DocumentResponse cabecera de documento.
type DocumentResponse struct {
	ID            int64            `json:"id"`
	DocNumber     string           `json:"doc_number"`
	Type          string           `json:"type"`
	Date          time.Time        `json:"date"`
	WarehouseID   int64            `json:"warehouse_id"`
	DepartmentID  *int64           `json:"department_id,omitempty"`
	DivisionID    *int64           `json:"division_id,omitempty"`
	UnitID        *int64           `json:"unit_id,omitempty"`
	SupplierID    *int64           `json:"supplier_id,omitempty"`
	RecipientName string           `json:"recipient_name,omitempty"`
	EntryType     string           `json:"entry_type,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Status        string           `json:"status"`
	ItemCount     int              `json:"item_count"`
	TotalValue    *decimal.Decimal `json:"total_value,omitempty"`
	ReversesDocID *int64           `json:"reverses_doc_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// DocumentLineResponse renglón de un documento con datos del artículo.
type DocumentLineResponse struct {
	ItemID    int64            `json:"item_id"`
	ItemCode  string           `json:"item_code"`
	ItemName  string           `json:"item_name"`
	Unit      string           `json:"unit"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// DocumentDetailResponse cabecera + renglones.
type DocumentDetailResponse struct {
	Document DocumentResponse       `json:"document"`
	Lines    []DocumentLineResponse `json:"lines"`
}

// InventorySnapshotRow artículo con su saldo en un almacén.
type InventorySnapshotRow struct {
	ItemID      int64            `json:"item_id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Unit        string           `json:"unit"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    decimal.Decimal  `json:"min_stock"`
	Stock       decimal.Decimal  `json:"stock"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
	TotalValue  decimal.Decimal  `json:"total_value"` // Stock * Price (0 sin precio)
	Status      string           `json:"status"`      // low | normal
}

// ItemMovement fila del historial de movimientos lista para mostrar.
type ItemMovement struct {
	ID             int64           `json:"id"`
	DocID          int64           `json:"doc_id"`
	DocNumber      string          `json:"doc_number"`
	Date           time.Time       `json:"date"`
	Type           string          `json:"type"`
	ItemID         int64           `json:"item_id"`
	ItemCode       string          `json:"item_code"`
	ItemName       string          `json:"item_name"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	DepartmentName string          `json:"department_name"`
	Balance        decimal.Decimal `json:"balance"` // saldo del artículo inmediatamente después del movimiento
}

// MovementListResponse página del historial de movimientos. Page.Limit 0 = hasta el final.
type MovementListResponse struct {
	Movements []ItemMovement `json:"movements"`
	Page      PageResponse   `json:"page"`
}

// StockResponse saldo puntual.
type StockResponse struct {
	WarehouseID int64           `json:"warehouse_id"`
	ItemID      int64           `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}
