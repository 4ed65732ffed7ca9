package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestItemDTO renglón de una solicitud.
type RequestItemDTO struct {
	ItemID   int64           `json:"item_id" validate:"required,gt=0"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CreateRequestRequest body para POST /api/requests.
type CreateRequestRequest struct {
	DepartmentID int64            `json:"department_id" validate:"required,gt=0"`
	RequestedBy  string           `json:"requested_by" validate:"required,max=200"`
	Notes        string           `json:"notes" validate:"omitempty,max=1000"`
	Items        []RequestItemDTO `json:"items" validate:"required,min=1,dive"`
}

// ProcessRequestRequest body para aprobar/rechazar.
type ProcessRequestRequest struct {
	ProcessedBy string `json:"processed_by" validate:"required,max=200"`
}

// RequestResponse salida de una solicitud.
type RequestResponse struct {
	ID           int64            `json:"id"`
	DepartmentID int64            `json:"department_id"`
	Items        []RequestItemDTO `json:"items"`
	Status       string           `json:"status"`
	RequestedBy  string           `json:"requested_by"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	ProcessedAt  *time.Time       `json:"processed_at,omitempty"`
	ProcessedBy  string           `json:"processed_by,omitempty"`
}

// CustodyResponse salida de una custodia.
type CustodyResponse struct {
	ID           int64           `json:"id"`
	ItemID       int64           `json:"item_id"`
	DepartmentID int64           `json:"department_id"`
	EmployeeID   string          `json:"employee_id,omitempty"`
	EmployeeName string          `json:"employee_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReceivedDate time.Time       `json:"received_date"`
	Condition    string          `json:"condition"`
	Status       string          `json:"status"`
	DocID        *int64          `json:"doc_id,omitempty"`
}
