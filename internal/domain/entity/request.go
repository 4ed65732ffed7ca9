package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus estado de una solicitud de material.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// RequestItem renglón solicitado.
type RequestItem struct {
	ItemID   int64           `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// RequestItems se persiste como JSON en una sola columna.
type RequestItems []RequestItem

// Value implementa driver.Valuer.
func (r RequestItems) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implementa sql.Scanner.
func (r *RequestItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = RequestItems{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("request items: tipo no soportado %T", src)
	}
	return json.Unmarshal(raw, r)
}

// Request solicitud de un departamento. pending → approved | rejected; terminal después.
type Request struct {
	ID           int64         `db:"id"`
	DepartmentID int64         `db:"department_id"`
	Items        RequestItems  `db:"items"`
	Status       RequestStatus `db:"status"`
	RequestedBy  string        `db:"requested_by"`
	Notes        *string       `db:"notes"`
	CreatedAt    time.Time     `db:"created_at"`
	ProcessedAt  *time.Time    `db:"processed_at"`
	ProcessedBy  *string       `db:"processed_by"`
}
