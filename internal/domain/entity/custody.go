package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustodyStatus estado de una custodia (عهدة).
type CustodyStatus string

const (
	CustodyStatusActive      CustodyStatus = "active"
	CustodyStatusTransferred CustodyStatus = "transferred"
	CustodyStatusReturned    CustodyStatus = "returned"
)

// Custody asignación de un artículo a un empleado con nombre dentro de un departamento.
type Custody struct {
	ID           int64           `db:"id"`
	ItemID       int64           `db:"item_id"`
	DepartmentID int64           `db:"department_id"`
	EmployeeID   *string         `db:"employee_id"`
	EmployeeName string          `db:"employee_name"`
	Quantity     decimal.Decimal `db:"quantity"`
	ReceivedDate time.Time       `db:"received_date"`
	Condition    string          `db:"condition"`
	Status       CustodyStatus   `db:"status"`
	DocID        *int64          `db:"doc_id"`
}
