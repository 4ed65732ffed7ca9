package entity

// Department departamento (إدارة) que solicita y recibe material.
type Department struct {
	ID   int64  `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

// Division división (قسم) dentro de un departamento.
type Division struct {
	ID           int64  `db:"id"`
	Code         string `db:"code"`
	DepartmentID int64  `db:"department_id"`
	Name         string `db:"name"`
}

// Unit unidad (وحدة) dentro de una división.
type Unit struct {
	ID         int64  `db:"id"`
	Code       string `db:"code"`
	DivisionID int64  `db:"division_id"`
	Name       string `db:"name"`
}

// Supplier proveedor de las entradas.
type Supplier struct {
	ID    int64   `db:"id"`
	Code  string  `db:"code"`
	Name  string  `db:"name"`
	Phone *string `db:"phone"`
}

// LookupTable tablas de consulta referenciables desde un documento.
type LookupTable string

const (
	LookupDepartments LookupTable = "departments"
	LookupDivisions   LookupTable = "divisions"
	LookupUnits       LookupTable = "units"
	LookupSuppliers   LookupTable = "suppliers"
)
