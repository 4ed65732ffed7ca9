package entity

// Catalog datos de referencia que se cargan una sola vez en un almacén vacío.
// Las relaciones se expresan por código porque los IDs se asignan al insertar.
type Catalog struct {
	Departments []Department
	Divisions   []CatalogDivision
	Units       []CatalogUnit
	Suppliers   []Supplier
	Warehouses  []CatalogWarehouse
	Items       []Item
}

// CatalogDivision división con el código de su departamento.
type CatalogDivision struct {
	Division
	DepartmentCode string
}

// CatalogUnit unidad con el código de su división.
type CatalogUnit struct {
	Unit
	DivisionCode string
}

// CatalogWarehouse almacén con el código de su padre (vacío = raíz).
type CatalogWarehouse struct {
	Warehouse
	ParentCode string
}
