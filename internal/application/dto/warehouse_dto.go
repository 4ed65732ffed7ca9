package dto

// WarehouseResponse salida de un almacén, con sus hijos.
type WarehouseResponse struct {
	ID       int64               `json:"id"`
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Address  string              `json:"address,omitempty"`
	IsActive bool                `json:"is_active"`
	ParentID *int64              `json:"parent_id,omitempty"`
	Children []WarehouseResponse `json:"children,omitempty"`
}

// WarehouseTreeResponse árbol de almacenes.
type WarehouseTreeResponse struct {
	Items []WarehouseResponse `json:"items"`
}
