package dto

import "github.com/shopspring/decimal"

// CreateItemRequest entrada para dar de alta un artículo.
type CreateItemRequest struct {
	Code     string           `json:"code" validate:"required,min=1,max=50"`
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Unit     string           `json:"unit" validate:"required,max=30"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category" validate:"omitempty,max=100"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID       int64            `json:"id"`
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Unit     string           `json:"unit"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Category string           `json:"category,omitempty"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
