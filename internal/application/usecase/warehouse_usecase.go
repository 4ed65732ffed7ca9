package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// WarehouseUseCase consultas de almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Tree devuelve los almacenes como árbol. activeOnly excluye los inactivos (y sus hijos quedan como raíces).
func (uc *WarehouseUseCase) Tree(ctx context.Context, activeOnly bool) (*dto.WarehouseTreeResponse, error) {
	var (
		list []*entity.Warehouse
		err  error
	)
	if activeOnly {
		list, err = uc.repo.ListActive(ctx)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	roots := entity.BuildWarehouseTree(list)
	items := make([]dto.WarehouseResponse, 0, len(roots))
	for _, w := range roots {
		items = append(items, toWarehouseResponse(w))
	}
	return &dto.WarehouseTreeResponse{Items: items}, nil
}

// GetByID obtiene un almacén (sin hijos). ErrNotFound si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	out := dto.WarehouseResponse{
		ID:       w.ID,
		Code:     w.Code,
		Name:     w.Name,
		IsActive: w.IsActive,
		ParentID: w.ParentID,
	}
	if w.Address != nil {
		out.Address = *w.Address
	}
	for _, c := range w.Children {
		out.Children = append(out.Children, toWarehouseResponse(c))
	}
	return out
}
