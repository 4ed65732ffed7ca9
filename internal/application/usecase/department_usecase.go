package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// DepartmentUseCase listado de departamentos.
type DepartmentUseCase struct {
	repo repository.LookupRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.LookupRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// List departamentos por nombre.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	list, err := uc.repo.Departments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DepartmentResponse{ID: d.ID, Code: d.Code, Name: d.Name})
	}
	return out, nil
}
