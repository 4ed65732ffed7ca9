package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo de artículos. El stock se maneja vía documentos.
type ItemUseCase struct {
	repo     repository.ItemRepository
	notifier inventory.ChangeNotifier
}

// NewItemUseCase construye el caso de uso. notifier puede ser nil.
func NewItemUseCase(repo repository.ItemRepository, notifier inventory.ChangeNotifier) *ItemUseCase {
	return &ItemUseCase{repo: repo, notifier: notifier}
}

// Create da de alta un artículo. Código repetido → domain.ErrDuplicate.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" {
		return nil, domain.NewValidationError("code", "es requerido")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.MinStock != nil && in.MinStock.IsNegative() {
		return nil, domain.NewValidationError("min_stock", "no puede ser negativo")
	}

	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	item := &entity.Item{
		Code:     code,
		Name:     name,
		Unit:     strings.TrimSpace(in.Unit),
		Price:    in.Price,
		MinStock: in.MinStock,
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		item.Category = &c
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.Notify(ctx, inventory.Change{Tables: []inventory.Table{inventory.TableItems}})
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo. ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	out := &dto.ItemResponse{
		ID:       it.ID,
		Code:     it.Code,
		Name:     it.Name,
		Unit:     it.Unit,
		Price:    it.Price,
		MinStock: it.MinStock,
	}
	if it.Category != nil {
		out.Category = *it.Category
	}
	return out
}
