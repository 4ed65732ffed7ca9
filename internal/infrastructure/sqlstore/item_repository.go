package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, unit, price, category, min_stock`

// ItemRepo implementación de ItemRepository (usable con db o tx).
type ItemRepo struct {
	c conn
}

// Create inserta el artículo y asigna su ID. Código repetido → domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO items (code, name, unit, price, category, min_stock)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		item.Code, item.Name, item.Unit, item.Price, item.Category, item.MinStock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: artículo con código %s", domain.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = id
	return nil
}

// GetByID obtiene un artículo; nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	var it entity.Item
	ok, err := r.c.getOne(ctx, &it, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, wrap("get item", err)
	}
	return &it, nil
}

// GetByCode obtiene un artículo por código; nil, nil si no existe.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var it entity.Item
	ok, err := r.c.getOne(ctx, &it, `SELECT `+itemColumns+` FROM items WHERE code = ?`, code)
	if err != nil || !ok {
		return nil, wrap("get item by code", err)
	}
	return &it, nil
}

// List lista artículos por nombre. limit <= 0 = todos.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	query, args := withLimit(`SELECT `+itemColumns+` FROM items ORDER BY name, id`, limit, offset)
	list := make([]*entity.Item, 0)
	if err := r.c.selectAll(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return list, nil
}

// Count total de artículos.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.c.get(ctx, &n, `SELECT COUNT(*) FROM items`); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
