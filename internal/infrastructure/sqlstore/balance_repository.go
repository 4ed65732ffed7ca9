package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

const balanceSelect = `SELECT id, warehouse_id, item_id, quantity, last_updated FROM inventory
	WHERE warehouse_id = ? AND item_id = ?`

// BalanceRepo implementación de BalanceRepository.
type BalanceRepo struct {
	c conn
}

// Get saldo actual; nil, nil si el par no tiene fila.
func (r *BalanceRepo) Get(ctx context.Context, warehouseID, itemID int64) (*entity.InventoryBalance, error) {
	var b entity.InventoryBalance
	ok, err := r.c.getOne(ctx, &b, balanceSelect, warehouseID, itemID)
	if err != nil || !ok {
		return nil, wrap("get balance", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila hasta el fin de la transacción.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, warehouseID, itemID int64) (*entity.InventoryBalance, error) {
	var b entity.InventoryBalance
	ok, err := r.c.getOne(ctx, &b, balanceSelect+r.c.d.forUpdate, warehouseID, itemID)
	if err != nil || !ok {
		return nil, wrap("get balance for update", err)
	}
	return &b, nil
}

// Create inserta el saldo. Si otra transacción creó la fila en paralelo, suma la cantidad
// a la existente en lugar de fallar.
func (r *BalanceRepo) Create(ctx context.Context, b *entity.InventoryBalance) error {
	id, err := r.c.insert(ctx, `
		INSERT INTO inventory (warehouse_id, item_id, quantity, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (warehouse_id, item_id)
		DO UPDATE SET quantity = inventory.quantity + excluded.quantity, last_updated = excluded.last_updated
		RETURNING id`,
		b.WarehouseID, b.ItemID, b.Quantity, b.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	b.ID = id
	return nil
}

// Update reemplaza cantidad y fecha del saldo.
func (r *BalanceRepo) Update(ctx context.Context, b *entity.InventoryBalance) error {
	_, err := r.c.exec(ctx, `UPDATE inventory SET quantity = ?, last_updated = ? WHERE id = ?`,
		b.Quantity, b.LastUpdated, b.ID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// Snapshot todos los artículos con su saldo en el almacén (0 si no hay fila).
func (r *BalanceRepo) Snapshot(ctx context.Context, warehouseID int64) ([]*entity.StockLine, error) {
	list := make([]*entity.StockLine, 0)
	err := r.c.selectAll(ctx, &list, `
		SELECT i.id, i.code, i.name, i.unit, i.price, i.category, i.min_stock,
			COALESCE(b.quantity, 0) AS quantity, b.last_updated
		FROM items i
		LEFT JOIN inventory b ON b.item_id = i.id AND b.warehouse_id = ?
		ORDER BY i.name, i.id`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	return list, nil
}
