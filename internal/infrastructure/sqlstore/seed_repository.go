package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.SeedRepository = (*SeedRepo)(nil)

// SeedRepo carga inicial. Cada inserción ignora filas ya existentes por su clave única,
// así dos cargas simultáneas no duplican nada.
type SeedRepo struct {
	db *sqlx.DB
	d  *dialect
}

// CountItems total de artículos.
func (r *SeedRepo) CountItems(ctx context.Context) (int, error) {
	return (&ItemRepo{c: conn{q: r.db, d: r.d}}).Count(ctx)
}

// InsertCatalog inserta el catálogo completo en una sola transacción.
func (r *SeedRepo) InsertCatalog(ctx context.Context, cat *entity.Catalog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	c := conn{q: tx, d: r.d}

	for _, d := range cat.Departments {
		if _, err := c.exec(ctx, `INSERT INTO departments (code, name) VALUES (?, ?) ON CONFLICT (code) DO NOTHING`,
			d.Code, d.Name); err != nil {
			return fmt.Errorf("insert department %s: %w", d.Code, err)
		}
	}
	deptIDs, err := idsByCode(ctx, c, "departments")
	if err != nil {
		return err
	}

	for _, d := range cat.Divisions {
		deptID, ok := deptIDs[d.DepartmentCode]
		if !ok {
			return fmt.Errorf("division %s: departamento %s desconocido", d.Code, d.DepartmentCode)
		}
		if _, err := c.exec(ctx, `INSERT INTO divisions (code, department_id, name) VALUES (?, ?, ?) ON CONFLICT (code) DO NOTHING`,
			d.Code, deptID, d.Name); err != nil {
			return fmt.Errorf("insert division %s: %w", d.Code, err)
		}
	}
	divIDs, err := idsByCode(ctx, c, "divisions")
	if err != nil {
		return err
	}

	for _, u := range cat.Units {
		divID, ok := divIDs[u.DivisionCode]
		if !ok {
			return fmt.Errorf("unit %s: división %s desconocida", u.Code, u.DivisionCode)
		}
		if _, err := c.exec(ctx, `INSERT INTO units (code, division_id, name) VALUES (?, ?, ?) ON CONFLICT (code) DO NOTHING`,
			u.Code, divID, u.Name); err != nil {
			return fmt.Errorf("insert unit %s: %w", u.Code, err)
		}
	}

	for _, s := range cat.Suppliers {
		if _, err := c.exec(ctx, `INSERT INTO suppliers (code, name, phone) VALUES (?, ?, ?) ON CONFLICT (code) DO NOTHING`,
			s.Code, s.Name, s.Phone); err != nil {
			return fmt.Errorf("insert supplier %s: %w", s.Code, err)
		}
	}

	// Primero todos los almacenes, luego los padres (el orden del dataset no importa).
	for _, w := range cat.Warehouses {
		if _, err := c.exec(ctx, `INSERT INTO warehouses (code, name, address, is_active) VALUES (?, ?, ?, ?) ON CONFLICT (code) DO NOTHING`,
			w.Code, w.Name, w.Address, w.IsActive); err != nil {
			return fmt.Errorf("insert warehouse %s: %w", w.Code, err)
		}
	}
	for _, w := range cat.Warehouses {
		if w.ParentCode == "" {
			continue
		}
		if _, err := c.exec(ctx, `
			UPDATE warehouses SET parent_id = (SELECT p.id FROM warehouses p WHERE p.code = ?)
			WHERE code = ? AND parent_id IS NULL`, w.ParentCode, w.Code); err != nil {
			return fmt.Errorf("link warehouse %s: %w", w.Code, err)
		}
	}

	for _, it := range cat.Items {
		if _, err := c.exec(ctx, `
			INSERT INTO items (code, name, unit, price, category, min_stock)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (code) DO NOTHING`,
			it.Code, it.Name, it.Unit, it.Price, it.Category, it.MinStock); err != nil {
			return fmt.Errorf("insert item %s: %w", it.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}
	return nil
}

// ItemIDs IDs de todos los artículos en orden.
func (r *SeedRepo) ItemIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0)
	if err := sqlx.SelectContext(ctx, r.db, &ids, `SELECT id FROM items ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list item ids: %w", err)
	}
	return ids, nil
}

// WarehouseIDsByCode IDs de los almacenes con esos códigos (los inexistentes se ignoran).
func (r *SeedRepo) WarehouseIDsByCode(ctx context.Context, codes []string) ([]int64, error) {
	ids := make([]int64, 0, len(codes))
	if len(codes) == 0 {
		return ids, nil
	}
	query, args, err := sqlx.In(`SELECT id FROM warehouses WHERE code IN (?) ORDER BY id`, codes)
	if err != nil {
		return nil, fmt.Errorf("build warehouse query: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list warehouse ids: %w", err)
	}
	return ids, nil
}

// InsertOpeningBalances inserta un lote de saldos iniciales en una transacción corta.
func (r *SeedRepo) InsertOpeningBalances(ctx context.Context, balances []*entity.InventoryBalance) error {
	if len(balances) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO inventory (warehouse_id, item_id, quantity, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (warehouse_id, item_id) DO NOTHING`))
	if err != nil {
		return fmt.Errorf("prepare opening balance: %w", err)
	}
	defer stmt.Close()

	for _, b := range balances {
		if _, err := stmt.ExecContext(ctx, b.WarehouseID, b.ItemID, b.Quantity, b.LastUpdated); err != nil {
			return fmt.Errorf("insert opening balance (%d,%d): %w", b.WarehouseID, b.ItemID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit opening balances: %w", err)
	}
	return nil
}

func idsByCode(ctx context.Context, c conn, table string) (map[string]int64, error) {
	rows := make([]struct {
		ID   int64  `db:"id"`
		Code string `db:"code"`
	}, 0)
	if err := c.selectAll(ctx, &rows, `SELECT id, code FROM `+table); err != nil {
		return nil, fmt.Errorf("list %s codes: %w", table, err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Code] = r.ID
	}
	return out, nil
}
