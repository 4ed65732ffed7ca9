package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SchemaVersion versión del esquema que este binario sabe aplicar.
const SchemaVersion = 1

type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{version: 1, statements: []string{
		`CREATE TABLE items (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			price NUMERIC,
			category TEXT,
			min_stock NUMERIC
		)`,
		`CREATE INDEX idx_items_name ON items(name)`,
		`CREATE INDEX idx_items_category ON items(category)`,

		`CREATE TABLE warehouses (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			address TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			parent_id BIGINT REFERENCES warehouses(id)
		)`,
		`CREATE INDEX idx_warehouses_parent ON warehouses(parent_id)`,

		`CREATE TABLE departments (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE divisions (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			department_id BIGINT NOT NULL REFERENCES departments(id),
			name TEXT NOT NULL
		)`,
		`CREATE TABLE units (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			division_id BIGINT NOT NULL REFERENCES divisions(id),
			name TEXT NOT NULL
		)`,
		`CREATE TABLE suppliers (
			id {{pk}},
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			phone TEXT
		)`,

		`CREATE TABLE inventory (
			id {{pk}},
			warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
			item_id BIGINT NOT NULL REFERENCES items(id),
			quantity NUMERIC NOT NULL DEFAULT 0,
			last_updated {{ts}} NOT NULL,
			UNIQUE (warehouse_id, item_id)
		)`,
		`CREATE INDEX idx_inventory_item ON inventory(item_id)`,

		`CREATE TABLE documents (
			id {{pk}},
			doc_number TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('entry', 'issuance')),
			date {{ts}} NOT NULL,
			warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
			department_id BIGINT REFERENCES departments(id),
			division_id BIGINT REFERENCES divisions(id),
			unit_id BIGINT REFERENCES units(id),
			supplier_id BIGINT REFERENCES suppliers(id),
			recipient_name TEXT,
			entry_type TEXT,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'approved',
			item_count INTEGER NOT NULL DEFAULT 0,
			total_value NUMERIC,
			reverses_doc_id BIGINT UNIQUE REFERENCES documents(id),
			created_at {{ts}} NOT NULL
		)`,
		`CREATE INDEX idx_documents_number ON documents(doc_number)`,
		`CREATE INDEX idx_documents_type ON documents(type)`,
		`CREATE INDEX idx_documents_date ON documents(date)`,
		`CREATE INDEX idx_documents_warehouse ON documents(warehouse_id)`,
		`CREATE INDEX idx_documents_entry_type ON documents(entry_type)`,
		`CREATE INDEX idx_documents_status ON documents(status)`,

		`CREATE TABLE movements (
			id {{pk}},
			doc_id BIGINT NOT NULL REFERENCES documents(id),
			item_id BIGINT NOT NULL REFERENCES items(id),
			type TEXT NOT NULL CHECK (type IN ('entry', 'issuance')),
			quantity NUMERIC NOT NULL CHECK (quantity > 0),
			date {{ts}} NOT NULL,
			warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
			department_id BIGINT REFERENCES departments(id)
		)`,
		`CREATE INDEX idx_movements_doc ON movements(doc_id)`,
		`CREATE INDEX idx_movements_item ON movements(item_id)`,
		`CREATE INDEX idx_movements_type ON movements(type)`,
		`CREATE INDEX idx_movements_date ON movements(date)`,
		`CREATE INDEX idx_movements_warehouse ON movements(warehouse_id)`,

		`CREATE TABLE requests (
			id {{pk}},
			department_id BIGINT NOT NULL REFERENCES departments(id),
			items {{json}} NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			requested_by TEXT NOT NULL,
			notes TEXT,
			created_at {{ts}} NOT NULL,
			processed_at {{ts}},
			processed_by TEXT
		)`,
		`CREATE INDEX idx_requests_status ON requests(status)`,
		`CREATE INDEX idx_requests_department ON requests(department_id)`,

		`CREATE TABLE custody (
			id {{pk}},
			item_id BIGINT NOT NULL REFERENCES items(id),
			department_id BIGINT NOT NULL REFERENCES departments(id),
			employee_id TEXT,
			employee_name TEXT NOT NULL,
			quantity NUMERIC NOT NULL,
			received_date {{ts}} NOT NULL,
			condition TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			doc_id BIGINT REFERENCES documents(id)
		)`,
		`CREATE INDEX idx_custody_department ON custody(department_id)`,
		`CREATE INDEX idx_custody_status ON custody(status)`,
	}},
}

// migrate aplica las migraciones pendientes, cada una en su propia transacción.
func migrate(ctx context.Context, db *sqlx.DB, d *dialect) error {
	_, err := db.ExecContext(ctx, d.ddl(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at {{ts}} NOT NULL
	)`))
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(ctx, db, d, m); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, d *dialect, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, d.ddl(stmt)); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`),
		m.version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record version: %w", err)
	}
	return tx.Commit()
}

func schemaVersion(ctx context.Context, q sqlx.QueryerContext) (int, error) {
	var v int
	if err := sqlx.GetContext(ctx, q, &v, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
