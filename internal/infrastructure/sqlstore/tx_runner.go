package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción.
type TxRunner struct {
	db *sqlx.DB
	d  *dialect
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.run(ctx, nil, fn)
}

// RunReadOnly igual que Run para lecturas: todas ven el mismo estado confirmado.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.run(ctx, r.d.readOnly, fn)
}

func (r *TxRunner) run(ctx context.Context, opts *sql.TxOptions, fn func(repos inventory.Repos) error) error {
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(newRepos(tx, r.d)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
