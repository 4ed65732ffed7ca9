package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation verifica si un error es una violación de constraint único
// (23505 en PostgreSQL, SQLITE_CONSTRAINT_UNIQUE en SQLite).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// conn acceso común a *sqlx.DB o *sqlx.Tx. Las consultas se escriben con ? y se re-enlazan
// al estilo del driver.
type conn struct {
	q sqlx.ExtContext
	d *dialect
}

func (c conn) get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, c.q, dest, c.q.Rebind(query), args...)
}

// getOne como get pero devuelve found=false en lugar de sql.ErrNoRows.
func (c conn) getOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := c.get(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c conn) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, c.q, dest, c.q.Rebind(query), args...)
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.q.Rebind(query), args...)
}

// insert ejecuta un INSERT ... RETURNING id y devuelve el id generado.
func (c conn) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := c.q.QueryRowxContext(ctx, c.q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func withLimit(query string, limit, offset int) (string, []any) {
	if limit <= 0 {
		return query, nil
	}
	if offset > 0 {
		return query + " LIMIT ? OFFSET ?", []any{limit, offset}
	}
	return query + " LIMIT ?", []any{limit}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
