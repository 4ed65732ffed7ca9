package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

// Store almacén de inventario abierto y migrado. Es seguro para uso concurrente.
type Store struct {
	db   *sqlx.DB
	d    *dialect
	name string
}

// Open abre (creando si no existe) el almacén y aplica el esquema versionado.
// Cualquier falla se devuelve como *domain.StoreOpenError.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	var (
		db  *sqlx.DB
		d   *dialect
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		d = postgresDialect
		db, err = openPostgres(ctx, cfg.DB)
	case config.DriverSQLite, "":
		d = sqliteDialect
		db, err = openSQLite(ctx, cfg)
	default:
		err = fmt.Errorf("driver desconocido %q", cfg.Driver)
	}
	if err != nil {
		return nil, &domain.StoreOpenError{Op: "connect", Err: err}
	}

	if err := migrate(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, &domain.StoreOpenError{Op: "migrate", Err: err}
	}
	return &Store{db: db, d: d, name: cfg.Name}, nil
}

// Close libera las conexiones.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name nombre lógico del almacén.
func (s *Store) Name() string { return s.name }

// Driver motor en uso (sqlite | pgx).
func (s *Store) Driver() string { return s.d.name }

// Ping verifica que el almacén siga respondiendo.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Version versión actual del esquema.
func (s *Store) Version(ctx context.Context) (int, error) {
	return schemaVersion(ctx, s.db)
}

// TxRunner runner transaccional del almacén.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{db: s.db, d: s.d}
}

// Repos repositorios fuera de transacción (cada llamada es su propia sentencia).
func (s *Store) Repos() inventory.Repos {
	return newRepos(s.db, s.d)
}

// Seed repositorio de carga inicial.
func (s *Store) Seed() repository.SeedRepository {
	return &SeedRepo{db: s.db, d: s.d}
}

func newRepos(q sqlx.ExtContext, d *dialect) inventory.Repos {
	c := conn{q: q, d: d}
	return inventory.Repos{
		Documents:  &DocumentRepo{c: c},
		Movements:  &MovementRepo{c: c},
		Balances:   &BalanceRepo{c: c},
		Items:      &ItemRepo{c: c},
		Warehouses: &WarehouseRepo{c: c},
		Lookups:    &LookupRepo{c: c},
		Custody:    &CustodyRepo{c: c},
		Requests:   &RequestRepo{c: c},
	}
}
