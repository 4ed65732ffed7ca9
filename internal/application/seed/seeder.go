package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// Valores por defecto de la carga inicial.
const (
	DefaultStockProbability = 0.7
	DefaultBatchSize        = 200
	maxOpeningQuantity      = 100 // exclusivo: cantidades 0..99
)

// Config parámetros del seeder. Los campos en cero toman los valores por defecto.
type Config struct {
	StockProbability float64
	BatchSize        int
	// Rand fuente de aleatoriedad; nil = semilla aleatoria.
	Rand *rand.Rand
	Now  func() time.Time
}

// Seeder carga el catálogo y los saldos iniciales en un almacén vacío.
// Las llamadas concurrentes sobre el mismo Seeder se serializan (rand.Rand no es seguro para
// uso concurrente); entre procesos distintos las restricciones únicas evitan duplicados.
type Seeder struct {
	mu      sync.Mutex
	repo    repository.SeedRepository
	dataset *Dataset
	log     *logger.Logger
	p       float64
	batch   int
	rng     *rand.Rand
	now     func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(repo repository.SeedRepository, dataset *Dataset, log *logger.Logger, cfg Config) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	s := &Seeder{
		repo:    repo,
		dataset: dataset,
		log:     log,
		p:       cfg.StockProbability,
		batch:   cfg.BatchSize,
		rng:     cfg.Rand,
		now:     cfg.Now,
	}
	if s.p <= 0 {
		s.p = DefaultStockProbability
	}
	if s.batch <= 0 {
		s.batch = DefaultBatchSize
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SeedIfEmpty si no hay artículos, inserta el catálogo y saldos iniciales aleatorios.
// Devuelve true si cargó datos. Una segunda llamada no hace nada.
//
// El catálogo y los saldos van en transacciones separadas: si falla un lote de saldos, el
// catálogo queda cargado y las llamadas siguientes ya no siembran saldos (el almacén deja de
// estar vacío). Ese caso se registra como error con los saldos ya insertados.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.CountItems(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int("items", n).Msg("almacén con datos, sin carga inicial")
		return false, nil
	}

	started := time.Now()
	if err := s.repo.InsertCatalog(ctx, s.dataset.Catalog()); err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}

	itemIDs, err := s.repo.ItemIDs(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	whIDs, err := s.repo.WarehouseIDsByCode(ctx, s.dataset.StockedWarehouses)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	now := s.now().UTC()
	batch := make([]*entity.InventoryBalance, 0, s.batch)
	total := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.InsertOpeningBalances(ctx, batch); err != nil {
			s.log.Error().Err(err).Int("balances", total).Msg("carga inicial incompleta: catálogo sin todos sus saldos")
			return fmt.Errorf("seed opening balances: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, wh := range whIDs {
		for _, item := range itemIDs {
			if s.rng.Float64() >= s.p {
				continue
			}
			batch = append(batch, &entity.InventoryBalance{
				WarehouseID: wh,
				ItemID:      item,
				Quantity:    decimal.NewFromInt(int64(s.rng.IntN(maxOpeningQuantity))),
				LastUpdated: now,
			})
			if len(batch) == s.batch {
				if err := flush(); err != nil {
					return false, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return false, err
	}

	s.log.Info().
		Int("items", len(itemIDs)).
		Int("warehouses", len(whIDs)).
		Int("balances", total).
		Dur("elapsed", time.Since(started)).
		Msg("carga inicial completada")
	return true, nil
}
