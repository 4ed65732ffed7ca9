package seed_test

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/seed"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	st, err := sqlstore.Open(context.Background(), config.StoreConfig{
		Driver: config.DriverSQLite,
		Name:   "InventoryDB",
		Path:   filepath.Join(t.TempDir(), "InventoryDB.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func embedded(t *testing.T) *seed.Dataset {
	t.Helper()
	ds, err := seed.LoadDataset("")
	require.NoError(t, err)
	return ds
}

func fixedRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func countBalances(t *testing.T, st *sqlstore.Store) int {
	t.Helper()
	ctx := context.Background()
	whs, err := st.Repos().Warehouses.List(ctx)
	require.NoError(t, err)
	n := 0
	for _, w := range whs {
		lines, err := st.Repos().Balances.Snapshot(ctx, w.ID)
		require.NoError(t, err)
		for _, l := range lines {
			if l.LastUpdated != nil {
				n++
			}
		}
	}
	return n
}

// ── Dataset ──────────────────────────────────────────────────────────────────

func TestLoadDataset_Embebido(t *testing.T) {
	ds := embedded(t)
	assert.NotEmpty(t, ds.Items)
	assert.NotEmpty(t, ds.StockedWarehouses)

	cat := ds.Catalog()
	assert.Len(t, cat.Items, len(ds.Items))
	assert.Equal(t, "المستودع الرئيسي", cat.Warehouses[0].Name)
}

func TestParseDataset_Invalido(t *testing.T) {
	_, err := seed.ParseDataset([]byte(`{"items":[{"code":"A","name":"x"},{"code":"A","name":"y"}]}`))
	assert.Error(t, err)

	_, err = seed.ParseDataset([]byte(`{"warehouses":[],"stocked_warehouses":["W"]}`))
	assert.Error(t, err)

	_, err = seed.ParseDataset([]byte(`no-json`))
	assert.Error(t, err)
}

// ── Carga inicial ────────────────────────────────────────────────────────────

func TestSeedIfEmpty_Idempotente(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	ds := embedded(t)
	s := seed.NewSeeder(st.Seed(), ds, logger.Nop(), seed.Config{Rand: fixedRand()})

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	items, err := st.Repos().Items.Count(ctx)
	require.NoError(t, err)
	balances := countBalances(t, st)
	assert.Equal(t, len(ds.Items), items)
	assert.Positive(t, balances)
	assert.LessOrEqual(t, balances, len(ds.StockedWarehouses)*len(ds.Items))

	seeded, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	again, err := st.Repos().Items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, again)
	assert.Equal(t, balances, countBalances(t, st))
}

func TestSeedIfEmpty_SoloAlmacenesConSaldo(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	ds := embedded(t)
	// p = 1: todos los pares del conjunto reciben saldo.
	s := seed.NewSeeder(st.Seed(), ds, logger.Nop(), seed.Config{StockProbability: 1, BatchSize: 7, Rand: fixedRand()})

	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ds.StockedWarehouses)*len(ds.Items), countBalances(t, st))

	main, err := st.Repos().Warehouses.GetByCode(ctx, "WH-MAIN")
	require.NoError(t, err)
	stocked, err := st.Repos().Balances.Snapshot(ctx, main.ID)
	require.NoError(t, err)
	for _, l := range stocked {
		assert.False(t, l.Quantity.IsNegative())
		assert.True(t, l.Quantity.LessThan(decimal.NewFromInt(100)))
		assert.True(t, l.Quantity.Equal(l.Quantity.Truncate(0)), "cantidades enteras")
	}

	inactive, err := st.Repos().Warehouses.GetByCode(ctx, "WH-ARCH")
	require.NoError(t, err)
	lines, err := st.Repos().Balances.Snapshot(ctx, inactive.ID)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Nil(t, l.LastUpdated)
		assert.True(t, l.Quantity.IsZero())
	}
}

func TestSeedIfEmpty_ConcurrenteNoDuplica(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	ds := embedded(t)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(seedN uint64) {
			defer wg.Done()
			s := seed.NewSeeder(st.Seed(), ds, logger.Nop(), seed.Config{StockProbability: 1, Rand: rand.New(rand.NewPCG(seedN, seedN))})
			_, err := s.SeedIfEmpty(ctx)
			assert.NoError(t, err)
		}(uint64(i + 1))
	}
	wg.Wait()

	n, err := st.Repos().Items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Items), n)
	assert.Equal(t, len(ds.StockedWarehouses)*len(ds.Items), countBalances(t, st))
}

func TestSeedIfEmpty_MismoSeederConcurrente(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	ds := embedded(t)
	s := seed.NewSeeder(st.Seed(), ds, logger.Nop(), seed.Config{StockProbability: 1, Rand: fixedRand()})

	var wg sync.WaitGroup
	var mu sync.Mutex
	seededCalls := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seeded, err := s.SeedIfEmpty(ctx)
			assert.NoError(t, err)
			if seeded {
				mu.Lock()
				seededCalls++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, seededCalls, "solo una llamada carga datos")
	assert.Equal(t, len(ds.StockedWarehouses)*len(ds.Items), countBalances(t, st))
}

// ── Con repositorio simulado ─────────────────────────────────────────────────

type seedRepoMock struct {
	mock.Mock
}

func (m *seedRepoMock) CountItems(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *seedRepoMock) InsertCatalog(ctx context.Context, c *entity.Catalog) error {
	return m.Called(ctx, c).Error(0)
}

func (m *seedRepoMock) ItemIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *seedRepoMock) WarehouseIDsByCode(ctx context.Context, codes []string) ([]int64, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *seedRepoMock) InsertOpeningBalances(ctx context.Context, b []*entity.InventoryBalance) error {
	return m.Called(ctx, len(b)).Error(0)
}

func TestSeedIfEmpty_LotesDeTamanoFijo(t *testing.T) {
	ctx := context.Background()
	repo := new(seedRepoMock)
	ds := embedded(t)

	repo.On("CountItems", ctx).Return(0, nil)
	repo.On("InsertCatalog", ctx, mock.Anything).Return(nil)
	repo.On("ItemIDs", ctx).Return([]int64{1, 2, 3, 4, 5}, nil)
	repo.On("WarehouseIDsByCode", ctx, ds.StockedWarehouses).Return([]int64{10, 20}, nil)
	repo.On("InsertOpeningBalances", ctx, 4).Return(nil).Twice()
	repo.On("InsertOpeningBalances", ctx, 2).Return(nil).Once()

	s := seed.NewSeeder(repo, ds, logger.Nop(), seed.Config{StockProbability: 1, BatchSize: 4, Rand: fixedRand()})
	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
	repo.AssertExpectations(t)
}

func TestSeedIfEmpty_FallaEnSaldosConservaCatalogo(t *testing.T) {
	ctx := context.Background()
	repo := new(seedRepoMock)
	ds := embedded(t)

	repo.On("CountItems", ctx).Return(0, nil).Once()
	repo.On("InsertCatalog", ctx, mock.Anything).Return(nil).Once()
	repo.On("ItemIDs", ctx).Return([]int64{1, 2}, nil)
	repo.On("WarehouseIDsByCode", ctx, ds.StockedWarehouses).Return([]int64{10}, nil)
	repo.On("InsertOpeningBalances", ctx, 2).Return(assert.AnError).Once()

	s := seed.NewSeeder(repo, ds, logger.Nop(), seed.Config{StockProbability: 1, Rand: fixedRand()})
	seeded, err := s.SeedIfEmpty(ctx)
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, seeded)

	// El catálogo ya quedó: la siguiente llamada no vuelve a sembrar.
	repo.On("CountItems", ctx).Return(2, nil).Once()
	seeded, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	repo.AssertNumberOfCalls(t, "InsertCatalog", 1)
	repo.AssertExpectations(t)
}

func TestSeedIfEmpty_NoCargaSiHayArticulos(t *testing.T) {
	ctx := context.Background()
	repo := new(seedRepoMock)
	repo.On("CountItems", ctx).Return(12, nil)

	s := seed.NewSeeder(repo, embedded(t), logger.Nop(), seed.Config{})
	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	repo.AssertNotCalled(t, "InsertCatalog", mock.Anything, mock.Anything)
}
