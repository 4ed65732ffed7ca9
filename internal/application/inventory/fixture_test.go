package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

type fixture struct {
	store   *sqlstore.Store
	bus     *inventory.ChangeBus
	posting *inventory.PostingService
	queries *inventory.QueryService

	main, sub int64
	paper     int64 // precio 12.5, umbral por defecto
	pens      int64 // MinStock 3
	ink       int64 // sin precio
	dept      int64
	supplier  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st, err := sqlstore.Open(ctx, config.StoreConfig{
		Driver: config.DriverSQLite,
		Name:   "InventoryDB",
		Path:   filepath.Join(t.TempDir(), "InventoryDB.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	price := decimal.RequireFromString("12.5")
	minStock := decimal.NewFromInt(3)
	require.NoError(t, st.Seed().InsertCatalog(ctx, &entity.Catalog{
		Departments: []entity.Department{{Code: "D1", Name: "إدارة الخدمات"}},
		Suppliers:   []entity.Supplier{{Code: "S1", Name: "مؤسسة التوريد"}},
		Warehouses: []entity.CatalogWarehouse{
			{Warehouse: entity.Warehouse{Code: "W-MAIN", Name: "المستودع الرئيسي", IsActive: true}},
			{Warehouse: entity.Warehouse{Code: "W-SUB", Name: "مستودع فرعي", IsActive: true}, ParentCode: "W-MAIN"},
		},
		Items: []entity.Item{
			{Code: "IT-1", Name: "ورق طباعة", Unit: "رزمة", Price: &price},
			{Code: "IT-2", Name: "أقلام", Unit: "علبة", MinStock: &minStock},
			{Code: "IT-3", Name: "حبر", Unit: "عبوة"},
		},
	}))

	f := &fixture{store: st, bus: inventory.NewChangeBus()}
	tx := st.TxRunner()
	f.posting = inventory.NewPostingService(tx, f.bus, logger.Nop())
	f.queries = inventory.NewQueryService(tx, f.bus)

	repos := st.Repos()
	f.main = mustWarehouse(t, repos, "W-MAIN")
	f.sub = mustWarehouse(t, repos, "W-SUB")
	f.paper = mustItem(t, repos, "IT-1")
	f.pens = mustItem(t, repos, "IT-2")
	f.ink = mustItem(t, repos, "IT-3")
	depts, err := repos.Lookups.Departments(ctx)
	require.NoError(t, err)
	f.dept = depts[0].ID
	f.supplier = 1
	return f
}

func mustWarehouse(t *testing.T, repos inventory.Repos, code string) int64 {
	t.Helper()
	w, err := repos.Warehouses.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w.ID
}

func mustItem(t *testing.T, repos inventory.Repos, code string) int64 {
	t.Helper()
	it, err := repos.Items.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.ID
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func line(itemID int64, n int64) inventory.DraftLine {
	id := itemID
	return inventory.DraftLine{ItemID: &id, Quantity: qty(n)}
}

// post contabiliza y falla el test si hay error.
func (f *fixture) post(t *testing.T, typ entity.DocumentType, wh int64, lines ...inventory.DraftLine) int64 {
	t.Helper()
	id, err := f.posting.PostDocument(context.Background(), inventory.DocumentDraft{Type: typ, WarehouseID: wh}, lines)
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T, wh, item int64) decimal.Decimal {
	t.Helper()
	q, err := f.queries.StockFor(context.Background(), wh, item)
	require.NoError(t, err)
	return q
}

// ── Inyección de fallas ──────────────────────────────────────────────────────

var errDiskFull = errors.New("disk full")

// failingTx envuelve el runner real y hace fallar el movimiento número failAt (desde 0).
type failingTx struct {
	inner  inventory.TxRunner
	failAt int
}

func (f failingTx) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return f.inner.Run(ctx, func(repos inventory.Repos) error {
		repos.Movements = &failingMovements{MovementRepository: repos.Movements, left: f.failAt}
		return fn(repos)
	})
}

func (f failingTx) RunReadOnly(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return f.inner.RunReadOnly(ctx, fn)
}

type failingMovements struct {
	repository.MovementRepository
	left int
}

func (m *failingMovements) Create(ctx context.Context, mov *entity.Movement) error {
	if m.left == 0 {
		return errDiskFull
	}
	m.left--
	return m.MovementRepository.Create(ctx, mov)
}
