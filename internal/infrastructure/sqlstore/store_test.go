package sqlstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

func openTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	cfg := config.StoreConfig{
		Driver: config.DriverSQLite,
		Name:   "InventoryDB",
		Path:   filepath.Join(t.TempDir(), "InventoryDB.sqlite"),
	}
	st, err := sqlstore.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func ptr[T any](v T) *T { return &v }

func testCatalog() *entity.Catalog {
	return &entity.Catalog{
		Departments: []entity.Department{
			{Code: "D1", Name: "إدارة الشؤون الإدارية"},
			{Code: "D2", Name: "إدارة تقنية المعلومات"},
		},
		Divisions: []entity.CatalogDivision{
			{Division: entity.Division{Code: "DV1", Name: "قسم الصيانة"}, DepartmentCode: "D1"},
		},
		Units: []entity.CatalogUnit{
			{Unit: entity.Unit{Code: "U1", Name: "وحدة الكهرباء"}, DivisionCode: "DV1"},
		},
		Suppliers: []entity.Supplier{{Code: "S1", Name: "مؤسسة التوريد", Phone: ptr("0500000000")}},
		Warehouses: []entity.CatalogWarehouse{
			{Warehouse: entity.Warehouse{Code: "W-SUB", Name: "مستودع فرعي", IsActive: true}, ParentCode: "W-MAIN"},
			{Warehouse: entity.Warehouse{Code: "W-MAIN", Name: "المستودع الرئيسي", IsActive: true}},
			{Warehouse: entity.Warehouse{Code: "W-OLD", Name: "مستودع قديم", IsActive: false}},
		},
		Items: []entity.Item{
			{Code: "IT-1", Name: "ورق طباعة", Unit: "رزمة", Price: ptr(decimal.RequireFromString("12.5"))},
			{Code: "IT-2", Name: "أقلام", Unit: "علبة", MinStock: ptr(decimal.NewFromInt(3))},
			{Code: "IT-3", Name: "حبر", Unit: "عبوة", Category: ptr("مستهلكات")},
		},
	}
}

func seedCatalog(t *testing.T, st *sqlstore.Store) {
	t.Helper()
	require.NoError(t, st.Seed().InsertCatalog(context.Background(), testCatalog()))
}

// ── Apertura y esquema ───────────────────────────────────────────────────────

func TestOpen_AplicaEsquemaVersion1(t *testing.T) {
	st := openTestStore(t)

	v, err := st.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sqlstore.SchemaVersion, v)
	assert.Equal(t, "InventoryDB", st.Name())
	assert.Equal(t, "sqlite", st.Driver())
}

func TestOpen_ReabrirNoRepiteMigracion(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{Driver: config.DriverSQLite, Name: "InventoryDB", Path: filepath.Join(t.TempDir(), "db.sqlite")}

	st, err := sqlstore.Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, st.Seed().InsertCatalog(ctx, testCatalog()))
	require.NoError(t, st.Close())

	st, err = sqlstore.Open(ctx, cfg)
	require.NoError(t, err)
	defer st.Close()

	n, err := st.Seed().CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOpen_RutaInvalidaDevuelveStoreOpenError(t *testing.T) {
	// La ruta es un directorio: SQLite no puede abrirlo como archivo.
	cfg := config.StoreConfig{Driver: config.DriverSQLite, Name: "InventoryDB", Path: t.TempDir()}

	_, err := sqlstore.Open(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreOpen))

	var openErr *domain.StoreOpenError
	require.ErrorAs(t, err, &openErr)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	assert.ErrorIs(t, err, domain.ErrStoreOpen)
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

func TestInsertCatalog_EsIdempotenteYEnlazaPadres(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	seedCatalog(t, st)
	seedCatalog(t, st)

	repos := st.Repos()
	items, err := repos.Items.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	sub, err := repos.Warehouses.GetByCode(ctx, "W-SUB")
	require.NoError(t, err)
	main, err := repos.Warehouses.GetByCode(ctx, "W-MAIN")
	require.NoError(t, err)
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, main.ID, *sub.ParentID)

	active, err := repos.Warehouses.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	ids, err := st.Seed().WarehouseIDsByCode(ctx, []string{"W-MAIN", "W-SUB", "NO-EXISTE"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestInsertCatalog_DivisionConDepartamentoDesconocido(t *testing.T) {
	st := openTestStore(t)
	cat := testCatalog()
	cat.Divisions[0].DepartmentCode = "NOPE"

	err := st.Seed().InsertCatalog(context.Background(), cat)
	require.Error(t, err)

	n, err := st.Seed().CountItems(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "el catálogo se inserta completo o nada")
}

func TestInsertOpeningBalances_IgnoraExistentes(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)

	wh, err := st.Repos().Warehouses.GetByCode(ctx, "W-MAIN")
	require.NoError(t, err)
	itemIDs, err := st.Seed().ItemIDs(ctx)
	require.NoError(t, err)

	now := time.Now().UTC()
	first := []*entity.InventoryBalance{{WarehouseID: wh.ID, ItemID: itemIDs[0], Quantity: decimal.NewFromInt(5), LastUpdated: now}}
	again := []*entity.InventoryBalance{{WarehouseID: wh.ID, ItemID: itemIDs[0], Quantity: decimal.NewFromInt(99), LastUpdated: now}}
	require.NoError(t, st.Seed().InsertOpeningBalances(ctx, first))
	require.NoError(t, st.Seed().InsertOpeningBalances(ctx, again))

	bal, err := st.Repos().Balances.Get(ctx, wh.ID, itemIDs[0])
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(decimal.NewFromInt(5)))
}
