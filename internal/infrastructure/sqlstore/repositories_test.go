package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ── Artículos ────────────────────────────────────────────────────────────────

func TestItemRepo_CreateYDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := openTestStore(t).Repos()

	it := &entity.Item{Code: "X-1", Name: "دباسة", Unit: "حبة", Price: ptr(decimal.RequireFromString("7.25"))}
	require.NoError(t, repos.Items.Create(ctx, it))
	assert.NotZero(t, it.ID)

	got, err := repos.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "دباسة", got.Name)
	require.NotNil(t, got.Price)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("7.25")))
	assert.Nil(t, got.MinStock)

	err = repos.Items.Create(ctx, &entity.Item{Code: "X-1", Name: "otro", Unit: "u"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := repos.Items.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestItemRepo_ListPaginado(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)

	page, err := st.Repos().Items.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := st.Repos().Items.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	n, err := st.Repos().Items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// ── Saldos ───────────────────────────────────────────────────────────────────

func TestBalanceRepo_CreateSumaSiYaExiste(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	repos := st.Repos()
	wh, _ := repos.Warehouses.GetByCode(ctx, "W-MAIN")
	it, _ := repos.Items.GetByCode(ctx, "IT-1")

	now := time.Now().UTC()
	require.NoError(t, repos.Balances.Create(ctx, &entity.InventoryBalance{WarehouseID: wh.ID, ItemID: it.ID, Quantity: decimal.NewFromInt(4), LastUpdated: now}))
	require.NoError(t, repos.Balances.Create(ctx, &entity.InventoryBalance{WarehouseID: wh.ID, ItemID: it.ID, Quantity: decimal.NewFromInt(-1), LastUpdated: now}))

	bal, err := repos.Balances.GetForUpdate(ctx, wh.ID, it.ID)
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(decimal.NewFromInt(3)), "got %s", bal.Quantity)

	bal.Quantity = decimal.RequireFromString("2.5")
	require.NoError(t, repos.Balances.Update(ctx, bal))
	bal, err = repos.Balances.Get(ctx, wh.ID, it.ID)
	require.NoError(t, err)
	assert.True(t, bal.Quantity.Equal(decimal.RequireFromString("2.5")))
}

func TestBalanceRepo_SnapshotIncluyeArticulosSinSaldo(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	repos := st.Repos()
	wh, _ := repos.Warehouses.GetByCode(ctx, "W-MAIN")
	it, _ := repos.Items.GetByCode(ctx, "IT-2")

	require.NoError(t, repos.Balances.Create(ctx, &entity.InventoryBalance{WarehouseID: wh.ID, ItemID: it.ID, Quantity: decimal.NewFromInt(8), LastUpdated: time.Now().UTC()}))

	lines, err := repos.Balances.Snapshot(ctx, wh.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for _, l := range lines {
		if l.ID == it.ID {
			assert.True(t, l.Quantity.Equal(decimal.NewFromInt(8)))
			assert.NotNil(t, l.LastUpdated)
			continue
		}
		assert.True(t, l.Quantity.IsZero())
		assert.Nil(t, l.LastUpdated)
	}
}

// ── Documentos y movimientos ─────────────────────────────────────────────────

func TestDocumentRepo_ReversaUnica(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	wh, _ := st.Repos().Warehouses.GetByCode(ctx, "W-MAIN")

	now := time.Now().UTC()
	orig := &entity.Document{DocNumber: "ENT-1", Type: entity.DocumentTypeEntry, Date: now, WarehouseID: wh.ID, Status: entity.DocumentStatusApproved, CreatedAt: now}
	require.NoError(t, st.Repos().Documents.Create(ctx, orig))

	rev := func(num string) *entity.Document {
		return &entity.Document{DocNumber: num, Type: entity.DocumentTypeIssuance, Date: now, WarehouseID: wh.ID,
			Status: entity.DocumentStatusApproved, ReversesDocID: &orig.ID, CreatedAt: now}
	}
	require.NoError(t, st.Repos().Documents.Create(ctx, rev("ISS-1")))
	assert.ErrorIs(t, st.Repos().Documents.Create(ctx, rev("ISS-2")), domain.ErrDuplicate)

	got, err := st.Repos().Documents.GetByID(ctx, orig.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.DocumentTypeEntry, got.Type)
	assert.WithinDuration(t, now, got.Date, time.Millisecond)
	assert.Nil(t, got.TotalValue)
}

func TestMovementRepo_HistoryConUnionesFaltantes(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	repos := st.Repos()
	wh, _ := repos.Warehouses.GetByCode(ctx, "W-MAIN")
	it, _ := repos.Items.GetByCode(ctx, "IT-1")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	doc := &entity.Document{DocNumber: "ENT-1", Type: entity.DocumentTypeEntry, Date: base, WarehouseID: wh.ID, Status: entity.DocumentStatusApproved, CreatedAt: base}
	require.NoError(t, repos.Documents.Create(ctx, doc))
	for i, q := range []int64{5, 7} {
		require.NoError(t, repos.Movements.Create(ctx, &entity.Movement{
			DocID: doc.ID, ItemID: it.ID, Type: entity.DocumentTypeEntry, Quantity: decimal.NewFromInt(q),
			Date: base.Add(time.Duration(i) * time.Hour), WarehouseID: wh.ID,
		}))
	}

	hist, err := repos.Movements.History(ctx, wh.ID, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.True(t, hist[0].Quantity.Equal(decimal.NewFromInt(7)), "más reciente primero")
	assert.Equal(t, "ENT-1", hist[0].DocNumber)
	assert.Equal(t, "ورق طباعة", hist[0].ItemName)
	assert.Equal(t, "", hist[0].DepartmentName)

	limited, err := repos.Movements.History(ctx, wh.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	lines, err := repos.Documents.Lines(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.NotNil(t, lines[0].UnitPrice)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("12.5")))
}

// ── Solicitudes, custodias y consultas ───────────────────────────────────────

func TestRequestRepo_TransicionCondicional(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	depts, err := st.Repos().Lookups.Departments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 2)

	req := &entity.Request{
		DepartmentID: depts[0].ID,
		Items:        entity.RequestItems{{ItemID: 1, Quantity: decimal.NewFromInt(2), Notes: "عاجل"}},
		Status:       entity.RequestStatusPending,
		RequestedBy:  "أحمد",
		CreatedAt:    time.Now().UTC(),
	}
	repos := st.Repos()
	require.NoError(t, repos.Requests.Create(ctx, req))

	pending, err := repos.Requests.ListByStatus(ctx, entity.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Len(t, pending[0].Items, 1)
	assert.Equal(t, "عاجل", pending[0].Items[0].Notes)

	ok, err := repos.Requests.Transition(ctx, req.ID, entity.RequestStatusPending, entity.RequestStatusApproved, "مدير", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Requests.Transition(ctx, req.ID, entity.RequestStatusPending, entity.RequestStatusRejected, "مدير", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok, "una solicitud procesada no vuelve a cambiar")

	got, err := repos.Requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, got.Status)
	require.NotNil(t, got.ProcessedBy)
	assert.Equal(t, "مدير", *got.ProcessedBy)
	assert.NotNil(t, got.ProcessedAt)
}

func TestCustodyRepo_MarkByDocumentSoloActivas(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	repos := st.Repos()
	wh, _ := repos.Warehouses.GetByCode(ctx, "W-MAIN")
	it, _ := repos.Items.GetByCode(ctx, "IT-1")
	depts, _ := repos.Lookups.Departments(ctx)

	now := time.Now().UTC()
	doc := &entity.Document{DocNumber: "ISS-1", Type: entity.DocumentTypeIssuance, Date: now, WarehouseID: wh.ID, Status: entity.DocumentStatusApproved, CreatedAt: now}
	require.NoError(t, repos.Documents.Create(ctx, doc))
	for _, status := range []entity.CustodyStatus{entity.CustodyStatusActive, entity.CustodyStatusTransferred} {
		require.NoError(t, repos.Custody.Create(ctx, &entity.Custody{
			ItemID: it.ID, DepartmentID: depts[0].ID, EmployeeName: "سالم", Quantity: decimal.NewFromInt(1),
			ReceivedDate: now, Condition: "جديد", Status: status, DocID: &doc.ID,
		}))
	}

	n, err := repos.Custody.MarkByDocument(ctx, doc.ID, entity.CustodyStatusReturned)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	transferred, err := repos.Custody.ListByDepartment(ctx, depts[0].ID, entity.CustodyStatusTransferred)
	require.NoError(t, err)
	assert.Len(t, transferred, 1, "solo cambian las activas")

	n, err = repos.Custody.MarkByDocument(ctx, 4242, entity.CustodyStatusReturned)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLookupRepo_Exists(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedCatalog(t, st)
	depts, _ := st.Repos().Lookups.Departments(ctx)

	ok, err := st.Repos().Lookups.Exists(ctx, entity.LookupDepartments, depts[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Repos().Lookups.Exists(ctx, entity.LookupSuppliers, 4242)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Repos().Lookups.Exists(ctx, entity.LookupTable("items; DROP TABLE items"), 1)
	assert.Error(t, err)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	err := st.TxRunner().Run(ctx, func(repos inventory.Repos) error {
		if err := repos.Items.Create(ctx, &entity.Item{Code: "TMP", Name: "tmp", Unit: "u"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	it, err := st.Repos().Items.GetByCode(ctx, "TMP")
	require.NoError(t, err)
	assert.Nil(t, it)
}
