package portal_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/portal"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type env struct {
	uc      *portal.RequestUseCase
	queries *inventory.QueryService
	bus     *inventory.ChangeBus
	dept    int64
	item    int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	st, err := sqlstore.Open(ctx, config.StoreConfig{
		Driver: config.DriverSQLite,
		Name:   "InventoryDB",
		Path:   filepath.Join(t.TempDir(), "InventoryDB.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Seed().InsertCatalog(ctx, &entity.Catalog{
		Departments: []entity.Department{{Code: "D1", Name: "الشؤون الإدارية"}},
		Warehouses:  []entity.CatalogWarehouse{{Warehouse: entity.Warehouse{Code: "W1", Name: "الرئيسي", IsActive: true}}},
		Items:       []entity.Item{{Code: "IT-1", Name: "ورق", Unit: "رزمة"}},
	}))

	repos := st.Repos()
	depts, err := repos.Lookups.Departments(ctx)
	require.NoError(t, err)
	item, err := repos.Items.GetByCode(ctx, "IT-1")
	require.NoError(t, err)

	bus := inventory.NewChangeBus()
	tx := st.TxRunner()
	return &env{
		uc:      portal.NewRequestUseCase(tx, bus, logger.Nop()).WithClock(func() time.Time { return fixedNow }),
		queries: inventory.NewQueryService(tx, bus),
		bus:     bus,
		dept:    depts[0].ID,
		item:    item.ID,
	}
}

func (e *env) draft() portal.RequestDraft {
	return portal.RequestDraft{
		DepartmentID: e.dept,
		RequestedBy:  "سارة",
		Items:        []entity.RequestItem{{ItemID: e.item, Quantity: decimal.NewFromInt(5)}},
	}
}

// ── Alta ─────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendiente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var notified atomic.Int32
	e.bus.Subscribe([]inventory.Table{inventory.TableRequests}, func(inventory.Change) { notified.Add(1) })

	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.EqualValues(t, 1, notified.Load())

	req, err := e.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	require.Len(t, req.Items, 1)
	assert.True(t, req.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Nil(t, req.ProcessedAt)

	pending, err := e.queries.PendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(d *portal.RequestDraft)
		field string
	}{
		{"sin artículos", func(d *portal.RequestDraft) { d.Items = nil }, "items"},
		{"cantidad cero", func(d *portal.RequestDraft) { d.Items[0].Quantity = decimal.Zero }, "items[0].quantity"},
		{"cantidad negativa", func(d *portal.RequestDraft) { d.Items[0].Quantity = decimal.NewFromInt(-2) }, "items[0].quantity"},
		{"departamento inexistente", func(d *portal.RequestDraft) { d.DepartmentID = 999 }, "department_id"},
		{"artículo inexistente", func(d *portal.RequestDraft) { d.Items[0].ItemID = 999 }, "items[0].item_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := e.draft()
			tc.mut(&d)
			_, err := e.uc.Create(ctx, d)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	pending, err := e.queries.PendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

// ── Procesamiento ────────────────────────────────────────────────────────────

func TestApprove_FijaProcesadoYEsTerminal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)

	require.NoError(t, e.uc.Approve(ctx, id, "أحمد"))

	req, err := e.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, req.Status)
	require.NotNil(t, req.ProcessedBy)
	assert.Equal(t, "أحمد", *req.ProcessedBy)
	require.NotNil(t, req.ProcessedAt)
	assert.True(t, req.ProcessedAt.Equal(fixedNow))

	assert.ErrorIs(t, e.uc.Reject(ctx, id, "أحمد"), domain.ErrConflict)
	assert.ErrorIs(t, e.uc.Approve(ctx, id, "أحمد"), domain.ErrConflict)

	pending, err := e.queries.PendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)

	require.NoError(t, e.uc.Reject(ctx, id, "أحمد"))
	req, err := e.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, req.Status)
}

func TestProcess_Errores(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	assert.ErrorIs(t, e.uc.Approve(ctx, 404, "x"), domain.ErrNotFound)

	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)
	assert.ErrorIs(t, e.uc.Approve(ctx, id, "  "), domain.ErrInvalidInput)
}

func TestProcess_ConcurrenteSoloUnoGana(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)

	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				err = e.uc.Approve(ctx, id, "a")
			} else {
				err = e.uc.Reject(ctx, id, "b")
			}
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrConflict):
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, 7, conflicts.Load())
}

func TestLivePendingRequests_SigueElFlujo(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := e.queries.LivePendingRequests(ctx)
	first := <-updates
	require.NoError(t, first.Err)
	assert.Empty(t, first.Value)

	next := func() []*entity.Request {
		t.Helper()
		select {
		case r := <-updates:
			require.NoError(t, r.Err)
			return r.Value
		case <-time.After(5 * time.Second):
			t.Fatal("no llegó la re-evaluación")
			return nil
		}
	}

	id, err := e.uc.Create(ctx, e.draft())
	require.NoError(t, err)
	pending := next()
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)

	require.NoError(t, e.uc.Reject(ctx, id, "مدير"))
	assert.Empty(t, next())

	cancel()
	for range updates {
	}
}

// ── Mapeo ────────────────────────────────────────────────────────────────────

func TestDraftFromDTO_YRespuesta(t *testing.T) {
	d := portal.DraftFromDTO(dto.CreateRequestRequest{
		DepartmentID: 3,
		RequestedBy:  "ليلى",
		Items:        []dto.RequestItemDTO{{ItemID: 7, Quantity: decimal.NewFromInt(2), Notes: "عاجل"}},
	})
	assert.EqualValues(t, 3, d.DepartmentID)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "عاجل", d.Items[0].Notes)

	by := "م"
	resp := portal.ToRequestResponse(&entity.Request{ID: 1, Status: entity.RequestStatusApproved, Items: d.Items, ProcessedBy: &by})
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "م", resp.ProcessedBy)
	assert.Len(t, resp.Items, 1)
}
