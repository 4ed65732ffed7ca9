package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

func rowFor(t *testing.T, rows []dto.InventorySnapshotRow, itemID int64) dto.InventorySnapshotRow {
	t.Helper()
	for _, r := range rows {
		if r.ItemID == itemID {
			return r
		}
	}
	t.Fatalf("artículo %d no está en el inventario", itemID)
	return dto.InventorySnapshotRow{}
}

// ── Inventario ───────────────────────────────────────────────────────────────

func TestStockFor_CeroSinMovimientos(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.stock(t, f.sub, f.paper).IsZero())
	assert.True(t, f.stock(t, 777, 888).IsZero())
}

func TestInventorySnapshot_UmbralDeStockBajo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.post(t, entity.DocumentTypeEntry, f.main, line(f.pens, 3), line(f.paper, 10))
	rows, err := f.queries.InventorySnapshot(ctx, f.main)
	require.NoError(t, err)
	assert.Equal(t, "low", rowFor(t, rows, f.pens).Status, "3 <= MinStock 3")
	assert.Equal(t, "low", rowFor(t, rows, f.paper).Status, "10 <= umbral por defecto")
	assert.Equal(t, "low", rowFor(t, rows, f.ink).Status, "sin saldo = 0")
	assert.True(t, rowFor(t, rows, f.pens).MinStock.Equal(qty(3)))
	assert.True(t, rowFor(t, rows, f.paper).MinStock.Equal(entity.DefaultMinStock))

	f.post(t, entity.DocumentTypeEntry, f.main, line(f.pens, 1), line(f.paper, 1))
	rows, err = f.queries.InventorySnapshot(ctx, f.main)
	require.NoError(t, err)
	assert.Equal(t, "normal", rowFor(t, rows, f.pens).Status)
	assert.Equal(t, "normal", rowFor(t, rows, f.paper).Status)
}

func TestInventorySnapshot_ValoresYOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.post(t, entity.DocumentTypeEntry, f.main, line(f.paper, 4), line(f.ink, 2))

	rows, err := f.queries.InventorySnapshot(ctx, f.main)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	names := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	assert.Equal(t, []string{"أقلام", "حبر", "ورق طباعة"}, names)

	paper := rowFor(t, rows, f.paper)
	assert.True(t, paper.Stock.Equal(qty(4)))
	assert.True(t, paper.TotalValue.Equal(decimal.RequireFromString("50")))
	assert.NotNil(t, paper.LastUpdated)

	ink := rowFor(t, rows, f.ink)
	assert.True(t, ink.TotalValue.IsZero(), "sin precio")
	assert.Nil(t, ink.Price)

	pens := rowFor(t, rows, f.pens)
	assert.True(t, pens.Stock.IsZero())
	assert.Nil(t, pens.LastUpdated)
}

// ── Historial ────────────────────────────────────────────────────────────────

func TestMovementHistory_SaldoCorrido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Saldo inicial sin movimiento (como el de la carga inicial).
	require.NoError(t, f.store.Seed().InsertOpeningBalances(ctx, []*entity.InventoryBalance{
		{WarehouseID: f.main, ItemID: f.paper, Quantity: qty(5), LastUpdated: time.Now().UTC()},
	}))
	f.post(t, entity.DocumentTypeEntry, f.main, line(f.paper, 10))
	f.post(t, entity.DocumentTypeIssuance, f.main, line(f.paper, 3))
	f.post(t, entity.DocumentTypeEntry, f.main, line(f.pens, 2))
	f.post(t, entity.DocumentTypeEntry, f.sub, line(f.paper, 100))

	hist, err := f.queries.MovementHistory(ctx, f.main)
	require.NoError(t, err)
	require.Len(t, hist, 3, "solo el almacén pedido")

	assert.Equal(t, f.pens, hist[0].ItemID)
	assert.True(t, hist[0].Balance.Equal(qty(2)))
	assert.Equal(t, "issuance", hist[1].Type)
	assert.True(t, hist[1].Balance.Equal(qty(12)), "got %s", hist[1].Balance)
	assert.True(t, hist[2].Balance.Equal(qty(15)), "got %s", hist[2].Balance)

	assert.Equal(t, "IT-1", hist[1].ItemCode)
	assert.Equal(t, "رزمة", hist[1].Unit)
	assert.NotEmpty(t, hist[1].DocNumber)
	assert.Equal(t, "", hist[1].DepartmentName)

	recent, err := f.queries.RecentMovements(ctx, f.main, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[1].Balance.Equal(qty(12)), "el límite no altera el saldo corrido")
}

func TestMovementPage_PaginasConSaldoCorridoExacto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 1; i <= 12; i++ {
		typ := entity.DocumentTypeEntry
		if i%3 == 0 {
			typ = entity.DocumentTypeIssuance
		}
		f.post(t, typ, f.main, line(f.paper, int64(i)), line(f.pens, 1))
	}

	all, err := f.queries.MovementHistory(ctx, f.main)
	require.NoError(t, err)
	require.Len(t, all, 24, "el historial completo no se recorta")

	var paged []dto.ItemMovement
	for offset := 0; ; offset += 5 {
		page, err := f.queries.MovementPage(ctx, f.main, 5, offset)
		require.NoError(t, err)
		assert.Equal(t, 24, page.Page.Total)
		assert.Equal(t, offset, page.Page.Offset)
		if len(page.Movements) == 0 {
			break
		}
		paged = append(paged, page.Movements...)
	}
	require.Len(t, paged, len(all))
	for i := range all {
		assert.Equal(t, all[i].ID, paged[i].ID)
		assert.True(t, all[i].Balance.Equal(paged[i].Balance), "fila %d: %s != %s", i, all[i].Balance, paged[i].Balance)
	}

	rest, err := f.queries.MovementPage(ctx, f.main, 0, 20)
	require.NoError(t, err)
	require.Len(t, rest.Movements, 4)
	assert.Equal(t, all[20].ID, rest.Movements[0].ID)

	_, err = f.queries.MovementPage(ctx, f.main, -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.queries.MovementPage(ctx, f.main, 5, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Documentos, solicitudes y custodias ──────────────────────────────────────

func TestDocumentDetail_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.queries.DocumentDetail(context.Background(), 31337)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingRequestsYCustodia_Vacios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reqs, err := f.queries.PendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, reqs)

	custody, err := f.queries.CustodyFor(ctx, f.dept)
	require.NoError(t, err)
	assert.Empty(t, custody)
}

func TestLiveSnapshot_SeReevaluaTrasContabilizar(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := f.queries.LiveSnapshot(ctx, f.main)

	first := <-updates
	require.NoError(t, first.Err)
	assert.True(t, rowFor(t, first.Value, f.paper).Stock.IsZero())

	f.post(t, entity.DocumentTypeEntry, f.main, line(f.paper, 6))

	select {
	case next := <-updates:
		require.NoError(t, next.Err)
		assert.True(t, rowFor(t, next.Value, f.paper).Stock.Equal(qty(6)))
	case <-time.After(5 * time.Second):
		t.Fatal("no llegó la re-evaluación")
	}

	cancel()
	for range updates {
	}
}
