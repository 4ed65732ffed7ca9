package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

// QueryService consultas de solo lectura sobre el almacén.
// Cada consulta corre en una transacción de lectura para ver un único estado confirmado.
type QueryService struct {
	tx  TxRunner
	bus *ChangeBus
}

// NewQueryService construye el servicio. Con bus nil las consultas en vivo solo devuelven ErrNoChangeBus.
func NewQueryService(tx TxRunner, bus *ChangeBus) *QueryService {
	return &QueryService{tx: tx, bus: bus}
}

// StockFor saldo de un artículo en un almacén; 0 si nunca tuvo movimientos.
func (s *QueryService) StockFor(ctx context.Context, warehouseID, itemID int64) (decimal.Decimal, error) {
	qty := decimal.Zero
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		bal, err := repos.Balances.Get(ctx, warehouseID, itemID)
		if err != nil {
			return err
		}
		if bal != nil {
			qty = bal.Quantity
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock for: %w", err)
	}
	return qty, nil
}

// InventorySnapshot todos los artículos con su saldo en el almacén, ordenados por nombre (árabe).
func (s *QueryService) InventorySnapshot(ctx context.Context, warehouseID int64) ([]dto.InventorySnapshotRow, error) {
	var lines []*entity.StockLine
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		lines, err = repos.Balances.Snapshot(ctx, warehouseID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}

	rows := make([]dto.InventorySnapshotRow, 0, len(lines))
	for _, l := range lines {
		threshold := l.Threshold()
		row := dto.InventorySnapshotRow{
			ItemID:      l.ID,
			Code:        l.Code,
			Name:        l.Name,
			Unit:        l.Unit,
			Category:    deref(l.Category),
			Price:       l.Price,
			MinStock:    threshold,
			Stock:       l.Quantity,
			LastUpdated: l.LastUpdated,
			TotalValue:  decimal.Zero,
			Status:      string(inventory.Classify(l.Quantity, threshold)),
		}
		if l.Price != nil {
			row.TotalValue = l.Quantity.Mul(*l.Price)
		}
		rows = append(rows, row)
	}

	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(language.Arabic)
	sort.SliceStable(rows, func(i, j int) bool {
		return col.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	return rows, nil
}

// MovementHistory todos los movimientos del almacén, del más reciente al más antiguo.
func (s *QueryService) MovementHistory(ctx context.Context, warehouseID int64) ([]dto.ItemMovement, error) {
	return s.RecentMovements(ctx, warehouseID, 0)
}

// RecentMovements los primeros limit movimientos de MovementHistory (<= 0 = todos).
func (s *QueryService) RecentMovements(ctx context.Context, warehouseID int64, limit int) ([]dto.ItemMovement, error) {
	rows, _, err := s.movements(ctx, warehouseID, limit, 0, false)
	return rows, err
}

// MovementPage una página de MovementHistory más el total de movimientos del almacén.
// limit <= 0 devuelve desde offset hasta el final.
func (s *QueryService) MovementPage(ctx context.Context, warehouseID int64, limit, offset int) (*dto.MovementListResponse, error) {
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "no puede ser negativo")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "no puede ser negativo")
	}
	rows, total, err := s.movements(ctx, warehouseID, limit, offset, true)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements: rows,
		Page:      dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// movements lee el historial y calcula Balance, el saldo real del artículo justo después de
// cada movimiento: se parte del saldo actual y se deshace cada movimiento hacia atrás.
// Para una página con offset se pliegan también las filas anteriores a ella. Historial, saldos
// y total se leen en la misma transacción para que el pliegue sea exacto.
func (s *QueryService) movements(ctx context.Context, warehouseID int64, limit, offset int, count bool) ([]dto.ItemMovement, int, error) {
	fetch := 0
	if limit > 0 {
		fetch = offset + limit
	}
	var history []*entity.MovementLine
	var total int
	running := make(map[int64]decimal.Decimal)
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		history, err = repos.Movements.History(ctx, warehouseID, fetch)
		if err != nil {
			return err
		}
		if count {
			if total, err = repos.Movements.CountByWarehouse(ctx, warehouseID); err != nil {
				return err
			}
		}
		for _, m := range history {
			if _, ok := running[m.ItemID]; ok {
				continue
			}
			bal, err := repos.Balances.Get(ctx, warehouseID, m.ItemID)
			if err != nil {
				return err
			}
			qty := decimal.Zero
			if bal != nil {
				qty = bal.Quantity
			}
			running[m.ItemID] = qty
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("movement history: %w", err)
	}

	out := make([]dto.ItemMovement, 0, len(history))
	for i, m := range history {
		row := toItemMovement(m)
		row.Balance = running[m.ItemID]
		running[m.ItemID] = row.Balance.Sub(inventory.SignedQuantity(m.Type, m.Quantity))
		if i >= offset {
			out = append(out, row)
		}
	}
	return out, total, nil
}

// PendingRequests solicitudes pendientes, más recientes primero.
func (s *QueryService) PendingRequests(ctx context.Context) ([]*entity.Request, error) {
	var list []*entity.Request
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		list, err = repos.Requests.ListByStatus(ctx, entity.RequestStatusPending)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pending requests: %w", err)
	}
	return list, nil
}

// CustodyFor custodias activas de un departamento.
func (s *QueryService) CustodyFor(ctx context.Context, departmentID int64) ([]*entity.Custody, error) {
	var list []*entity.Custody
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		list, err = repos.Custody.ListByDepartment(ctx, departmentID, entity.CustodyStatusActive)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("custody for: %w", err)
	}
	return list, nil
}

// DocumentDetail cabecera y renglones de un documento. ErrNotFound si no existe.
func (s *QueryService) DocumentDetail(ctx context.Context, docID int64) (*dto.DocumentDetailResponse, error) {
	var doc *entity.Document
	var lines []*entity.DocumentLine
	err := s.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		doc, err = repos.Documents.GetByID(ctx, docID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		lines, err = repos.Documents.Lines(ctx, docID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("document detail: %w", err)
	}

	out := &dto.DocumentDetailResponse{
		Document: toDocumentResponse(doc),
		Lines:    make([]dto.DocumentLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, toDocumentLineResponse(l))
	}
	return out, nil
}

// LiveSnapshot InventorySnapshot re-evaluado después de cada cambio de saldos o artículos.
func (s *QueryService) LiveSnapshot(ctx context.Context, warehouseID int64) <-chan Result[[]dto.InventorySnapshotRow] {
	return Live(ctx, s.bus, []Table{TableInventory, TableItems}, func(ctx context.Context) ([]dto.InventorySnapshotRow, error) {
		return s.InventorySnapshot(ctx, warehouseID)
	})
}

// LivePendingRequests PendingRequests re-evaluado después de cada cambio en solicitudes.
func (s *QueryService) LivePendingRequests(ctx context.Context) <-chan Result[[]*entity.Request] {
	return Live(ctx, s.bus, []Table{TableRequests}, s.PendingRequests)
}
