// Package jobs tareas periódicas en segundo plano.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// WarehouseLister almacenes a revisar.
type WarehouseLister interface {
	ListActive(ctx context.Context) ([]*entity.Warehouse, error)
}

// SnapshotSource saldos por almacén (inventory.QueryService).
type SnapshotSource interface {
	InventorySnapshot(ctx context.Context, warehouseID int64) ([]dto.InventorySnapshotRow, error)
}

// LowStockAlert artículo con saldo en o bajo su umbral.
type LowStockAlert struct {
	WarehouseID   int64
	WarehouseCode string
	ItemID        int64
	ItemCode      string
	ItemName      string
	Stock         decimal.Decimal
	MinStock      decimal.Decimal
}

// Negative indica faltante (salidas por encima del saldo).
func (a LowStockAlert) Negative() bool { return a.Stock.IsNegative() }

// LowStockMonitor recorre los almacenes activos y reporta los artículos con stock bajo.
// Solo cuenta los pares (almacén, artículo) que tienen saldo registrado; un artículo que nunca
// pasó por el almacén no es una alerta.
type LowStockMonitor struct {
	warehouses WarehouseLister
	snapshots  SnapshotSource
	log        *logger.Logger
	onAlert    func(LowStockAlert)
}

// NewLowStockMonitor construye el monitor. onAlert puede ser nil (solo se registra en el log).
func NewLowStockMonitor(warehouses WarehouseLister, snapshots SnapshotSource, log *logger.Logger, onAlert func(LowStockAlert)) *LowStockMonitor {
	if log == nil {
		log = logger.Nop()
	}
	return &LowStockMonitor{warehouses: warehouses, snapshots: snapshots, log: log.Component("low-stock"), onAlert: onAlert}
}

// Scan ejecuta una revisión completa y devuelve las alertas encontradas.
// Un almacén que falla se registra y se salta; el error solo se devuelve si no se pudo listar.
func (m *LowStockMonitor) Scan(ctx context.Context) ([]LowStockAlert, error) {
	whs, err := m.warehouses.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active warehouses: %w", err)
	}

	var alerts []LowStockAlert
	for _, wh := range whs {
		if err := ctx.Err(); err != nil {
			return alerts, err
		}
		rows, err := m.snapshots.InventorySnapshot(ctx, wh.ID)
		if err != nil {
			m.log.Warn().Err(err).Int64("warehouse_id", wh.ID).Msg("no se pudo revisar el almacén")
			continue
		}
		for _, r := range rows {
			if r.LastUpdated == nil || r.Status != string(inventory.StockStatusLow) {
				continue
			}
			a := LowStockAlert{
				WarehouseID:   wh.ID,
				WarehouseCode: wh.Code,
				ItemID:        r.ItemID,
				ItemCode:      r.Code,
				ItemName:      r.Name,
				Stock:         r.Stock,
				MinStock:      r.MinStock,
			}
			alerts = append(alerts, a)
			if m.onAlert != nil {
				m.onAlert(a)
			}
		}
	}

	m.log.Info().Int("warehouses", len(whs)).Int("alerts", len(alerts)).Msg("revisión de stock bajo")
	return alerts, nil
}

// run adaptador para gocron: el error ya quedó en el log.
func (m *LowStockMonitor) run(ctx context.Context) {
	if _, err := m.Scan(ctx); err != nil {
		m.log.Error().Err(err).Msg("revisión de stock bajo fallida")
	}
}

// Scheduler agenda las tareas periódicas.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *logger.Logger
}

// NewScheduler agenda el monitor cada interval en modo singleton (no se solapan ejecuciones).
func NewScheduler(monitor *LowStockMonitor, interval time.Duration, log *logger.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("low stock interval must be positive, got %s", interval)
	}
	if log == nil {
		log = logger.Nop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(monitor.run, context.Background()),
		gocron.WithName("low-stock-monitor"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create low stock job: %w", err)
	}
	return &Scheduler{scheduler: s, log: log.Component("jobs")}, nil
}

// Start arranca el scheduler.
func (s *Scheduler) Start() {
	s.log.Info().Int("jobs", len(s.scheduler.Jobs())).Msg("scheduler iniciado")
	s.scheduler.Start()
}

// Stop detiene el scheduler esperando las ejecuciones en curso.
func (s *Scheduler) Stop() error {
	s.log.Info().Msg("deteniendo scheduler")
	return s.scheduler.Shutdown()
}
