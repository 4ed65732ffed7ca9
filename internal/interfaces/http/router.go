package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/portal"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// RouterDeps dependencias para el router. En modo degradado (StoreErr != nil) los casos de uso son nil.
type RouterDeps struct {
	Store        storeChecker
	StoreErr     error
	Posting      *inventory.PostingService
	Queries      *inventory.QueryService
	Vouchers     *inventory.VoucherUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	ItemUC       *usecase.ItemUseCase
	DepartmentUC *usecase.DepartmentUseCase
	RequestUC    *portal.RequestUseCase
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(AccessLog(deps.Log))
	}

	health := NewHealthHandler(deps.Store, deps.StoreErr)
	app.Get("/health", health.Health)

	api := app.Group("/api", RequireStore(deps.StoreErr))
	if deps.StoreErr != nil {
		return
	}

	// Documents
	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Posting, deps.Queries, deps.Vouchers)
	documents.Post("/", documentHandler.Post)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Post("/:id/reverse", documentHandler.Reverse)
	documents.Get("/:id/voucher", documentHandler.Voucher)

	// Warehouses + inventario por almacén
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	inventoryHandler := NewInventoryHandler(deps.Queries)
	warehouses.Get("/", warehouseHandler.Tree)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", inventoryHandler.Snapshot)
	warehouses.Get("/:id/stock/:itemId", inventoryHandler.Stock)
	warehouses.Get("/:id/movements", inventoryHandler.Movements)

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)

	// Departments
	departments := api.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC, deps.Queries)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id/custody", departmentHandler.Custody)

	// Requests (portal de departamentos)
	requests := api.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC, deps.Queries)
	requests.Get("/pending", requestHandler.Pending)
	requests.Post("/", requestHandler.Create)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Post("/:id/approve", requestHandler.Approve)
	requests.Post("/:id/reject", requestHandler.Reject)
}

// AccessLog registra método, ruta, status y duración de cada petición.
func AccessLog(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
