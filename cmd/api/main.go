package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-ledger/docs"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/portal"
	"github.com/jhoicas/inventory-ledger/internal/application/seed"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventory-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/redisbus"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	httpRouter "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger/internal/jobs"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store_driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Un almacén que no abre no tumba el proceso: la API queda en modo degradado (503).
	store, storeErr := sqlstore.Open(ctx, cfg.Store)
	if storeErr != nil {
		log.Error().Err(storeErr).Str("store", cfg.Store.Name).Msg("almacén no disponible, modo degradado")
	} else {
		defer store.Close()
	}

	bus := inventory.NewChangeBus()

	if cfg.Redis.Enabled() {
		publisher := redisbus.New(cfg.Redis, log)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := publisher.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no responde; se reintentará en cada publicación")
		}
		cancel()
		unsubscribe := bus.Subscribe(nil, func(c inventory.Change) { publisher.Notify(ctx, c) })
		defer func() {
			unsubscribe()
			_ = publisher.Close()
		}()
	}

	deps := httpRouter.RouterDeps{StoreErr: storeErr, Log: log}
	var scheduler *jobs.Scheduler

	if storeErr == nil {
		if cfg.Seed.OnStart {
			seedIfEmpty(ctx, store, cfg.Seed, log)
		}

		tx := store.TxRunner()
		repos := store.Repos()
		queries := inventory.NewQueryService(tx, bus)

		deps.Store = store
		deps.Posting = inventory.NewPostingService(tx, bus, log.Component("posting"))
		deps.Queries = queries
		deps.Vouchers = inventory.NewVoucherUseCase(tx, infrapdf.NewVoucherGenerator(cfg.App.Name))
		deps.WarehouseUC = usecase.NewWarehouseUseCase(repos.Warehouses)
		deps.ItemUC = usecase.NewItemUseCase(repos.Items, bus)
		deps.DepartmentUC = usecase.NewDepartmentUseCase(repos.Lookups)
		deps.RequestUC = portal.NewRequestUseCase(tx, bus, log)

		if cfg.LowStock.Interval > 0 {
			monitor := jobs.NewLowStockMonitor(repos.Warehouses, queries, log, func(a jobs.LowStockAlert) {
				log.Warn().
					Str("warehouse", a.WarehouseCode).
					Str("item", a.ItemCode).
					Str("stock", a.Stock.String()).
					Str("min_stock", a.MinStock.String()).
					Bool("negative", a.Negative()).
					Msg("stock bajo")
			})
			scheduler, err = jobs.NewScheduler(monitor, cfg.LowStock.Interval, log)
			if err != nil {
				log.Error().Err(err).Msg("no se pudo crear el scheduler")
			} else {
				scheduler.Start()
			}
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Inventory Ledger API",
	}))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("apagado del scheduler")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func seedIfEmpty(ctx context.Context, store *sqlstore.Store, cfg config.SeedConfig, log *logger.Logger) {
	dataset, err := seed.LoadDataset(cfg.File)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.File).Msg("dataset de carga inicial inválido")
		return
	}
	seeder := seed.NewSeeder(store.Seed(), dataset, log.Component("seed"), seed.Config{StockProbability: cfg.StockProbability})
	if _, err := seeder.SeedIfEmpty(ctx); err != nil {
		log.Error().Err(err).Msg("carga inicial fallida")
	}
}
