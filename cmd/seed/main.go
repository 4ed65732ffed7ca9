// seed carga el catálogo canónico y saldos iniciales en un almacén vacío.
//
// Uso: go run ./cmd/seed [ruta/dataset.json]
// Sin argumento usa SEED_FILE o, si está vacío, el dataset embebido.
// Un almacén que ya tiene artículos no se modifica.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/inventory-ledger/internal/application/seed"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlstore"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Seed.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	dataset, err := seed.LoadDataset(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer dataset: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := sqlstore.Open(ctx, cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	seeder := seed.NewSeeder(store.Seed(), dataset, log.Component("seed"), seed.Config{
		StockProbability: cfg.Seed.StockProbability,
	})
	loaded, err := seeder.SeedIfEmpty(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carga inicial: %v\n", err)
		os.Exit(1)
	}
	if !loaded {
		fmt.Printf("El almacén %s ya tiene datos; no se cargó nada.\n", store.Name())
		return
	}
	fmt.Printf("✅ Catálogo cargado en %s (%s)\n", store.Name(), store.Driver())
}
