package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "InventoryDB", cfg.Store.Name)
	assert.Equal(t, "./InventoryDB.sqlite", cfg.Store.Path)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "inventory:changes", cfg.Redis.Channel)
	assert.True(t, cfg.Seed.OnStart)
	assert.InDelta(t, 0.7, cfg.Seed.StockProbability, 1e-9)
	assert.Zero(t, cfg.LowStock.Interval)
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Postgres")
	v.Set("DB_HOST", "db")
	v.Set("DB_PASSWORD", "p@ss word")
	v.Set("HTTP_PORT", "9090")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("SEED_ON_START", "false")
	v.Set("SEED_STOCK_PROBABILITY", "0.25")
	v.Set("LOW_STOCK_INTERVAL_MINUTES", "15")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Seed.OnStart)
	assert.InDelta(t, 0.25, cfg.Seed.StockProbability, 1e-9)
	assert.Equal(t, 15*time.Minute, cfg.LowStock.Interval)
	assert.Equal(t, "postgres://postgres:p%40ss%20word@db:5432/inventory_ledger?sslmode=disable", cfg.Store.DB.ConnectionString())
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mysql")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("SEED_STOCK_PROBABILITY", "1.5")
	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestStoreConfig_SQLiteDSN(t *testing.T) {
	dsn := config.StoreConfig{Name: "InventoryDB", Path: "/tmp/x/InventoryDB.sqlite"}.SQLiteDSN()
	assert.Equal(t, "file:/tmp/x/InventoryDB.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", dsn)

	dsn = config.StoreConfig{Name: "Otro"}.SQLiteDSN()
	assert.Contains(t, dsn, "file:Otro.sqlite?")
}
