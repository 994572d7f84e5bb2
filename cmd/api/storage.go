package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
	"github.com/jhoicas/warely-stock/internal/infrastructure/memory"
	"github.com/jhoicas/warely-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/warely-stock/internal/infrastructure/seed"
	"github.com/jhoicas/warely-stock/pkg/config"
	"github.com/jhoicas/warely-stock/pkg/logger"
)

// storage agrupa lo que el resto de la aplicación necesita del almacenamiento elegido por DB_DRIVER.
type storage struct {
	tx        inventory.TxRunner
	stores    inventory.Stores
	analytics repository.AnalyticsRepository
	ping      func(ctx context.Context) error
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.DB.Driver {
	case config.DBDriverMemory:
		store := memory.NewStore()
		if err := seedMemory(ctx, store, cfg); err != nil {
			return nil, fmt.Errorf("seed en memoria: %w", err)
		}
		log.Warn().Msg("DB_DRIVER=memory: el stock se pierde al reiniciar")
		return &storage{
			tx:        memory.NewTxRunner(store),
			stores:    store.Stores(),
			analytics: memory.NewAnalyticsRepository(store),
			close:     func() {},
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			tx:        postgres.NewTxRunner(pool, cfg.Ledger.MaxRetries, cfg.Ledger.LockTimeout, log.Component("tx_runner")),
			stores:    postgres.StoresFor(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	}
}

// seedMemory crea la ubicación por defecto de la bodega de desarrollo (DEV_WAREHOUSE_ID)
// para que las órdenes sin ubicación explícita funcionen desde el primer arranque.
func seedMemory(ctx context.Context, store *memory.Store, cfg *config.Config) error {
	if cfg.App.DevWarehouseID == "" {
		return nil
	}
	return store.Stores().Locations.Create(ctx, &entity.Location{
		WarehouseID: cfg.App.DevWarehouseID,
		Code:        "DEFAULT",
		Name:        "Ubicación por defecto",
		Type:        entity.LocationTypeStorage,
		IsDefault:   true,
	})
}

// loadSeedStock carga SEED_STOCK_FILE en la bodega de desarrollo. Solo aplica a DB_DRIVER=memory:
// en PostgreSQL el conteo se importa con el script de cmd/seed_stock.
func loadSeedStock(ctx context.Context, cfg *config.Config, store *storage, adj seed.Adjuster, log *logger.Logger) error {
	if cfg.DB.Driver != config.DBDriverMemory || cfg.App.SeedStockFile == "" {
		return nil
	}
	if cfg.App.DevWarehouseID == "" {
		return fmt.Errorf("SEED_STOCK_FILE requiere DEV_WAREHOUSE_ID")
	}
	f, err := os.Open(cfg.App.SeedStockFile)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := seed.ReadCSV(f, cfg.App.SeedStockLatin1)
	if err != nil {
		return err
	}
	catalog, err := seed.Plan(cfg.App.DevWarehouseID, rows)
	if err != nil {
		return err
	}
	actor := entity.Actor{WarehouseID: cfg.App.DevWarehouseID, UserID: seed.ReferenceID, Role: entity.RoleAdmin}
	if err := seed.Apply(ctx, catalog, store.stores.Products, store.stores.Locations, adj, actor); err != nil {
		return err
	}
	log.Info().
		Str("file", cfg.App.SeedStockFile).
		Int("products", len(catalog.Products)).
		Int("locations", len(catalog.Locations)).
		Msg("stock de apertura cargado")
	return nil
}
