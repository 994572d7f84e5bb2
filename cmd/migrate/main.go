// migrate aplica las migraciones SQL embebidas en el paquete postgres.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"time"

	"github.com/jhoicas/warely-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/warely-stock/pkg/config"
	"github.com/jhoicas/warely-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Name: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Error().Err(err).Strs("applied", applied).Msg("migración fallida")
		return
	}
	if len(applied) == 0 {
		log.Info().Msg("esquema al día")
		return
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
}
