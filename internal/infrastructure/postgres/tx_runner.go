package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los conflictos de concurrencia (40001, 40P01, 55P03) se reintentan hasta maxRetries veces
// y luego se devuelven como domain.ErrConcurrentModification.
type TxRunner struct {
	pool        *pgxpool.Pool
	maxRetries  int
	lockTimeout time.Duration
	log         zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, lockTimeout time.Duration, log zerolog.Logger) *TxRunner {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries, lockTimeout: lockTimeout, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(s inventory.Stores) error) error {
	for attempt := 0; ; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt >= r.maxRetries {
			return fmt.Errorf("%w: %d intentos: %v", domain.ErrConcurrentModification, attempt+1, err)
		}
		r.log.Debug().Err(err).Int("attempt", attempt+1).Msg("conflicto de concurrencia, reintentando")

		backoff := time.Duration(attempt+1) * 15 * time.Millisecond
		select {
		case <-ctx.Done():
			return errors.Join(domain.ErrConcurrentModification, ctx.Err())
		case <-time.After(backoff):
		}
	}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(s inventory.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros; el valor es un entero propio.
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(StoresFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StoresFor construye los repositorios sobre un pool o una tx.
func StoresFor(q Querier) inventory.Stores {
	return inventory.Stores{
		Products:  NewProductRepository(q),
		Locations: NewLocationRepository(q),
		Stock:     NewProductLocationRepository(q),
		Movements: NewStockMovementRepository(q),
		Orders:    NewOrderRepository(q),
	}
}
