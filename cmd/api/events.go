package main

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/infrastructure/events"
	"github.com/jhoicas/warely-stock/pkg/config"
	"github.com/jhoicas/warely-stock/pkg/logger"
)

// openPublisher construye el publicador según EVENTS_DRIVER. El cierre vacía la cola pendiente.
func openPublisher(ctx context.Context, cfg config.EventsConfig, log *logger.Logger) (inventory.EventPublisher, func(context.Context) error, error) {
	switch cfg.Driver {
	case config.EventsDriverNone:
		return inventory.NopPublisher{}, func(context.Context) error { return nil }, nil
	case config.EventsDriverRedis:
		client, err := events.NewRedisClient(ctx, events.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		d := events.NewDispatcher(events.NewRedisSink(client, cfg.Stream, cfg.StreamMaxLen), cfg.Buffer, log.Zerolog())
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.Stream).Msg("eventos de stock hacia Redis Streams")
		return d, func(ctx context.Context) error {
			err := d.Close(ctx)
			_ = client.Close()
			return err
		}, nil
	default:
		d := events.NewDispatcher(events.NewLogSink(log.Zerolog()), cfg.Buffer, log.Zerolog())
		return d, d.Close, nil
	}
}
