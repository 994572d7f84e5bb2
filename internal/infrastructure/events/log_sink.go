package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// LogSink escribe cada evento como una línea de log estructurado (EVENTS_DRIVER=log).
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink construye el sink sobre el logger de la aplicación.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "stock_events").Logger()}
}

func (s *LogSink) Write(_ context.Context, events []entity.StockEvent) error {
	for _, ev := range events {
		s.log.Info().
			Str("event", ev.Type).
			Str("warehouse_id", ev.WarehouseID).
			Str("product_id", ev.ProductID).
			Int64("quantity_delta", ev.QuantityDelta).
			Str("reference_type", ev.ReferenceType).
			Str("reference_id", ev.ReferenceID).
			Str("movement_id", ev.MovementID).
			Str("actor_id", ev.ActorID).
			Time("occurred_at", ev.OccurredAt).
			Msg("stock event")
	}
	return nil
}
