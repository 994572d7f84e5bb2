// Package events entrega los eventos de dominio del libro de stock a analítica, después del Commit
// y sin bloquear la petición: un fallo de entrega nunca revierte una operación ya confirmada.
package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

var _ inventory.EventPublisher = (*Dispatcher)(nil)

// ErrQueueFull se devuelve cuando el buffer está lleno y el lote se descarta.
var ErrQueueFull = errors.New("cola de eventos llena, lote descartado")

// ErrClosed se devuelve al publicar después de Close.
var ErrClosed = errors.New("dispatcher de eventos cerrado")

// Sink es el destino final de los eventos (log, Redis Streams...).
type Sink interface {
	Write(ctx context.Context, events []entity.StockEvent) error
}

// Dispatcher encola lotes en un canal con buffer y un worker los escribe en el Sink.
type Dispatcher struct {
	sink  Sink
	queue chan []entity.StockEvent
	log   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	dropped atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher arranca el worker. buffer es la cantidad de lotes pendientes admitidos.
func NewDispatcher(sink Sink, buffer int, log zerolog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan []entity.StockEvent, buffer),
		log:   log.With().Str("component", "events").Logger(),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish encola sin bloquear. Si el buffer está lleno descarta el lote y devuelve ErrQueueFull.
func (d *Dispatcher) Publish(_ context.Context, events []entity.StockEvent) error {
	if len(events) == 0 {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	batch := append([]entity.StockEvent(nil), events...)
	select {
	case d.queue <- batch:
		return nil
	default:
		d.dropped.Add(int64(len(batch)))
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for batch := range d.queue {
		// la petición original ya terminó: el contexto de escritura es propio
		if err := d.sink.Write(context.Background(), batch); err != nil {
			d.failed.Add(int64(len(batch)))
			d.log.Warn().Err(err).Int("events", len(batch)).Msg("no se pudo entregar el lote de eventos")
		}
	}
}

// Close deja de aceptar eventos y espera a que se vacíe la cola o expire ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if n := d.dropped.Load() + d.failed.Load(); n > 0 {
		d.log.Warn().Int64("dropped", d.dropped.Load()).Int64("failed", d.failed.Load()).Msg("eventos no entregados")
	}
	return nil
}

// Stats devuelve cuántos eventos se descartaron (buffer lleno) y cuántos fallaron al escribirse.
func (d *Dispatcher) Stats() (dropped, failed int64) {
	return d.dropped.Load(), d.failed.Load()
}
