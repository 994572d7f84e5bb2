package inventory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/inventory"
)

// cell identifica una fila de product_locations.
type cell struct {
	ProductID  string
	LocationID string
}

// session es el estado de una sola ejecución de la transacción: filas bloqueadas,
// movimientos agregados y eventos pendientes de publicar tras el Commit.
// Se crea de nuevo en cada intento de TxRunner.Run.
type session struct {
	Stores
	actor entity.Actor
	opts  Options
	now   time.Time

	products  map[string]*entity.Product
	locations map[string]*entity.Location
	cells     map[cell]*entity.ProductLocation

	movementIDs []string
	events      []entity.StockEvent
}

func newSession(s Stores, actor entity.Actor, opts Options, now time.Time) *session {
	return &session{
		Stores:    s,
		actor:     actor,
		opts:      opts,
		now:       now,
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
		cells:     make(map[cell]*entity.ProductLocation),
	}
}

// resolveLocation obtiene la ubicación indicada o la por defecto de la bodega (id vacío).
func (s *session) resolveLocation(ctx context.Context, id string) (*entity.Location, error) {
	if loc, ok := s.locations[id]; ok {
		return loc, nil
	}
	var (
		loc *entity.Location
		err error
	)
	if id == "" {
		loc, err = s.Locations.GetDefault(ctx, s.actor.WarehouseID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, fmt.Errorf("%w: la bodega no tiene ubicación por defecto", domain.ErrLocationNotFound)
		}
	} else {
		loc, err = s.Locations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc == nil || loc.WarehouseID != s.actor.WarehouseID {
			return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
		}
	}
	s.locations[id] = loc
	s.locations[loc.ID] = loc
	return loc, nil
}

// lockProducts bloquea los productos en orden de id para evitar deadlocks entre transacciones.
func (s *session) lockProducts(ctx context.Context, ids []string) error {
	for _, id := range sortedUnique(ids) {
		if _, ok := s.products[id]; ok {
			continue
		}
		p, err := s.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.WarehouseID != s.actor.WarehouseID {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		s.products[id] = p
	}
	return nil
}

// lockCells bloquea las filas product_locations ordenadas por ubicación y luego producto.
// Con EnforceCapacity bloquea antes la fila de cada ubicación para serializar la suma de capacidad.
func (s *session) lockCells(ctx context.Context, cells []cell) error {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].LocationID != cells[j].LocationID {
			return cells[i].LocationID < cells[j].LocationID
		}
		return cells[i].ProductID < cells[j].ProductID
	})
	if s.opts.EnforceCapacity {
		locIDs := make([]string, 0, len(cells))
		for _, c := range cells {
			locIDs = append(locIDs, c.LocationID)
		}
		for _, id := range sortedUnique(locIDs) {
			loc, err := s.Locations.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
			}
			s.locations[id] = loc
		}
	}
	for _, c := range cells {
		if _, ok := s.cells[c]; ok {
			continue
		}
		pl, err := s.Stock.GetForUpdate(ctx, c.ProductID, c.LocationID)
		if err != nil {
			return err
		}
		s.cells[c] = pl
	}
	return nil
}

// changeCell aplica delta a la cantidad de un producto en una ubicación ya bloqueada.
func (s *session) changeCell(ctx context.Context, c cell, delta int64) (*entity.ProductLocation, error) {
	return s.applyCell(ctx, c, delta, true)
}

// restoreCell devuelve a la ubicación unidades reservadas que nunca salieron físicamente.
// No valida capacidad: una cancelación siempre debe poder aplicarse.
func (s *session) restoreCell(ctx context.Context, c cell, delta int64) (*entity.ProductLocation, error) {
	return s.applyCell(ctx, c, delta, false)
}

func (s *session) applyCell(ctx context.Context, c cell, delta int64, withCapacity bool) (*entity.ProductLocation, error) {
	pl, ok := s.cells[c]
	if !ok {
		return nil, fmt.Errorf("product_location %s/%s no bloqueada", c.ProductID, c.LocationID)
	}
	if overflows(pl.Quantity, delta) {
		return nil, fmt.Errorf("%w: la cantidad en la ubicación %s excede el máximo", domain.ErrInvalidInput, c.LocationID)
	}
	if pl.Quantity+delta < 0 {
		return nil, fmt.Errorf("%w: producto %s en ubicación %s tiene %d, se requieren %d",
			domain.ErrInsufficientLocationStock, c.ProductID, c.LocationID, pl.Quantity, -delta)
	}
	if delta > 0 && withCapacity && s.opts.EnforceCapacity {
		if err := s.checkCapacity(ctx, c.LocationID, delta); err != nil {
			return nil, err
		}
	}
	pl.Quantity += delta
	pl.UpdatedAt = s.now
	if err := s.Stock.Upsert(ctx, pl); err != nil {
		return nil, err
	}
	return pl, nil
}

func (s *session) checkCapacity(ctx context.Context, locationID string, delta int64) error {
	loc := s.locations[locationID]
	if loc == nil || loc.Capacity == nil {
		return nil
	}
	used, err := s.Stock.SumByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if used+delta > *loc.Capacity {
		return fmt.Errorf("%w: %s tiene %d de %d, ingreso de %d",
			domain.ErrCapacityExceeded, loc.Code, used, *loc.Capacity, delta)
	}
	return nil
}

// setCounters escribe los contadores de un producto bloqueado validando que no queden negativos.
func (s *session) setCounters(ctx context.Context, productID string, currentDelta, reservedDelta int64) error {
	p, ok := s.products[productID]
	if !ok {
		return fmt.Errorf("producto %s no bloqueado", productID)
	}
	if overflows(p.CurrentStock, currentDelta) || overflows(p.ReservedStock, reservedDelta) {
		return fmt.Errorf("%w: los contadores del producto %s exceden el máximo", domain.ErrInvalidInput, p.SKU)
	}
	current, reserved := p.CurrentStock+currentDelta, p.ReservedStock+reservedDelta
	if current < 0 {
		return fmt.Errorf("%w: producto %s tiene %d disponibles, se requieren %d",
			domain.ErrInsufficientStock, p.SKU, p.CurrentStock, -currentDelta)
	}
	if reserved < 0 {
		return fmt.Errorf("%w: reserva del producto %s quedaría en %d", domain.ErrConflict, p.SKU, reserved)
	}
	if err := s.Products.UpdateStock(ctx, productID, current, reserved); err != nil {
		return err
	}
	p.CurrentStock, p.ReservedStock, p.UpdatedAt = current, reserved, s.now
	return nil
}

// record valida y agrega un movimiento al libro, y encola el evento correspondiente.
func (s *session) record(ctx context.Context, m *entity.StockMovement, eventType string) error {
	m.ID = uuid.New().String()
	m.WarehouseID = s.actor.WarehouseID
	m.CreatedBy = s.actor.UserID
	m.CreatedAt = s.now
	if err := inventory.ValidateMovement(m); err != nil {
		return err
	}
	if err := s.Movements.Append(ctx, m); err != nil {
		return err
	}
	s.movementIDs = append(s.movementIDs, m.ID)
	s.emit(entity.StockEvent{
		Type:          eventType,
		ProductID:     m.ProductID,
		QuantityDelta: m.ProductDelta(),
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		MovementID:    m.ID,
	})
	return nil
}

// emit encola un evento; se publica solo si la transacción hace Commit.
func (s *session) emit(ev entity.StockEvent) {
	ev.WarehouseID = s.actor.WarehouseID
	ev.ActorID = s.actor.UserID
	ev.OccurredAt = s.now
	s.events = append(s.events, ev)
}

// counters devuelve los contadores de los productos tocados, ordenados por id.
func (s *session) counters() []ProductCounters {
	out := make([]ProductCounters, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, ProductCounters{ProductID: p.ID, CurrentStock: p.CurrentStock, ReservedStock: p.ReservedStock})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func overflows(a, delta int64) bool {
	return (delta > 0 && a > math.MaxInt64-delta) || (delta < 0 && a < math.MinInt64-delta)
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func ptr(s string) *string { return &s }
