package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/order"
)

// StockCoordinator es el único componente que modifica juntos el libro de movimientos,
// el stock por ubicación y los contadores del producto. Cada operación pública es una
// transacción: bloqueos (orden → productos → ubicaciones), validación, mutación y Commit.
type StockCoordinator struct {
	txRunner  TxRunner
	publisher EventPublisher
	log       zerolog.Logger
	opts      Options
	now       func() time.Time
}

// NewStockCoordinator construye el coordinador. publisher puede ser nil (sin eventos).
func NewStockCoordinator(txRunner TxRunner, publisher EventPublisher, log zerolog.Logger, opts Options) *StockCoordinator {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &StockCoordinator{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log.With().Str("component", "stock_coordinator").Logger(),
		opts:      opts,
		now:       time.Now,
	}
}

// CreateOutboundOrder crea una orden de salida en PENDING y reserva todos sus ítems (todo o nada):
// por ítem descuenta currentStock y la ubicación, suma reservedStock y agrega un movimiento OUT.
func (c *StockCoordinator) CreateOutboundOrder(ctx context.Context, actor entity.Actor, in CreateOrderInput) (*OrderResult, error) {
	return c.createOrder(ctx, actor, entity.OrderTypeOutbound, in)
}

// CreateInboundOrder crea una orden de entrada en PENDING; no toca stock hasta completarse.
func (c *StockCoordinator) CreateInboundOrder(ctx context.Context, actor entity.Actor, in CreateOrderInput) (*OrderResult, error) {
	return c.createOrder(ctx, actor, entity.OrderTypeInbound, in)
}

func (c *StockCoordinator) createOrder(ctx context.Context, actor entity.Actor, orderType string, in CreateOrderInput) (*OrderResult, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	effect, err := order.CreationEffect(orderType)
	if err != nil {
		return nil, err
	}

	var sess *session
	var created *entity.Order
	err = c.txRunner.Run(ctx, func(s Stores) error {
		now := c.now()
		sess = newSession(s, actor, c.opts, now)

		o := &entity.Order{
			ID:          uuid.New().String(),
			WarehouseID: actor.WarehouseID,
			Type:        orderType,
			Status:      entity.OrderStatusPending,
			SupplierID:  in.SupplierID,
			Notes:       in.Notes,
			CreatedBy:   actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
			Items:       make([]entity.OrderItem, 0, len(in.Items)),
		}
		productIDs := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			// cada ítem queda atado a una ubicación concreta para que la cancelación restaure en el mismo lugar
			loc, err := sess.resolveLocation(ctx, it.LocationID)
			if err != nil {
				return err
			}
			o.Items = append(o.Items, entity.OrderItem{
				ID:         uuid.New().String(),
				OrderID:    o.ID,
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
				LocationID: loc.ID,
			})
			productIDs = append(productIDs, it.ProductID)
		}

		if err := sess.lockProducts(ctx, productIDs); err != nil {
			return err
		}
		for _, id := range productIDs {
			if !sess.products[id].IsActive {
				return fmt.Errorf("%w: producto %s inactivo", domain.ErrInvalidInput, sess.products[id].SKU)
			}
		}

		if effect == order.EffectReserve {
			if err := checkAvailable(sess, o.Items); err != nil {
				return err
			}
			if err := sess.lockCells(ctx, itemCells(o.Items)); err != nil {
				return err
			}
		}

		if err := s.Orders.Create(ctx, o); err != nil {
			return err
		}
		if effect == order.EffectReserve {
			for _, it := range o.Items {
				if err := reserve(ctx, sess, o, it); err != nil {
					return err
				}
			}
		}
		sess.emit(entity.StockEvent{
			Type:          entity.EventOrderStatusChanged,
			ReferenceType: entity.ReferenceOrder,
			ReferenceID:   o.ID,
		})
		created = o
		return nil
	})
	if err != nil {
		c.rejected("create_order", err).Str("order_type", orderType).Msg("orden rechazada")
		return nil, err
	}

	c.log.Info().Str("order_id", created.ID).Str("order_type", orderType).
		Int("items", len(created.Items)).Msg("orden creada")
	c.publish(ctx, sess.events)
	return &OrderResult{Order: created, Products: sess.counters(), MovementIDs: sess.movementIDs}, nil
}

// TransitionOrderStatus mueve la orden al nuevo estado y aplica el efecto de stock que
// corresponde según su dirección (ver order.Transition). Repetir una transición ya aplicada
// falla con ErrInvalidTransition y no modifica nada.
func (c *StockCoordinator) TransitionOrderStatus(ctx context.Context, actor entity.Actor, orderID, newStatus string) (*OrderResult, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, fmt.Errorf("%w: order_id requerido", domain.ErrInvalidInput)
	}

	var sess *session
	var updated *entity.Order
	var from string
	err := c.txRunner.Run(ctx, func(s Stores) error {
		now := c.now()
		sess = newSession(s, actor, c.opts, now)

		o, err := s.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil || o.WarehouseID != actor.WarehouseID {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		from = o.Status

		effect, err := order.Transition(o.Type, o.Status, newStatus)
		if err != nil {
			return err
		}

		if effect != order.EffectNone {
			productIDs := make([]string, 0, len(o.Items))
			for _, it := range o.Items {
				productIDs = append(productIDs, it.ProductID)
			}
			if err := sess.lockProducts(ctx, productIDs); err != nil {
				return err
			}
			if effect != order.EffectReleaseReservation {
				if err := sess.lockCells(ctx, itemCells(o.Items)); err != nil {
					return err
				}
			}
			for _, it := range o.Items {
				if err := applyEffect(ctx, sess, effect, o, it); err != nil {
					return err
				}
			}
		}

		o.Status = newStatus
		o.UpdatedAt = now
		switch newStatus {
		case entity.OrderStatusCompleted:
			o.CompletedDate = &now
		case entity.OrderStatusCancelled:
			o.CancelledDate = &now
		}
		if err := s.Orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		sess.emit(entity.StockEvent{
			Type:          entity.EventOrderStatusChanged,
			ReferenceType: entity.ReferenceOrder,
			ReferenceID:   o.ID,
		})
		updated = o
		return nil
	})
	if err != nil {
		c.rejected("transition_order", err).Str("order_id", orderID).Str("to", newStatus).Msg("transición rechazada")
		return nil, err
	}

	c.log.Info().Str("order_id", orderID).Str("from", from).Str("to", newStatus).Msg("orden actualizada")
	c.publish(ctx, sess.events)
	return &OrderResult{Order: updated, Products: sess.counters(), MovementIDs: sess.movementIDs}, nil
}

// TransferBetweenLocations mueve unidades entre dos ubicaciones de la misma bodega.
// El total del producto no cambia; se agrega un único movimiento TRANSFER.
func (c *StockCoordinator) TransferBetweenLocations(ctx context.Context, actor entity.Actor, in TransferInput) (*TransferResult, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, fmt.Errorf("%w: product_id, from_location_id y to_location_id son obligatorios", domain.ErrInvalidInput)
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 || in.Quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: cantidad debe estar entre 1 y %d", domain.ErrInvalidInput, int64(MaxQuantity))
	}

	var sess *session
	var res *TransferResult
	err := c.txRunner.Run(ctx, func(s Stores) error {
		sess = newSession(s, actor, c.opts, c.now())
		if _, err := sess.resolveLocation(ctx, in.FromLocationID); err != nil {
			return err
		}
		if _, err := sess.resolveLocation(ctx, in.ToLocationID); err != nil {
			return err
		}
		if err := sess.lockProducts(ctx, []string{in.ProductID}); err != nil {
			return err
		}
		from := cell{ProductID: in.ProductID, LocationID: in.FromLocationID}
		to := cell{ProductID: in.ProductID, LocationID: in.ToLocationID}
		if err := sess.lockCells(ctx, []cell{from, to}); err != nil {
			return err
		}

		src, err := sess.changeCell(ctx, from, -in.Quantity)
		if err != nil {
			return err
		}
		dst, err := sess.changeCell(ctx, to, in.Quantity)
		if err != nil {
			return err
		}

		transferID := uuid.New().String()
		m := &entity.StockMovement{
			ProductID:      in.ProductID,
			Type:           entity.MovementTypeTRANSFER,
			Quantity:       in.Quantity,
			FromLocationID: ptr(in.FromLocationID),
			ToLocationID:   ptr(in.ToLocationID),
			ReferenceType:  entity.ReferenceTransfer,
			ReferenceID:    transferID,
			Notes:          in.Notes,
		}
		if err := sess.record(ctx, m, entity.EventStockTransferred); err != nil {
			return err
		}
		res = &TransferResult{
			TransferID:     transferID,
			MovementID:     m.ID,
			ProductID:      in.ProductID,
			FromLocationID: in.FromLocationID,
			FromQuantity:   src.Quantity,
			ToLocationID:   in.ToLocationID,
			ToQuantity:     dst.Quantity,
		}
		return nil
	})
	if err != nil {
		c.rejected("transfer", err).Str("product_id", in.ProductID).Msg("traslado rechazado")
		return nil, err
	}

	c.log.Info().Str("product_id", in.ProductID).Str("from", in.FromLocationID).
		Str("to", in.ToLocationID).Int64("quantity", in.Quantity).Msg("traslado registrado")
	c.publish(ctx, sess.events)
	return res, nil
}

// AdjustLocationStock corrige la cantidad de un producto en una ubicación (conteo físico,
// merma, hallazgo) y aplica el mismo delta a currentStock.
//
//	ABSOLUTE  movimiento ADJUSTMENT por la diferencia con signo
//	IN        movimiento IN por Quantity
//	OUT       movimiento OUT por Quantity
func (c *StockCoordinator) AdjustLocationStock(ctx context.Context, actor entity.Actor, in AdjustInput) (*AdjustResult, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	switch in.Mode {
	case AdjustModeAbsolute:
		if in.Quantity < 0 || in.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: cantidad absoluta debe estar entre 0 y %d", domain.ErrInvalidInput, int64(MaxQuantity))
		}
	case AdjustModeIn, AdjustModeOut:
		if in.Quantity <= 0 || in.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: cantidad debe estar entre 1 y %d", domain.ErrInvalidInput, int64(MaxQuantity))
		}
	default:
		return nil, fmt.Errorf("%w: modo de ajuste %q", domain.ErrInvalidInput, in.Mode)
	}

	var sess *session
	var res *AdjustResult
	err := c.txRunner.Run(ctx, func(s Stores) error {
		sess = newSession(s, actor, c.opts, c.now())
		loc, err := sess.resolveLocation(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if err := sess.lockProducts(ctx, []string{in.ProductID}); err != nil {
			return err
		}
		key := cell{ProductID: in.ProductID, LocationID: loc.ID}
		if err := sess.lockCells(ctx, []cell{key}); err != nil {
			return err
		}

		var delta int64
		switch in.Mode {
		case AdjustModeAbsolute:
			delta = in.Quantity - sess.cells[key].Quantity
		case AdjustModeIn:
			delta = in.Quantity
		case AdjustModeOut:
			delta = -in.Quantity
		}

		res = &AdjustResult{AdjustmentID: uuid.New().String(), LocationID: loc.ID}
		if delta != 0 {
			if _, err := sess.changeCell(ctx, key, delta); err != nil {
				return err
			}
			if err := sess.setCounters(ctx, in.ProductID, delta, 0); err != nil {
				return err
			}
			m := &entity.StockMovement{
				ProductID:     in.ProductID,
				Type:          adjustMovementType(in.Mode),
				Quantity:      abs(delta),
				ReferenceType: entity.ReferenceAdjustment,
				ReferenceID:   res.AdjustmentID,
				Notes:         in.Notes,
			}
			if delta > 0 {
				m.ToLocationID = ptr(loc.ID)
			} else {
				m.FromLocationID = ptr(loc.ID)
			}
			if err := sess.record(ctx, m, entity.EventStockAdjusted); err != nil {
				return err
			}
			res.MovementID = m.ID
		}
		res.LocationQuantity = sess.cells[key].Quantity
		p := sess.products[in.ProductID]
		res.Product = ProductCounters{ProductID: p.ID, CurrentStock: p.CurrentStock, ReservedStock: p.ReservedStock}
		return nil
	})
	if err != nil {
		c.rejected("adjust", err).Str("product_id", in.ProductID).Str("mode", in.Mode).Msg("ajuste rechazado")
		return nil, err
	}

	c.log.Info().Str("product_id", in.ProductID).Str("location_id", res.LocationID).
		Str("mode", in.Mode).Int64("quantity", in.Quantity).Msg("ajuste registrado")
	c.publish(ctx, sess.events)
	return res, nil
}

// reserve: currentStock -= q, reservedStock += q, ubicación -= q, movimiento OUT.
func reserve(ctx context.Context, sess *session, o *entity.Order, it entity.OrderItem) error {
	if _, err := sess.changeCell(ctx, cell{it.ProductID, it.LocationID}, -it.Quantity); err != nil {
		return err
	}
	if err := sess.setCounters(ctx, it.ProductID, -it.Quantity, it.Quantity); err != nil {
		return err
	}
	return sess.record(ctx, &entity.StockMovement{
		ProductID:      it.ProductID,
		Type:           entity.MovementTypeOUT,
		Quantity:       it.Quantity,
		FromLocationID: ptr(it.LocationID),
		ReferenceType:  entity.ReferenceOrder,
		ReferenceID:    o.ID,
	}, entity.EventStockReserved)
}

func applyEffect(ctx context.Context, sess *session, effect order.StockEffect, o *entity.Order, it entity.OrderItem) error {
	switch effect {
	case order.EffectReleaseReservation:
		// el movimiento OUT de la reserva ya explica la salida física
		if err := sess.setCounters(ctx, it.ProductID, 0, -it.Quantity); err != nil {
			return err
		}
		sess.emit(entity.StockEvent{
			Type:          entity.EventReservationReleased,
			ProductID:     it.ProductID,
			ReferenceType: entity.ReferenceOrder,
			ReferenceID:   o.ID,
		})
		return nil

	case order.EffectRestoreCancelled:
		if _, err := sess.restoreCell(ctx, cell{it.ProductID, it.LocationID}, it.Quantity); err != nil {
			return err
		}
		if err := sess.setCounters(ctx, it.ProductID, it.Quantity, -it.Quantity); err != nil {
			return err
		}
		return sess.record(ctx, &entity.StockMovement{
			ProductID:     it.ProductID,
			Type:          entity.MovementTypeIN,
			Quantity:      it.Quantity,
			ToLocationID:  ptr(it.LocationID),
			ReferenceType: entity.ReferenceOrderCancellation,
			ReferenceID:   o.ID,
		}, entity.EventStockRestored)

	case order.EffectReceiveInbound:
		if _, err := sess.changeCell(ctx, cell{it.ProductID, it.LocationID}, it.Quantity); err != nil {
			return err
		}
		if err := sess.setCounters(ctx, it.ProductID, it.Quantity, 0); err != nil {
			return err
		}
		return sess.record(ctx, &entity.StockMovement{
			ProductID:     it.ProductID,
			Type:          entity.MovementTypeIN,
			Quantity:      it.Quantity,
			ToLocationID:  ptr(it.LocationID),
			ReferenceType: entity.ReferenceOrder,
			ReferenceID:   o.ID,
		}, entity.EventStockReceived)
	}
	return fmt.Errorf("efecto de stock no soportado: %s", effect)
}

// checkAvailable valida la demanda agregada por producto antes de tocar ubicaciones,
// para que la falta de stock total se reporte como ErrInsufficientStock.
func checkAvailable(sess *session, items []entity.OrderItem) error {
	demand := make(map[string]int64, len(items))
	for _, it := range items {
		demand[it.ProductID] += it.Quantity
	}
	for _, id := range sortedUnique(keys(demand)) {
		p := sess.products[id]
		if p.CurrentStock < demand[id] {
			return fmt.Errorf("%w: producto %s tiene %d disponibles, se requieren %d",
				domain.ErrInsufficientStock, p.SKU, p.CurrentStock, demand[id])
		}
	}
	return nil
}

func itemCells(items []entity.OrderItem) []cell {
	out := make([]cell, 0, len(items))
	for _, it := range items {
		out = append(out, cell{ProductID: it.ProductID, LocationID: it.LocationID})
	}
	return out
}

func validateActor(actor entity.Actor) error {
	if actor.WarehouseID == "" || actor.UserID == "" {
		return fmt.Errorf("%w: bodega y usuario requeridos", domain.ErrInvalidInput)
	}
	return nil
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la orden debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	for i, it := range items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: ítem %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 || it.Quantity > MaxQuantity {
			return fmt.Errorf("%w: ítem %d con cantidad %d", domain.ErrInvalidInput, i+1, it.Quantity)
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: ítem %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

func adjustMovementType(mode string) string {
	switch mode {
	case AdjustModeIn:
		return entity.MovementTypeIN
	case AdjustModeOut:
		return entity.MovementTypeOUT
	}
	return entity.MovementTypeADJUSTMENT
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func keys(m map[string]int64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// publish entrega los eventos ya confirmados; un fallo no revierte la operación.
func (c *StockCoordinator) publish(ctx context.Context, events []entity.StockEvent) {
	if len(events) == 0 {
		return
	}
	if err := c.publisher.Publish(ctx, events); err != nil {
		c.log.Warn().Err(err).Int("events", len(events)).Msg("no se pudieron publicar eventos")
	}
}

// rejected registra en debug los rechazos de negocio y en error los fallos inesperados.
func (c *StockCoordinator) rejected(op string, err error) *zerolog.Event {
	ev := c.log.Error()
	if isBusinessError(err) {
		ev = c.log.Debug()
	}
	return ev.Err(err).Str("op", op)
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput, domain.ErrInsufficientStock, domain.ErrInsufficientLocationStock,
		domain.ErrInvalidTransition, domain.ErrProductNotFound, domain.ErrLocationNotFound,
		domain.ErrOrderNotFound, domain.ErrCapacityExceeded, domain.ErrConcurrentModification,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
