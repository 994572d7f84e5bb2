package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/order"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	store *Store
	inTx  bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.store.view(r.inTx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.ID)
		}
		st.orders[o.ID] = copyOrder(*o)
		st.orderIDs = append(st.orderIDs, o.ID)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.store.view(r.inTx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			o = copyOrder(o)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.store.view(r.inTx, func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, o.ID)
		}
		cur.Status = o.Status
		cur.CompletedDate = o.CompletedDate
		cur.CancelledDate = o.CancelledDate
		cur.UpdatedAt = o.UpdatedAt
		st.orders[o.ID] = cur
		return nil
	})
}

// ListByWarehouse devuelve las órdenes más recientes primero.
func (r *OrderRepo) ListByWarehouse(_ context.Context, warehouseID string, f repository.OrderFilter) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	err := r.store.view(r.inTx, func(st *state) error {
		for i := len(st.orderIDs) - 1; i >= 0; i-- {
			o := copyOrder(st.orders[st.orderIDs[i]])
			if o.WarehouseID != warehouseID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.Type != "" && o.Type != f.Type {
				continue
			}
			out = append(out, &o)
		}
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func (r *OrderRepo) SumInFlightOutbound(_ context.Context, productID string) (int64, error) {
	var sum int64
	err := r.store.view(r.inTx, func(st *state) error {
		for _, o := range st.orders {
			if o.Type != entity.OrderTypeOutbound || order.IsTerminal(o.Status) {
				continue
			}
			for _, it := range o.Items {
				if it.ProductID == productID {
					sum += it.Quantity
				}
			}
		}
		return nil
	})
	return sum, err
}

func (r *OrderRepo) CountInFlightByLocation(_ context.Context, locationID string) (int, error) {
	n := 0
	err := r.store.view(r.inTx, func(st *state) error {
		for _, o := range st.orders {
			if order.IsTerminal(o.Status) {
				continue
			}
			for _, it := range o.Items {
				if it.LocationID == locationID {
					n++
					break
				}
			}
		}
		return nil
	})
	return n, err
}
