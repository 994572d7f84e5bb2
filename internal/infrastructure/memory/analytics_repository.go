package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/order"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el almacén en memoria.
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

func (r *AnalyticsRepo) GetProductsBelowReorderPoint(_ context.Context, warehouseID string) ([]repository.ReplenishmentItem, error) {
	out := make([]repository.ReplenishmentItem, 0)
	err := r.store.view(false, func(st *state) error {
		for _, id := range sortedKeys(st.products) {
			p := st.products[id]
			if p.WarehouseID != warehouseID || !p.IsActive || !p.BelowReorderPoint() {
				continue
			}
			out = append(out, repository.ReplenishmentItem{
				ProductID:     p.ID,
				SKU:           p.SKU,
				ProductName:   p.Name,
				CurrentStock:  p.CurrentStock,
				ReservedStock: p.ReservedStock,
				ReorderPoint:  p.ReorderPoint,
				MaxStock:      p.MaxStock,
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReorderPoint-out[i].CurrentStock > out[j].ReorderPoint-out[j].CurrentStock
	})
	return out, err
}

func (r *AnalyticsRepo) GetStockTotals(_ context.Context, warehouseID string) (repository.StockTotals, error) {
	var t repository.StockTotals
	err := r.store.view(false, func(st *state) error {
		for _, p := range st.products {
			if p.WarehouseID != warehouseID || !p.IsActive {
				continue
			}
			t.ActiveProducts++
			t.TotalUnits += p.CurrentStock
			t.ReservedUnits += p.ReservedStock
			if p.BelowReorderPoint() {
				t.BelowReorder++
			}
			if p.CurrentStock == 0 {
				t.OutOfStock++
			}
		}
		for _, o := range st.orders {
			if o.WarehouseID != warehouseID || order.IsTerminal(o.Status) {
				continue
			}
			if o.Type == entity.OrderTypeOutbound {
				t.PendingOutbound++
			} else {
				t.PendingInbound++
			}
		}
		return nil
	})
	return t, err
}

func (r *AnalyticsRepo) GetLocationUtilization(_ context.Context, warehouseID string, limit int) ([]repository.LocationUtilization, error) {
	out := make([]repository.LocationUtilization, 0)
	err := r.store.view(false, func(st *state) error {
		sums := make(map[string]int64)
		for k, pl := range st.cells {
			sums[k.locationID] += pl.Quantity
		}
		for _, id := range sortedKeys(st.locations) {
			l := st.locations[id]
			if l.WarehouseID != warehouseID {
				continue
			}
			out = append(out, repository.LocationUtilization{
				LocationID: l.ID, Code: l.Code, Type: l.Type, Capacity: l.Capacity, Quantity: sums[l.ID],
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return paginate(out, limit, 0), err
}
