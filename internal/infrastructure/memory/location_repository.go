package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct {
	store *Store
	inTx  bool
}

// Create inserta la ubicación; si es la nueva ubicación por defecto desmarca la anterior.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.store.view(r.inTx, func(st *state) error {
		for _, other := range st.locations {
			if other.WarehouseID == l.WarehouseID && other.Code == l.Code {
				return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
			}
		}
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		now := time.Now()
		l.CreatedAt, l.UpdatedAt = now, now
		if l.IsDefault {
			for id, other := range st.locations {
				if other.WarehouseID == l.WarehouseID && other.IsDefault {
					other.IsDefault = false
					st.locations[id] = other
				}
			}
		}
		st.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.store.view(r.inTx, func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.GetByID(ctx, id)
}

func (r *LocationRepo) GetDefault(_ context.Context, warehouseID string) (*entity.Location, error) {
	var out *entity.Location
	err := r.store.view(r.inTx, func(st *state) error {
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID && l.IsDefault {
				l := l
				out = &l
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.store.view(r.inTx, func(st *state) error {
		all := make([]*entity.Location, 0)
		for _, l := range st.locations {
			if l.WarehouseID == warehouseID {
				l := l
				all = append(all, &l)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *LocationRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.inTx, func(st *state) error {
		if _, ok := st.locations[id]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
		}
		delete(st.locations, id)
		for k := range st.cells {
			if k.locationID == id {
				delete(st.cells, k)
			}
		}
		return nil
	})
}
