package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (solo se agrega al final).
type StockMovementRepo struct {
	store *Store
	inTx  bool
}

func (r *StockMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	return r.store.view(r.inTx, func(st *state) error {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		st.movementSq++
		m.Seq = st.movementSq
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.store.view(r.inTx, func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	out := r.filter(true, func(m *entity.StockMovement) bool {
		if m.ProductID != productID {
			return false
		}
		if from != nil && m.CreatedAt.Before(*from) {
			return false
		}
		if to != nil && m.CreatedAt.After(*to) {
			return false
		}
		return true
	})
	return paginate(out, limit, offset), nil
}

func (r *StockMovementRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	out := r.filter(true, func(m *entity.StockMovement) bool {
		return (m.FromLocationID != nil && *m.FromLocationID == locationID) ||
			(m.ToLocationID != nil && *m.ToLocationID == locationID)
	})
	return paginate(out, limit, offset), nil
}

func (r *StockMovementRepo) ListByReference(_ context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	return r.filter(false, func(m *entity.StockMovement) bool {
		return m.ReferenceType == referenceType && m.ReferenceID == referenceID
	}), nil
}

func (r *StockMovementRepo) AllByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.filter(false, func(m *entity.StockMovement) bool { return m.ProductID == productID }), nil
}

func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	all, err := r.AllByProduct(ctx, productID)
	return len(all), err
}

// filter recorre el libro en orden de Seq (ascendente o descendente).
func (r *StockMovementRepo) filter(desc bool, match func(*entity.StockMovement) bool) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0)
	_ = r.store.view(r.inTx, func(st *state) error {
		n := len(st.movements)
		for i := 0; i < n; i++ {
			idx := i
			if desc {
				idx = n - 1 - i
			}
			m := st.movements[idx]
			if match(&m) {
				out = append(out, &m)
			}
		}
		return nil
	})
	return out
}
