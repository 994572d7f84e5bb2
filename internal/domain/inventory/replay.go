package inventory

import (
	"sort"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ReplayResult es el estado derivado únicamente del libro de movimientos de un producto.
type ReplayResult struct {
	CurrentStock int64
	ByLocation   map[string]int64
	Movements    int
	// NegativeAt guarda la secuencia del primer movimiento que dejó una ubicación en negativo (0 = nunca).
	NegativeAt int64
}

// Replay recorre los movimientos en orden de secuencia y reconstruye cantidades por ubicación y el total.
// Cada movimiento resta Quantity en su origen y la suma en su destino.
func Replay(movements []*entity.StockMovement) ReplayResult {
	ordered := make([]*entity.StockMovement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	res := ReplayResult{ByLocation: make(map[string]int64)}
	for _, m := range ordered {
		if m.FromLocationID != nil {
			res.ByLocation[*m.FromLocationID] -= m.Quantity
			if res.ByLocation[*m.FromLocationID] < 0 && res.NegativeAt == 0 {
				res.NegativeAt = m.Seq
			}
		}
		if m.ToLocationID != nil {
			res.ByLocation[*m.ToLocationID] += m.Quantity
		}
		res.CurrentStock += m.ProductDelta()
		res.Movements++
	}
	return res
}
