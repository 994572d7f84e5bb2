package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición para una bodega.
type ReplenishmentUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(analyticsRepo repository.AnalyticsRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{analyticsRepo: analyticsRepo}
}

// GenerateReplenishmentList devuelve los productos bajo punto de reorden con la cantidad
// sugerida de pedido. El objetivo es MaxStock; si no está definido, ReorderPoint × 1.5 (redondeado arriba).
// Prioridad: mayor déficit relativo al punto de reorden primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, warehouseID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.analyticsRepo.GetProductsBelowReorderPoint(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	deficit := make(map[string]decimal.Decimal, len(rawItems))
	for _, item := range rawItems {
		target := item.MaxStock
		if target <= 0 {
			target = decimal.NewFromInt(item.ReorderPoint).Mul(factor).Ceil().IntPart()
		}
		suggested := target - item.CurrentStock
		if suggested < 0 {
			suggested = 0
		}
		if item.ReorderPoint > 0 {
			deficit[item.ProductID] = decimal.NewFromInt(item.ReorderPoint - item.CurrentStock).
				Div(decimal.NewFromInt(item.ReorderPoint))
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         item.ProductID,
			SKU:               item.SKU,
			ProductName:       item.ProductName,
			CurrentStock:      item.CurrentStock,
			ReservedStock:     item.ReservedStock,
			ReorderPoint:      item.ReorderPoint,
			TargetStock:       target,
			SuggestedOrderQty: suggested,
		})
	}

	// Tiebreak: mayor cantidad sugerida, luego SKU para un orden estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		da, db := deficit[a.ProductID], deficit[b.ProductID]
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.SKU < b.SKU
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
