// Package analytics contiene los casos de uso de reportes de lectura sobre el stock
// de una bodega (dashboard).
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

const dashboardTopLocations = 5 // ubicaciones en el widget del dashboard

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen de stock de la bodega.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStockSummary construye el StockSummaryDTO de la bodega.
//
// Dos llamadas en paralelo:
//  1. GetStockTotals                  → KPIs de productos y órdenes abiertas
//  2. GetLocationUtilization(top 5)   → TopLocations
func (uc *DashboardUseCase) GetStockSummary(ctx context.Context, warehouseID string) (*dto.StockSummaryDTO, error) {
	type totalsResult struct {
		totals repository.StockTotals
		err    error
	}
	type locationsResult struct {
		locations []repository.LocationUtilization
		err       error
	}

	totalsCh := make(chan totalsResult, 1)
	locsCh := make(chan locationsResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetStockTotals(ctx, warehouseID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		l, err := uc.analyticsRepo.GetLocationUtilization(ctx, warehouseID, dashboardTopLocations)
		locsCh <- locationsResult{l, err}
	}()

	totals := <-totalsCh
	locs := <-locsCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", totals.err)
	}
	if locs.err != nil {
		return nil, fmt.Errorf("dashboard: ocupación de ubicaciones: %w", locs.err)
	}

	top := make([]dto.LocationUtilizationDTO, 0, len(locs.locations))
	for _, l := range locs.locations {
		top = append(top, dto.LocationUtilizationDTO{
			LocationID:     l.LocationID,
			Code:           l.Code,
			Type:           l.Type,
			Quantity:       l.Quantity,
			Capacity:       l.Capacity,
			UtilizationPct: utilizationPct(l.Quantity, l.Capacity),
		})
	}

	t := totals.totals
	return &dto.StockSummaryDTO{
		ActiveProducts:  t.ActiveProducts,
		TotalUnits:      t.TotalUnits,
		ReservedUnits:   t.ReservedUnits,
		BelowReorder:    t.BelowReorder,
		OutOfStock:      t.OutOfStock,
		PendingOutbound: t.PendingOutbound,
		PendingInbound:  t.PendingInbound,
		TopLocations:    top,
	}, nil
}

// utilizationPct porcentaje de ocupación con dos decimales; nil si no hay capacidad definida.
func utilizationPct(quantity int64, capacity *int64) *float64 {
	if capacity == nil || *capacity <= 0 {
		return nil
	}
	pct, _ := decimal.NewFromInt(quantity).Mul(hundred).Div(decimal.NewFromInt(*capacity)).Round(2).Float64()
	return &pct
}
