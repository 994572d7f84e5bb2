package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/inventory"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// ReconcileUseCase reconstruye el stock de un producto desde el libro y lo compara con los contadores.
type ReconcileUseCase struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.ProductLocationRepository
	movementRepo repository.StockMovementRepository
	orderRepo    repository.OrderRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.ProductLocationRepository,
	movementRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
	}
}

// ReconcileProduct compara:
//   - currentStock guardado vs. el replay del libro,
//   - cada product_location vs. el replay por ubicación,
//   - reservedStock vs. la suma de ítems de órdenes OUTBOUND no terminales.
//
// Es de solo lectura; una diferencia se corrige con un ajuste, nunca editando el libro.
func (uc *ReconcileUseCase) ReconcileProduct(ctx context.Context, warehouseID, productID string) (*dto.ReconcileReportDTO, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.WarehouseID != warehouseID {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	movements, err := uc.movementRepo.AllByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	stored, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	inFlight, err := uc.orderRepo.SumInFlightOutbound(ctx, productID)
	if err != nil {
		return nil, err
	}

	replay := inventory.Replay(movements)
	report := &dto.ReconcileReportDTO{
		ProductID:        productID,
		Movements:        replay.Movements,
		StoredCurrent:    p.CurrentStock,
		ReplayedCurrent:  replay.CurrentStock,
		StoredReserved:   p.ReservedStock,
		InFlightReserved: inFlight,
		NegativeAtSeq:    replay.NegativeAt,
		LocationDrift:    []dto.LocationDriftDTO{},
	}

	seen := make(map[string]bool, len(stored))
	for _, pl := range stored {
		seen[pl.LocationID] = true
		if want := replay.ByLocation[pl.LocationID]; want != pl.Quantity {
			report.LocationDrift = append(report.LocationDrift, dto.LocationDriftDTO{
				LocationID: pl.LocationID, Stored: pl.Quantity, Replayed: want,
			})
		}
	}
	for locID, qty := range replay.ByLocation {
		if !seen[locID] && qty != 0 {
			report.LocationDrift = append(report.LocationDrift, dto.LocationDriftDTO{LocationID: locID, Replayed: qty})
		}
	}
	sort.Slice(report.LocationDrift, func(i, j int) bool {
		return report.LocationDrift[i].LocationID < report.LocationDrift[j].LocationID
	})

	report.Consistent = report.StoredCurrent == report.ReplayedCurrent &&
		report.StoredReserved == report.InFlightReserved &&
		len(report.LocationDrift) == 0 &&
		report.NegativeAtSeq == 0
	return report, nil
}
