package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/warely-stock/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStockSummary devuelve los KPIs de stock y la ocupación de las ubicaciones con más unidades.
// GET /api/dashboard/stock-summary
func (h *DashboardHandler) GetStockSummary(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	summary, err := h.uc.GetStockSummary(c.UserContext(), actor.WarehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
