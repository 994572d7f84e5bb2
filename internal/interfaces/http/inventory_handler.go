package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
)

// InventoryHandler reportes de inventario (protegido).
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Devuelve los SKUs por debajo del punto de reorden con la cantidad sugerida
//
//	de pedido, ordenados por déficit relativo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), actor.WarehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
