package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	appanalytics "github.com/jhoicas/warely-stock/internal/application/analytics"
	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Coordinator   *inventory.StockCoordinator
	OrderUC       *usecase.OrderUseCase
	SlipUC        *usecase.SlipUseCase
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	Reconcile     *inventory.ReconcileUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	RateLimiter   *limiter.Limiter // nil = sin límite
	JWTSecret     string
	JWTIssuer     string
	ServiceName   string
	// Ping verifica el almacenamiento en /health; nil = solo liveness.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff, entity.RoleViewer)
	operators := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	admins := RequireRole(entity.RoleAdmin)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RateLimit(deps.RateLimiter))

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Coordinator, deps.OrderUC, deps.SlipUC)
	orders.Post("/", operators, orderHandler.Create)
	orders.Get("/", anyRole, orderHandler.List)
	orders.Get("/:id", anyRole, orderHandler.GetByID)
	orders.Get("/:id/slip.pdf", anyRole, orderHandler.Slip)
	orders.Patch("/:id/status", operators, orderHandler.UpdateStatus)

	// Stock por ubicación
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Coordinator)
	stock.Post("/transfers", operators, stockHandler.Transfer)
	stock.Post("/adjustments", managers, stockHandler.Adjust)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Reconcile)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Get("/:id/locations", anyRole, productHandler.Locations)
	products.Get("/:id/movements", anyRole, productHandler.Movements)
	products.Get("/:id/reconcile", managers, productHandler.Reconcile)
	products.Delete("/:id", admins, productHandler.Delete)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", admins, locationHandler.Create)
	locations.Get("/", anyRole, locationHandler.List)
	locations.Get("/:id", anyRole, locationHandler.GetByID)
	locations.Get("/:id/stock", anyRole, locationHandler.Stock)
	locations.Delete("/:id", admins, locationHandler.Delete)

	// Reportes
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	protected.Get("/inventory/replenishment-list", anyRole, inventoryHandler.GetReplenishmentList)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stock-summary", anyRole, dashboardHandler.GetStockSummary)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacenamiento no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
