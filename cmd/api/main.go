package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/warely-stock/docs"
	appanalytics "github.com/jhoicas/warely-stock/internal/application/analytics"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/warely-stock/internal/interfaces/http"
	"github.com/jhoicas/warely-stock/pkg/config"
	"github.com/jhoicas/warely-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Str("events_driver", cfg.Events.Driver).
		Bool("enforce_capacity", cfg.Ledger.EnforceCapacity).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	publisher, closePublisher, err := openPublisher(ctx, cfg.Events, log)
	if err != nil {
		log.Fatal().Err(err).Msg("publicador de eventos")
	}

	s := store.stores
	coordinator := inventory.NewStockCoordinator(store.tx, publisher, log.Component("coordinator"),
		inventory.Options{EnforceCapacity: cfg.Ledger.EnforceCapacity})
	if err := loadSeedStock(ctx, cfg, store, coordinator, log); err != nil {
		log.Fatal().Err(err).Msg("stock de apertura")
	}

	rateLimiter, err := httpRouter.NewRateLimiter(cfg.HTTP.RateLimit)
	if err != nil && cfg.HTTP.RateLimit != "" {
		log.Fatal().Err(err).Str("rate", cfg.HTTP.RateLimit).Msg("HTTP_RATE_LIMIT inválido")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	mountSwagger(app, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		Coordinator:   coordinator,
		OrderUC:       usecase.NewOrderUseCase(s.Orders),
		SlipUC:        usecase.NewSlipUseCase(s.Orders, s.Products, s.Locations, pdf.NewMarotoPDFGenerator()),
		ProductUC:     usecase.NewProductUseCase(store.tx, s.Products, s.Stock, s.Movements),
		LocationUC:    usecase.NewLocationUseCase(store.tx, s.Locations, s.Stock),
		Reconcile:     inventory.NewReconcileUseCase(s.Products, s.Stock, s.Movements, s.Orders),
		Replenishment: inventory.NewReplenishmentUseCase(store.analytics),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.analytics),
		RateLimiter:   rateLimiter,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		ServiceName:   cfg.App.Name,
		Ping:          store.ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Después del servidor: no llegan más operaciones y se vacía la cola de eventos.
	if err := closePublisher(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cierre del publicador de eventos")
	}

	log.Info().Msg("aplicación detenida")
}

// mountSwagger sirve la especificación registrada por el paquete docs en /docs.
func mountSwagger(app *fiber.App, log *logger.Logger) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Warn().Err(err).Msg("swagger no disponible")
		return
	}
	f, err := os.CreateTemp("", "warely-swagger-*.json")
	if err != nil {
		log.Warn().Err(err).Msg("swagger no disponible")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(doc); err != nil {
		log.Warn().Err(err).Msg("swagger no disponible")
		return
	}
	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: f.Name(),
		Path:     "docs",
		Title:    "Warely Stock API",
	}))
}
