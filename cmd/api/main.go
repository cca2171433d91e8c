package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"recondash/docs"
	"recondash/internal/backend"
	"recondash/internal/config"
	handlers "recondash/internal/http/handler"
	"recondash/internal/http/middleware"
	"recondash/internal/logger"
	"recondash/internal/otel"
	"recondash/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Reconciliation Dashboard API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.Must(logger.New(cfg.LogLevel))
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// The backend opens its database on the first query.
	be, err := backend.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize backend", zap.Error(err))
	}
	defer be.Close()

	svc := service.NewReconService(be, log)

	app, err := newApp(cfg, handlers.Deps{
		Service:          svc,
		Pinger:           be,
		DefaultTolerance: cfg.DefaultTolerancePct,
		Gatherer:         prometheus.DefaultGatherer,
		Log:              log,
	}, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to build http app", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", ":"+cfg.Port),
			zap.String("mode", string(be.Mode())),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(sctx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// newApp builds the fiber app with its middleware chain and every route.
func newApp(cfg *config.AppConfig, deps handlers.Deps, reg prometheus.Registerer) (*fiber.App, error) {
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// A panicking handler becomes a 500 through the error handler.
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.Logger(deps.Log))
	app.Use(prom.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	handlers.RegisterRoutes(app, deps)

	// Swagger UI. The registered doc is shared, so it is configured once here.
	docs.SwaggerInfo.Host = cfg.AppHost
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	app.Get("/swagger/*", swagger.HandlerDefault)

	return app, nil
}
