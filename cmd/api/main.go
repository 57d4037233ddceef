package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logapi/internal/config"
	handlers "logapi/internal/http/handler"
	"logapi/internal/http/middleware"
	"logapi/internal/otel"
	"logapi/internal/service"
	"logapi/internal/storage"
)

func main() {
	// Load configuration from file and environment (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, time.Local)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// The storage root is created at startup; daily subdirectories are
	// created lazily on the first upload of each day.
	if err := os.MkdirAll(cfg.StorageRoot, 0o755); err != nil {
		log.Fatalf("failed to create storage root %s: %v", cfg.StorageRoot, err)
	}

	store := storage.NewFilesystem(cfg.StorageRoot)
	logSvc := service.NewLogService(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		// The upload handler iterates multipart parts from the raw body in
		// wire order; pre-parsing would turn c.Body() into a re-marshaled
		// form in map order.
		DisablePreParseMultipartForm: true,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			log.Fatalf("failed to register metrics: %v", err)
		}
		app.Use(promMiddleware.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, logSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
