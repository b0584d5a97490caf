package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/cache"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/config"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/database"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/logging"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/routes"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logLevel := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("ACCESS_TOKEN environment variable is required")
		os.Exit(1)
	}
	if cfg.StripeSecretKey == "" {
		slog.Warn("PAYMENT_METHOD_SECRET is not set, payment intents will fail")
	}

	// Database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, logLevel),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention by default)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention, cleanupDone)

	// Catalog cache (optional)
	var planCache services.PlanCache
	var cachePing handlers.Pinger
	var redisCache *cache.Cache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err = cache.Connect(ctx, cfg)
		cancel()
		if err != nil {
			slog.Warn("catalog cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			planCache = redisCache
			cachePing = redisCache.Ping
			slog.Info("catalog cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CatalogCacheTTL.String())
		}
	}

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	userService := services.NewUserService(db)
	roleGate := services.NewRoleGate(userService)
	favorites := services.NewListService(db, database.FavoritesTable)
	watchLater := services.NewListService(db, database.WatchLaterTable)
	catalogService := services.NewCatalogService(db, planCache, cfg.CatalogCacheTTL)
	paymentService := services.NewPaymentService(db, services.NewStripeProvider(cfg.StripeSecretKey))

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.SeedDefaults(seedCtx); err != nil {
		slog.Error("catalog seed failed", "error", err)
	}
	seedCancel()

	// Handlers
	tokenHandler := handlers.NewTokenHandler(tokenService)
	userHandler := handlers.NewUserHandler(userService)
	favoriteHandler := handlers.NewListHandler(favorites)
	saveHandler := handlers.NewListHandler(watchLater)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, cachePing)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		UnescapePath: true,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.NewMetrics(prometheus.DefaultRegisterer).Handler())
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, tokenService, roleGate, tokenHandler, userHandler, favoriteHandler, saveHandler, catalogHandler, paymentHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("cache close error", "error", err)
		}
	}

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
