package main

import (
	"context"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/platform/logging"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Ledger Core API
// @version 1.0
// @description Multi-tenant double-entry ledger.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New("ledger_backend", cfg.LogLevel, cfg.IsProduction)
	slog.SetDefault(logger)

	var repos portsrepo.RepositoryProvider
	if cfg.UsesDatabase() {
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
				logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		repos = pgsql.NewRepositoryProvider(dbPool)
	} else {
		logger.Warn("No database configured, ledger state lives in memory only")
		repos = memory.NewStore().Repositories()
	}

	registry := standards.DefaultRegistry()
	serviceContainer := services.NewServiceContainer(cfg, registry, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to build rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, caller identity, rate limiting, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.ActorMiddleware(),
		middleware.RateLimit(limiter),
		gin.Recovery(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, registry, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("database", cfg.UsesDatabase()))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
