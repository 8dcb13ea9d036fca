package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/spendlens/spendlens/internal/analytics"
	"github.com/spendlens/spendlens/internal/auth"
	corecfg "github.com/spendlens/spendlens/internal/core/config"
	"github.com/spendlens/spendlens/internal/core/storage/postgres"
	"github.com/spendlens/spendlens/internal/expense"
	"github.com/spendlens/spendlens/internal/migrations"
	"github.com/spendlens/spendlens/internal/retention"
	"github.com/spendlens/spendlens/internal/server"
)

func main() {
	configPath := flag.String("config", "spendlens.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Local development convenience; absence of a .env file is not an error.
	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"retention_enabled", cfg.Retention.Enabled,
	)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Authentication middleware
	authMiddleware := auth.NewMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Disabled)
	if cfg.Auth.Disabled {
		slog.Warn("Authentication disabled: trusting X-User-ID header (development only)")
	}

	// 4. Feature services
	expenseSvc := expense.NewService(dbAdapter)
	analyticsSvc := analytics.NewService(dbAdapter)

	// 5. Retention sweeper (background purge of soft-deleted expenses)
	var sweeper *retention.Sweeper
	if cfg.Retention.Enabled {
		interval, err := cfg.Retention.SweepIntervalDuration()
		if err != nil {
			slog.Error("Invalid retention sweep interval", "value", cfg.Retention.SweepInterval, "error", err)
			os.Exit(1)
		}
		minAge, err := cfg.Retention.MinAgeDuration()
		if err != nil {
			slog.Error("Invalid retention min age", "value", cfg.Retention.MinAge, "error", err)
			os.Exit(1)
		}
		sweeper = retention.NewSweeper(interval, minAge, dbAdapter)
	}

	// 6. Initialize Server
	srv := server.New(
		fmtAddr(cfg.Server.Host, cfg.Server.Port),
		dbAdapter.DB(),
		cfg.Server.Mode,
		cfg.Server.AllowedOrigins,
	)
	expenseSvc.RegisterRoutes(srv.Engine, authMiddleware.RequireOwner)
	analyticsSvc.RegisterRoutes(srv.Engine, authMiddleware.RequireOwner)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sweeper != nil {
		go func() {
			if err := sweeper.Start(ctx); err != nil {
				slog.Error("Retention sweeper stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Retention sweeper disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
