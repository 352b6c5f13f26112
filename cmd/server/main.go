package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/garnizeh/employees/api"
	migrations "github.com/garnizeh/employees/db"
	"github.com/garnizeh/employees/internal/config"
	"github.com/garnizeh/employees/internal/db"
	"github.com/garnizeh/employees/internal/jobs"
	"github.com/garnizeh/employees/internal/repository/gormstore"
	"github.com/garnizeh/employees/internal/repository/sqlstore"
	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting employees server", "version", version, "buildTime", buildTime, "backend", cfg.Storage.Backend)

	ctx := context.Background()

	// Open database connection and apply migrations
	d, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, d, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	store, err := buildStore(cfg, d, logger)
	if err != nil {
		log.Fatalf("Failed to build store: %v", err)
	}
	svc := service.New(store, logger)

	// Asynchronous create path
	var queue api.EmployeeEnqueuer
	var pool *jobs.WorkerPool
	if cfg.Queue.Enabled {
		jobsRepo := jobs.NewRepository(d, cfg.Queue.MaxAttempts)
		handlers := map[string]jobs.Handler{
			jobs.TypeEmployeeCreate: jobs.CreateEmployeeHandler(svc, logger),
		}
		pool = jobs.NewWorkerPool(jobsRepo, handlers, logger, cfg.Queue.Workers)
		pool.Start(ctx)
		queue = jobsRepo
	}

	handler := api.SetupRoutes(version, buildTime, svc, queue)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if pool != nil {
		pool.Stop()
	}

	if err := d.Close(); err != nil {
		logger.Error("closing DB", "err", err)
	}

	logger.Info("server exited")
}

// buildStore selects the storage strategy once at startup.
func buildStore(cfg *config.Config, d *db.DB, logger *slog.Logger) (repository.EmployeeStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendORM:
		return gormstore.New(cfg.DatabasePath, logger)
	default:
		return sqlstore.New(d, logger), nil
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
