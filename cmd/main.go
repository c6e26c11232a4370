package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pastebin/kvpaste/internal/config"
	"pastebin/kvpaste/internal/handler"
	"pastebin/kvpaste/internal/janitor"
	"pastebin/kvpaste/internal/metrics"
	"pastebin/kvpaste/internal/model"
	"pastebin/kvpaste/internal/repository"
	"pastebin/kvpaste/internal/service"
	"pastebin/kvpaste/pkg/crypto"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to an optional YAML config file")
	hashPin := flag.String("hash-pin", "", "print a bcrypt hash of the given pin for ADMIN_PIN_HASH and exit")
	flag.Parse()

	if *hashPin != "" {
		hash, err := crypto.HashPin(*hashPin)
		if err != nil {
			log.Fatalf("failed to hash pin: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Admin.UsesDefaultPin() {
		logger.Warn("ADMIN_PIN is not set, using the insecure default pin; do not run like this in production")
	}

	// 3. Initialize metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// 4. Open paste store (Redis, Postgres or in-memory)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store repository.PasteStore
	var janitorDone <-chan struct{}
	switch cfg.Store.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Store.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = repository.NewRedisPasteStore(redisClient, cfg.Store.KeyPrefix)
		logger.Info("using Redis paste store", zap.String("key_prefix", cfg.Store.KeyPrefix))
	case "postgres":
		db, err := config.NewPostgresDB(cfg.Store.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Store.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		pgStore := repository.NewPGPasteStore(db)
		janitorDone = janitor.Start(ctx, pgStore, cfg.Store.PurgeInterval, logger)
		store = pgStore
		logger.Info("using Postgres paste store", zap.Duration("purge_interval", cfg.Store.PurgeInterval))
	case "memory":
		store = repository.NewMemoryPasteStore()
		logger.Info("using in-memory paste store")
	default:
		logger.Fatal("unknown store backend", zap.String("backend", cfg.Store.Backend))
	}
	if m != nil {
		store = repository.NewInstrumentedPasteStore(store, cfg.Store.Backend, m)
	}

	// 5. Initialize services and handlers
	pasteService := service.NewPasteService(store)
	adminService := service.NewAdminService(cfg.Admin)

	pasteHandler := handler.NewPasteHandler(pasteService, logger)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(store)

	// 6. Setup router
	router := handler.SetupRouter(cfg, logger, m, pasteHandler, adminHandler, healthHandler)

	// 7. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if janitorDone != nil {
		<-janitorDone
	}
	if err := store.Close(); err != nil {
		logger.Error("failed to close paste store", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
