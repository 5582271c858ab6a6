package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/workplan/workplan/migrations"
	"github.com/workplan/workplan/pkg/apiserver"
	"github.com/workplan/workplan/pkg/config"
	"github.com/workplan/workplan/pkg/eventbus"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := postgres.NewStore(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	sqlDB, err := store.DB().DB()
	if err != nil {
		logger.Fatal("failed to unwrap database handle", zap.Error(err))
	}
	if err := migrations.Up(sqlDB); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	var bus *eventbus.Bus
	if len(cfg.Redis.Addresses) > 0 {
		bus, err = eventbus.Connect(&cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer bus.Close()
	} else {
		logger.Warn("redis not configured, event publishing disabled")
	}

	var syncer *tracker.Syncer
	if cfg.Tracker.BaseURL != "" {
		epicRepo := postgres.NewEpicRepository(store.DB())
		client := tracker.NewClient(cfg.Tracker.BaseURL, cfg.Tracker.Token)
		syncer = tracker.NewSyncer(client, epicRepo, bus, cfg.Tracker.PageSize, logger)
	}

	server := apiserver.NewServer(apiserver.Deps{
		Store:  store,
		Bus:    bus,
		Syncer: syncer,
		Auth:   &cfg.Auth,
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:     server.Handler(),
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: promhttp.Handler(),
	}

	go func() {
		logger.Info("metrics server listening", zap.Int("port", cfg.Server.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("api server listening", zap.Int("port", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown error", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", zap.Error(err))
	}
}

func buildLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level

	return zapCfg.Build()
}
