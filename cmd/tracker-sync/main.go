// tracker-sync periodically pulls epics from the external tracker into the
// planning database. It runs as a standalone worker so sync latency never
// competes with API traffic.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/workplan/workplan/migrations"
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
	if cfg.Tracker.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "tracker.base_url is required")
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
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
	}

	epicRepo := postgres.NewEpicRepository(store.DB())
	client := tracker.NewClient(cfg.Tracker.BaseURL, cfg.Tracker.Token)
	syncer := tracker.NewSyncer(client, epicRepo, bus, cfg.Tracker.PageSize, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("tracker sync worker started",
		zap.String("tracker", cfg.Tracker.BaseURL),
		zap.Duration("interval", cfg.Tracker.SyncInterval),
	)
	syncer.RunLoop(ctx, cfg.Tracker.SyncInterval)
	logger.Info("tracker sync worker stopped")
}
