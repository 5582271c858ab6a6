package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/eventbus"
	"github.com/workplan/workplan/pkg/metrics"
	"github.com/workplan/workplan/pkg/model"
)

// EpicSource abstracts the tracker API so sync runs can be tested against a
// fake.
type EpicSource interface {
	ListEpics(ctx context.Context, page, pageSize int) ([]RemoteEpic, bool, error)
}

type EpicStore interface {
	Upsert(ctx context.Context, epic *model.Epic) error
}

type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

type Syncer struct {
	source   EpicSource
	store    EpicStore
	bus      *eventbus.Bus
	pageSize int
	logger   *zap.Logger
}

func NewSyncer(source EpicSource, store EpicStore, bus *eventbus.Bus, pageSize int, logger *zap.Logger) *Syncer {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Syncer{source: source, store: store, bus: bus, pageSize: pageSize, logger: logger}
}

// Run walks every tracker page and upserts each epic. A failing upsert is
// counted and skipped so one bad row never aborts the run; a failing page
// fetch does abort, since everything after it would be missed anyway.
func (s *Syncer) Run(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	for page := 1; ; page++ {
		remotes, hasMore, err := s.source.ListEpics(ctx, page, s.pageSize)
		if err != nil {
			metrics.EpicSyncsTotal.WithLabelValues("error").Inc()
			return result, err
		}

		for _, remote := range remotes {
			epic := mapRemote(remote)
			if err := s.store.Upsert(ctx, &epic); err != nil {
				s.logger.Warn("failed to upsert epic",
					zap.String("key", remote.Key),
					zap.Error(err),
				)
				result.Failed++
				continue
			}
			result.Synced++
		}

		if !hasMore {
			break
		}
	}

	metrics.EpicSyncsTotal.WithLabelValues("success").Inc()
	metrics.EpicsSynced.Set(float64(result.Synced))
	s.logger.Info("epic sync finished",
		zap.Int("synced", result.Synced),
		zap.Int("failed", result.Failed),
	)
	s.publish(ctx, result)
	return result, nil
}

// RunLoop re-syncs on the interval until the context is cancelled. The first
// run happens immediately.
func (s *Syncer) RunLoop(ctx context.Context, interval time.Duration) {
	if _, err := s.Run(ctx); err != nil {
		s.logger.Error("epic sync failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				s.logger.Error("epic sync failed", zap.Error(err))
			}
		}
	}
}

func (s *Syncer) publish(ctx context.Context, result SyncResult) {
	if s.bus == nil {
		return
	}

	event, err := eventbus.NewEvent("epic.synced", eventbus.EpicSyncEvent{
		Synced: result.Synced,
		Failed: result.Failed,
	})
	if err != nil {
		s.logger.Warn("failed to build epic sync event", zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, eventbus.ChannelEpic, event); err != nil {
		s.logger.Warn("failed to publish epic sync event", zap.Error(err))
	}
}

func mapRemote(remote RemoteEpic) model.Epic {
	status := model.EpicStatus(remote.Status)
	switch status {
	case model.EpicOpen, model.EpicInProgress, model.EpicDone:
	default:
		status = model.EpicOpen
	}

	return model.Epic{
		Key:            remote.Key,
		Summary:        remote.Summary,
		Status:         status,
		Department:     remote.Department,
		Team:           remote.Team,
		Labels:         remote.Labels,
		EstimatedHours: remote.EstimatedHours,
	}
}
