package out

import (
	"context"

	"go.uber.org/zap"

	"lofi/internal/modules/checklist/domain"
	"lofi/internal/platform/kv"
)

// KVChecklistStore persists tasks and stats as two independent JSON records.
type KVChecklistStore struct {
	store  kv.Store
	logger *zap.Logger
}

func NewKVChecklistStore(store kv.Store, logger *zap.Logger) *KVChecklistStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVChecklistStore{store: store, logger: logger}
}

func (s *KVChecklistStore) LoadTasks(ctx context.Context) []domain.Task {
	tasks := kv.LoadJSON(ctx, s.store, s.logger, kv.KeyTasks, []domain.Task{})
	if tasks == nil {
		// a stored JSON null decodes to a nil slice
		return []domain.Task{}
	}
	return tasks
}

func (s *KVChecklistStore) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return kv.SaveJSON(ctx, s.store, kv.KeyTasks, tasks)
}

func (s *KVChecklistStore) LoadStats(ctx context.Context) domain.Stats {
	stats := kv.LoadJSON(ctx, s.store, s.logger, kv.KeyStats, domain.DefaultStats())
	if stats.Streak < 0 {
		return domain.DefaultStats()
	}
	return stats
}

func (s *KVChecklistStore) SaveStats(ctx context.Context, stats domain.Stats) error {
	return kv.SaveJSON(ctx, s.store, kv.KeyStats, stats)
}
