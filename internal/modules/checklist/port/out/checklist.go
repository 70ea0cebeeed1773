package out

import (
	"context"

	"lofi/internal/modules/checklist/domain"
)

// TaskStore reads and writes the whole task list as one record. LoadTasks
// never fails: missing or malformed content yields an empty list.
type TaskStore interface {
	LoadTasks(ctx context.Context) []domain.Task
	SaveTasks(ctx context.Context, tasks []domain.Task) error
}

// StatsStore reads and writes the streak record; LoadStats falls back to
// domain.DefaultStats.
type StatsStore interface {
	LoadStats(ctx context.Context) domain.Stats
	SaveStats(ctx context.Context, stats domain.Stats) error
}
