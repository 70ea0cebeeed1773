package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"lofi/internal/modules/checklist/domain"
	"lofi/internal/modules/checklist/dto"
	checklistin "lofi/internal/modules/checklist/port/in"
	checklistout "lofi/internal/modules/checklist/port/out"
	"lofi/internal/modules/checklist/service"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/tx"
)

// Interactor keeps the day's checklist in memory and writes every change
// through to the task store before returning.
type Interactor struct {
	svc    *service.ChecklistService
	tasks  checklistout.TaskStore
	stats  checklistout.StatsStore
	txm    tx.Manager
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	current []domain.Task
	streak  domain.Stats
}

func NewInteractor(svc *service.ChecklistService, tasks checklistout.TaskStore, stats checklistout.StatsStore, txm tx.Manager, logger *zap.Logger) checklistin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, tasks: tasks, stats: stats, txm: txm, logger: logger}
}

func (i *Interactor) Load(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.load(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoaded(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoaded(ctx); err != nil {
		return dto.TaskOutput{}, err
	}
	task, err := i.svc.NewTask(input.Text)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	next := make([]domain.Task, 0, len(i.current)+1)
	next = append(next, i.current...)
	next = append(next, task)
	i.current = next
	if err := i.persistTasks(ctx, i.current); err != nil {
		return dto.TaskOutput{}, err
	}
	i.logger.Debug("task added", zap.String("task_id", task.ID))
	return toTaskOutput(task), nil
}

func (i *Interactor) Toggle(ctx context.Context, id string) (dto.ToggleOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoaded(ctx); err != nil {
		return dto.ToggleOutput{}, err
	}
	next, task, ok := domain.Toggle(i.current, id)
	if !ok {
		return dto.ToggleOutput{}, fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}
	stats, increased := i.svc.Streak(i.streak, next)

	// the list and the streak it earned land on disk together, and memory
	// follows only once they have
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		if err := i.persistTasks(ctx, next); err != nil {
			return err
		}
		if !increased {
			return nil
		}
		if err := i.stats.SaveStats(ctx, stats); err != nil {
			i.logger.Warn("save stats failed", zap.Error(err))
			return fmt.Errorf("save stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.ToggleOutput{}, err
	}
	i.current = next
	if increased {
		i.streak = stats
		i.logger.Info("streak increased", zap.Int("streak", stats.Streak))
	}
	return dto.ToggleOutput{
		Task:            toTaskOutput(task),
		Stats:           toStatsOutput(i.streak),
		StreakIncreased: increased,
	}, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoaded(ctx); err != nil {
		return err
	}
	next, ok := domain.Remove(i.current, id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}
	i.current = next
	return i.persistTasks(ctx, i.current)
}

// Rollover applies the daily reset to the in-memory list, for sessions that
// stay open across midnight.
func (i *Interactor) Rollover(ctx context.Context) (dto.RolloverOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoaded(ctx); err != nil {
		return dto.RolloverOutput{}, err
	}
	next, reset := i.svc.DailyReset(i.current)
	if reset {
		i.current = next
		if err := i.persistTasks(ctx, i.current); err != nil {
			return dto.RolloverOutput{}, err
		}
		i.logger.Info("daily reset applied", zap.String("day", i.svc.Today()))
	}
	return dto.RolloverOutput{Reset: reset, Snapshot: i.snapshot()}, nil
}

func (i *Interactor) ensureLoaded(ctx context.Context) error {
	if i.loaded {
		return nil
	}
	return i.load(ctx)
}

func (i *Interactor) load(ctx context.Context) error {
	tasks := i.tasks.LoadTasks(ctx)
	i.streak = i.stats.LoadStats(ctx)
	next, reset := i.svc.DailyReset(tasks)
	i.current = next
	i.loaded = true
	if reset {
		i.logger.Info("stale task list discarded", zap.Int("count", len(tasks)))
		return i.persistTasks(ctx, i.current)
	}
	return nil
}

func (i *Interactor) persistTasks(ctx context.Context, tasks []domain.Task) error {
	if err := i.tasks.SaveTasks(ctx, tasks); err != nil {
		i.logger.Warn("save tasks failed", zap.Error(err))
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (i *Interactor) snapshot() dto.Snapshot {
	out := make([]dto.TaskOutput, 0, len(i.current))
	for _, t := range i.current {
		out = append(out, toTaskOutput(t))
	}
	return dto.Snapshot{
		Today:     i.svc.Today(),
		Tasks:     out,
		Stats:     toStatsOutput(i.streak),
		Completed: domain.CountCompleted(i.current),
	}
}

func toTaskOutput(t domain.Task) dto.TaskOutput {
	return dto.TaskOutput{ID: t.ID, Text: t.Text, IsCompleted: t.IsCompleted, Date: t.Date}
}

func toStatsOutput(s domain.Stats) dto.StatsOutput {
	out := dto.StatsOutput{Streak: s.Streak}
	if s.LastCompletionDate != nil {
		out.LastCompletionDate = *s.LastCompletionDate
	}
	return out
}
