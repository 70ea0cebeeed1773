package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checklistout "lofi/internal/modules/checklist/adapter/out"
	"lofi/internal/modules/checklist/domain"
	"lofi/internal/modules/checklist/dto"
	checklistin "lofi/internal/modules/checklist/port/in"
	"lofi/internal/modules/checklist/service"
	"lofi/internal/modules/checklist/usecase"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/kv"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("task-%d", s.n)
}

func newInteractor(t *testing.T, store kv.Store, clk *fakeClock) checklistin.Usecase {
	t.Helper()
	adapter := checklistout.NewKVChecklistStore(store, zap.NewNop())
	return usecase.NewInteractor(service.NewChecklistService(clk, &seqID{}), adapter, adapter, store, zap.NewNop())
}

func persistedTasks(t *testing.T, store kv.Store) []domain.Task {
	t.Helper()
	raw, err := store.Get(context.Background(), kv.KeyTasks)
	require.NoError(t, err)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(raw, &tasks))
	return tasks
}

func inMemoryTasks(t *testing.T, uc checklistin.Usecase) []domain.Task {
	t.Helper()
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	out := make([]domain.Task, 0, len(snap.Tasks))
	for _, task := range snap.Tasks {
		out = append(out, domain.Task{ID: task.ID, Text: task.Text, IsCompleted: task.IsCompleted, Date: task.Date})
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC)
}

func TestWriteThroughAfterEveryOperation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(t, store, &fakeClock{now: day(19)})

	a, err := uc.Add(ctx, dto.AddInput{Text: "read chapter 3"})
	require.NoError(t, err)
	assert.Equal(t, inMemoryTasks(t, uc), persistedTasks(t, store))

	b, err := uc.Add(ctx, dto.AddInput{Text: "  write notes  "})
	require.NoError(t, err)
	assert.Equal(t, "  write notes  ", b.Text)
	assert.Equal(t, inMemoryTasks(t, uc), persistedTasks(t, store))

	_, err = uc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, inMemoryTasks(t, uc), persistedTasks(t, store))

	require.NoError(t, uc.Delete(ctx, b.ID))
	assert.Equal(t, inMemoryTasks(t, uc), persistedTasks(t, store))

	require.NoError(t, uc.Delete(ctx, a.ID))
	assert.Empty(t, persistedTasks(t, store))
}

func TestAddRejectsBlankText(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, kv.NewMemoryStore(), &fakeClock{now: day(19)})
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := uc.Add(context.Background(), dto.AddInput{Text: text})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
}

func TestAddStampsTodayAndUniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(t, kv.NewMemoryStore(), &fakeClock{now: day(19)})
	a, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.NoError(t, err)
	b, err := uc.Add(ctx, dto.AddInput{Text: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "2026-10-19", a.Date)
	assert.False(t, a.IsCompleted)
}

func TestStreakIncrementsOncePerDayDespiteRetoggles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	clk := &fakeClock{now: day(19)}
	uc := newInteractor(t, store, clk)

	a, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.NoError(t, err)
	b, err := uc.Add(ctx, dto.AddInput{Text: "b"})
	require.NoError(t, err)

	out, err := uc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, out.StreakIncreased)
	assert.Zero(t, out.Stats.Streak)

	out, err = uc.Toggle(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, out.StreakIncreased)
	assert.Equal(t, 1, out.Stats.Streak)
	assert.Equal(t, "2026-10-19", out.Stats.LastCompletionDate)

	// off and back on the same day
	_, err = uc.Toggle(ctx, b.ID)
	require.NoError(t, err)
	out, err = uc.Toggle(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, out.StreakIncreased)
	assert.Equal(t, 1, out.Stats.Streak)

	var stats domain.Stats
	raw, err := store.Get(ctx, kv.KeyStats)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 1, stats.Streak)
}

func TestEmptyListNeverCreditsStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(t, kv.NewMemoryStore(), &fakeClock{now: day(19)})
	a, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, a.ID))

	snap, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.Stats.Streak)
}

func TestLoadDiscardsStaleListAndPersistsEmptiness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, kv.SaveJSON(ctx, store, kv.KeyTasks, []domain.Task{
		{ID: "old", Text: "yesterday", Date: "2026-10-18"},
		{ID: "new", Text: "today", Date: "2026-10-19"},
	}))

	uc := newInteractor(t, store, &fakeClock{now: day(19)})
	snap, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, persistedTasks(t, store))
}

func TestLoadKeepsTodaysList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, kv.SaveJSON(ctx, store, kv.KeyTasks, []domain.Task{
		{ID: "t1", Text: "today", Date: "2026-10-19", IsCompleted: true},
	}))
	require.NoError(t, store.Set(ctx, kv.KeyStats, []byte(`{"streak":4,"lastCompletionDate":"2026-10-18"}`)))

	uc := newInteractor(t, store, &fakeClock{now: day(19)})
	snap, err := uc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, 4, snap.Stats.Streak)
}

func TestLoadToleratesMalformedRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kv.KeyTasks, []byte("not json")))
	require.NoError(t, store.Set(ctx, kv.KeyStats, []byte("null")))

	uc := newInteractor(t, store, &fakeClock{now: day(19)})
	snap, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Zero(t, snap.Stats.Streak)
	assert.Empty(t, snap.Stats.LastCompletionDate)
}

func TestRolloverAtMidnight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	clk := &fakeClock{now: day(19)}
	uc := newInteractor(t, store, clk)
	_, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.NoError(t, err)

	out, err := uc.Rollover(ctx)
	require.NoError(t, err)
	assert.False(t, out.Reset)
	assert.Len(t, out.Snapshot.Tasks, 1)

	clk.now = day(20)
	out, err = uc.Rollover(ctx)
	require.NoError(t, err)
	assert.True(t, out.Reset)
	assert.Empty(t, out.Snapshot.Tasks)
	assert.Equal(t, "2026-10-20", out.Snapshot.Today)
	assert.Empty(t, persistedTasks(t, store))
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(t, kv.NewMemoryStore(), &fakeClock{now: day(19)})
	_, err := uc.Toggle(ctx, "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, uc.Delete(ctx, "nope"), apperrors.ErrNotFound)
}

type failingStore struct{ *kv.MemoryStore }

func (failingStore) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestWriteFailureIsReportedButMemoryStaysAuthoritative(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(t, failingStore{kv.NewMemoryStore()}, &fakeClock{now: day(19)})

	_, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.Error(t, err)

	snap, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Tasks, 1)
}

type statsFailingStore struct {
	*kv.MemoryStore
	failing *bool
}

func (s statsFailingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == kv.KeyStats && *s.failing {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func persistedStats(t *testing.T, store kv.Store) domain.Stats {
	t.Helper()
	raw, err := store.Get(context.Background(), kv.KeyStats)
	require.NoError(t, err)
	var stats domain.Stats
	require.NoError(t, json.Unmarshal(raw, &stats))
	return stats
}

func TestStreakWriteFailureRollsBackTheWholeToggle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	failing := true
	store := statsFailingStore{MemoryStore: kv.NewMemoryStore(), failing: &failing}
	uc := newInteractor(t, store, &fakeClock{now: day(19)})

	a, err := uc.Add(ctx, dto.AddInput{Text: "a"})
	require.NoError(t, err)

	_, err = uc.Toggle(ctx, a.ID)
	require.Error(t, err)

	persisted := persistedTasks(t, store)
	require.Len(t, persisted, 1)
	assert.False(t, persisted[0].IsCompleted)

	snap, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Tasks[0].IsCompleted, "memory matches the rolled back disk")
	assert.Equal(t, 0, snap.Stats.Streak)

	failing = false
	out, err := uc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, out.StreakIncreased)
	assert.Equal(t, 1, out.Stats.Streak)
	assert.Equal(t, 1, persistedStats(t, store).Streak)
	assert.True(t, persistedTasks(t, store)[0].IsCompleted)
}
