package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	timerout "lofi/internal/modules/timer/adapter/out"
	"lofi/internal/modules/timer/domain"
	"lofi/internal/modules/timer/dto"
	timerin "lofi/internal/modules/timer/port/in"
	"lofi/internal/modules/timer/service"
	"lofi/internal/modules/timer/usecase"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/kv"
)

// manualScheduler fires its active schedule only when the test says so.
type manualScheduler struct {
	mu        sync.Mutex
	fn        func()
	started   int
	cancelled int
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.started++
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.fn = nil
		m.cancelled++
	}
}

func (m *manualScheduler) active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

func (m *manualScheduler) fire(n int) {
	for k := 0; k < n; k++ {
		m.mu.Lock()
		fn := m.fn
		m.mu.Unlock()
		if fn == nil {
			return
		}
		fn()
	}
}

type recordingChime struct{ plays int }

func (r *recordingChime) PlayChime(context.Context) error {
	r.plays++
	return nil
}

type recordingNotifier struct {
	permission domain.Permission
	bodies     []string
}

func (r *recordingNotifier) Permission() domain.Permission { return r.permission }

func (r *recordingNotifier) RequestPermission(context.Context) domain.Permission {
	return r.permission
}

func (r *recordingNotifier) Notify(_ context.Context, title, body string) error {
	r.bodies = append(r.bodies, title+": "+body)
	return nil
}

type fixture struct {
	uc       timerin.Usecase
	store    kv.Store
	sched    *manualScheduler
	chime    *recordingChime
	notifier *recordingNotifier
}

func newFixture(t *testing.T, store kv.Store, permission domain.Permission) fixture {
	t.Helper()
	f := fixture{
		store:    store,
		sched:    &manualScheduler{},
		chime:    &recordingChime{},
		notifier: &recordingNotifier{permission: permission},
	}
	f.uc = usecase.NewInteractor(
		service.NewTimerService(f.chime, f.notifier),
		timerout.NewKVSettingsStore(store, zap.NewNop()),
		f.sched,
		zap.NewNop(),
	)
	t.Cleanup(f.uc.Close)
	return f
}

func TestFocusSessionRunsToBreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)

	var completions []dto.Completion
	var chimedBeforeCompletion bool
	f.uc.Subscribe(func(u dto.Update) {
		if u.Completion != nil {
			completions = append(completions, *u.Completion)
			chimedBeforeCompletion = f.chime.plays == 1 && len(f.notifier.bodies) == 1
		}
	})

	st, err := f.uc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1500, st.SecondsRemaining)
	require.Equal(t, "25:00", st.Clock)

	_, err = f.uc.Start(ctx)
	require.NoError(t, err)
	f.sched.fire(1500)

	st, err = f.uc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseBreak), st.Phase)
	assert.Equal(t, 300, st.SecondsRemaining)
	assert.False(t, st.IsRunning)
	assert.False(t, f.sched.active(), "expiry cancels the tick")

	require.Len(t, completions, 1)
	assert.Equal(t, string(domain.PhaseFocus), completions[0].Finished)
	assert.Equal(t, 1, f.chime.plays)
	assert.Equal(t, []string{"Timer Complete: Focus session finished!"}, f.notifier.bodies)
	assert.True(t, chimedBeforeCompletion, "completion is reported after chime and notification")
}

func TestCompletionSkipsNotificationWithoutPermission(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for _, p := range []domain.Permission{domain.PermissionDefault, domain.PermissionDenied} {
		f := newFixture(t, kv.NewMemoryStore(), p)
		_, err := f.uc.SaveSettings(ctx, dto.SettingsInput{FocusMinutes: 1, BreakMinutes: 1})
		require.NoError(t, err)
		_, err = f.uc.Start(ctx)
		require.NoError(t, err)
		f.sched.fire(60)
		assert.Equal(t, 1, f.chime.plays)
		assert.Empty(t, f.notifier.bodies, string(p))
	}
}

func TestPauseAndResetCancelTheTick(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)

	_, err := f.uc.Toggle(ctx)
	require.NoError(t, err)
	f.sched.fire(10)
	st, err := f.uc.Pause(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1490, st.SecondsRemaining)
	assert.False(t, f.sched.active())

	_, err = f.uc.Start(ctx)
	require.NoError(t, err)
	_, err = f.uc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.sched.started, "start while running must not stack schedules")

	f.sched.fire(5)
	st, err = f.uc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500, st.SecondsRemaining)
	assert.Equal(t, string(domain.PhaseFocus), st.Phase)
	assert.False(t, st.IsRunning)
	assert.False(t, f.sched.active())
}

func TestStaleTickAfterPauseIsIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)

	_, err := f.uc.Start(ctx)
	require.NoError(t, err)
	f.sched.mu.Lock()
	stale := f.sched.fn
	f.sched.mu.Unlock()

	_, err = f.uc.Pause(ctx)
	require.NoError(t, err)
	_, err = f.uc.Start(ctx)
	require.NoError(t, err)
	stale()

	st, err := f.uc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500, st.SecondsRemaining)
}

func TestCloseStopsTheTick(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)
	_, err := f.uc.Start(ctx)
	require.NoError(t, err)
	f.uc.Close()
	assert.False(t, f.sched.active())
	assert.Equal(t, 1, f.sched.cancelled)
}

func TestSaveSettingsPersistsAndResyncsIdleTimer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	f := newFixture(t, store, domain.PermissionGranted)

	st, err := f.uc.SaveSettings(ctx, dto.SettingsInput{FocusMinutes: 50, BreakMinutes: 10})
	require.NoError(t, err)
	assert.Equal(t, 3000, st.SecondsRemaining)

	reopened := newFixture(t, store, domain.PermissionGranted)
	settings, err := reopened.uc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.SettingsOutput{FocusMinutes: 50, BreakMinutes: 10}, settings)
	st, err = reopened.uc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000, st.SecondsTotal)
}

func TestSaveSettingsWhileRunningKeepsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)
	_, err := f.uc.Start(ctx)
	require.NoError(t, err)
	f.sched.fire(100)

	st, err := f.uc.SaveSettings(ctx, dto.SettingsInput{FocusMinutes: 10, BreakMinutes: 2})
	require.NoError(t, err)
	assert.Equal(t, 1400, st.SecondsRemaining)
	assert.True(t, st.IsRunning)
	assert.True(t, f.sched.active())

	f.sched.fire(1400)
	st, err = f.uc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, st.SecondsRemaining)
}

func TestSaveSettingsRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)
	_, err := f.uc.SaveSettings(context.Background(), dto.SettingsInput{FocusMinutes: 0, BreakMinutes: 5})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = f.uc.SaveSettings(context.Background(), dto.SettingsInput{FocusMinutes: 25, BreakMinutes: 45})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

type failingStore struct{ *kv.MemoryStore }

func (failingStore) Set(context.Context, string, []byte) error { return errors.New("read-only") }

func TestSaveSettingsWriteFailureStillApplies(t *testing.T) {
	t.Parallel()
	f := newFixture(t, failingStore{kv.NewMemoryStore()}, domain.PermissionGranted)
	st, err := f.uc.SaveSettings(context.Background(), dto.SettingsInput{FocusMinutes: 30, BreakMinutes: 5})
	require.Error(t, err)
	assert.Equal(t, 1800, st.SecondsRemaining)
}

func TestSubscribersSeeEveryTransitionUntilUnsubscribed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, kv.NewMemoryStore(), domain.PermissionGranted)
	var seen []int
	unsubscribe := f.uc.Subscribe(func(u dto.Update) { seen = append(seen, u.State.SecondsRemaining) })

	_, err := f.uc.Start(ctx)
	require.NoError(t, err)
	f.sched.fire(2)
	unsubscribe()
	f.sched.fire(1)
	assert.Equal(t, []int{1500, 1499, 1498}, seen)
}
