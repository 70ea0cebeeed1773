package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lofi/internal/modules/timer/domain"
	apperrors "lofi/internal/platform/errors"
)

func TestNewStartsInFocusWithFullDuration(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.DefaultSettings())
	assert.Equal(t, domain.PhaseFocus, s.Phase)
	assert.Equal(t, 1500, s.SecondsRemaining)
	assert.Equal(t, 1500, s.SecondsTotal)
	assert.False(t, s.IsRunning)
	assert.Equal(t, 1.0, s.Progress())
}

func TestFullFocusSessionFlipsToBreak(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{FocusMinutes: 25, BreakMinutes: 5}).Toggle()

	var done *domain.Completion
	for i := 0; i < 1500; i++ {
		require.Nil(t, done, "completed early at tick %d", i)
		s, done = s.Tick()
	}
	require.NotNil(t, done)
	assert.Equal(t, domain.PhaseFocus, done.Finished)
	assert.Equal(t, domain.PhaseBreak, s.Phase)
	assert.Equal(t, 300, s.SecondsRemaining)
	assert.Equal(t, 300, s.SecondsTotal)
	assert.False(t, s.IsRunning)

	// stays put until restarted
	s2, again := s.Tick()
	assert.Nil(t, again)
	assert.Equal(t, s, s2)
}

func TestBreakFlipsBackToFocus(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{FocusMinutes: 1, BreakMinutes: 1}).Toggle()
	for i := 0; i < 60; i++ {
		s, _ = s.Tick()
	}
	require.Equal(t, domain.PhaseBreak, s.Phase)
	s = s.Toggle()
	var done *domain.Completion
	for i := 0; i < 60; i++ {
		s, done = s.Tick()
	}
	require.NotNil(t, done)
	assert.Equal(t, domain.PhaseBreak, done.Finished)
	assert.Equal(t, domain.PhaseFocus, s.Phase)
	assert.Equal(t, 60, s.SecondsRemaining)
}

func TestPauseKeepsRemainingTime(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.DefaultSettings()).Toggle()
	s, _ = s.Tick()
	s, _ = s.Tick()
	s = s.Toggle()
	assert.False(t, s.IsRunning)
	assert.Equal(t, 1498, s.SecondsRemaining)
	s, _ = s.Tick()
	assert.Equal(t, 1498, s.SecondsRemaining, "paused clock must not tick")
}

func TestResetRestoresFullDurationWithoutChangingPhase(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{FocusMinutes: 1, BreakMinutes: 2}).Toggle()
	for i := 0; i < 60; i++ {
		s, _ = s.Tick()
	}
	s = s.Toggle()
	for i := 0; i < 30; i++ {
		s, _ = s.Tick()
	}
	require.Equal(t, domain.PhaseBreak, s.Phase)
	require.Equal(t, 90, s.SecondsRemaining)

	s = s.Reset()
	assert.Equal(t, domain.PhaseBreak, s.Phase)
	assert.Equal(t, 120, s.SecondsRemaining)
	assert.False(t, s.IsRunning)
}

func TestApplySettingsResyncsOnlyWhenIdle(t *testing.T) {
	t.Parallel()
	idle := domain.New(domain.DefaultSettings()).ApplySettings(domain.Settings{FocusMinutes: 50, BreakMinutes: 10})
	assert.Equal(t, 3000, idle.SecondsRemaining)
	assert.Equal(t, 3000, idle.SecondsTotal)

	running := domain.New(domain.DefaultSettings()).Toggle()
	running, _ = running.Tick()
	running = running.ApplySettings(domain.Settings{FocusMinutes: 50, BreakMinutes: 10})
	assert.Equal(t, 1499, running.SecondsRemaining)
	assert.Equal(t, 1500, running.SecondsTotal)
	assert.Equal(t, 50, running.Settings.FocusMinutes)

	for running.IsRunning {
		running, _ = running.Tick()
	}
	assert.Equal(t, domain.PhaseBreak, running.Phase)
	assert.Equal(t, 600, running.SecondsRemaining, "next phase uses the new settings")
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, domain.DefaultSettings().Validate())
	require.NoError(t, domain.Settings{FocusMinutes: 60, BreakMinutes: 30}.Validate())
	for _, bad := range []domain.Settings{
		{FocusMinutes: 0, BreakMinutes: 5},
		{FocusMinutes: 61, BreakMinutes: 5},
		{FocusMinutes: 25, BreakMinutes: 0},
		{FocusMinutes: 25, BreakMinutes: 31},
	} {
		require.ErrorIs(t, bad.Validate(), apperrors.ErrInvalidInput, "%+v", bad)
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "25:00", domain.FormatClock(1500))
	assert.Equal(t, "4:05", domain.FormatClock(245))
	assert.Equal(t, "0:00", domain.FormatClock(-3))
}

func TestNotificationBody(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Focus session finished!", domain.NotificationBody(domain.PhaseFocus))
	assert.Equal(t, "Break finished!", domain.NotificationBody(domain.PhaseBreak))
}
