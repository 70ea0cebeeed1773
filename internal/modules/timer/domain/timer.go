package domain

import (
	"fmt"

	apperrors "lofi/internal/platform/errors"
)

type Phase string

const (
	PhaseFocus Phase = "FOCUS"
	PhaseBreak Phase = "BREAK"
)

func (p Phase) Next() Phase {
	if p == PhaseFocus {
		return PhaseBreak
	}
	return PhaseFocus
}

func (p Phase) Label() string {
	if p == PhaseFocus {
		return "Focus Time"
	}
	return "Break Time"
}

const (
	MinFocusMinutes = 1
	MaxFocusMinutes = 60
	MinBreakMinutes = 1
	MaxBreakMinutes = 30
)

// Settings are the user-adjustable phase durations in minutes.
type Settings struct {
	FocusMinutes int `json:"focusDuration"`
	BreakMinutes int `json:"breakDuration"`
}

func DefaultSettings() Settings {
	return Settings{FocusMinutes: 25, BreakMinutes: 5}
}

func (s Settings) Validate() error {
	if s.FocusMinutes < MinFocusMinutes || s.FocusMinutes > MaxFocusMinutes {
		return fmt.Errorf("focus minutes must be %d..%d: %w", MinFocusMinutes, MaxFocusMinutes, apperrors.ErrInvalidInput)
	}
	if s.BreakMinutes < MinBreakMinutes || s.BreakMinutes > MaxBreakMinutes {
		return fmt.Errorf("break minutes must be %d..%d: %w", MinBreakMinutes, MaxBreakMinutes, apperrors.ErrInvalidInput)
	}
	return nil
}

// Seconds is the full duration of phase p.
func (s Settings) Seconds(p Phase) int {
	if p == PhaseFocus {
		return s.FocusMinutes * 60
	}
	return s.BreakMinutes * 60
}

// State is the countdown. It is a value: every transition returns a new
// State and never mutates the receiver.
type State struct {
	Phase            Phase
	SecondsRemaining int
	SecondsTotal     int
	IsRunning        bool
	Settings         Settings
}

// Completion describes a phase that ran out.
type Completion struct {
	Finished Phase
	Next     Phase
}

func New(settings Settings) State {
	return enter(State{Settings: settings}, PhaseFocus)
}

func enter(s State, p Phase) State {
	s.Phase = p
	s.SecondsTotal = s.Settings.Seconds(p)
	s.SecondsRemaining = s.SecondsTotal
	return s
}

func (s State) Toggle() State {
	s.IsRunning = !s.IsRunning
	return s
}

func (s State) Reset() State {
	s.IsRunning = false
	s.SecondsRemaining = s.SecondsTotal
	return s
}

// Tick advances one second. Reaching zero stops the clock and enters the
// other phase with its full duration.
func (s State) Tick() (State, *Completion) {
	if !s.IsRunning {
		return s, nil
	}
	if s.SecondsRemaining > 0 {
		s.SecondsRemaining--
	}
	if s.SecondsRemaining > 0 {
		return s, nil
	}
	done := &Completion{Finished: s.Phase, Next: s.Phase.Next()}
	s.IsRunning = false
	return enter(s, done.Next), done
}

// ApplySettings stores new durations. An idle clock resyncs to the current
// phase's new length; a running one keeps its in-progress session.
func (s State) ApplySettings(settings Settings) State {
	s.Settings = settings
	if s.IsRunning {
		return s
	}
	return enter(s, s.Phase)
}

// Progress is the remaining fraction of the phase, 1 at start and 0 at end.
func (s State) Progress() float64 {
	if s.SecondsTotal <= 0 {
		return 0
	}
	return float64(s.SecondsRemaining) / float64(s.SecondsTotal)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
