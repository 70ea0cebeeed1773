package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"lofi/internal/modules/timer/domain"
	"lofi/internal/modules/timer/dto"
	timerin "lofi/internal/modules/timer/port/in"
	timerout "lofi/internal/modules/timer/port/out"
	"lofi/internal/modules/timer/service"
)

const TickInterval = time.Second

// Interactor owns the single countdown. Ticks arrive on the scheduler's
// goroutine and are serialized with user commands through mu.
type Interactor struct {
	svc       *service.TimerService
	settings  timerout.SettingsStore
	scheduler timerout.Scheduler
	logger    *zap.Logger

	mu     sync.Mutex
	loaded bool
	state  domain.State
	cancel func()
	// gen invalidates ticks already in flight when the schedule changes.
	gen    uint64
	nextID int
	subs   map[int]func(dto.Update)
}

func NewInteractor(svc *service.TimerService, settings timerout.SettingsStore, scheduler timerout.Scheduler, logger *zap.Logger) timerin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		svc:       svc,
		settings:  settings,
		scheduler: scheduler,
		logger:    logger,
		subs:      map[int]func(dto.Update){},
	}
}

func (i *Interactor) Load(ctx context.Context) (dto.State, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopLocked()
	i.state = domain.New(i.settings.LoadSettings(ctx))
	i.loaded = true
	return toState(i.state), nil
}

func (i *Interactor) State(ctx context.Context) (dto.State, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ensureLoaded(ctx)
	return toState(i.state), nil
}

func (i *Interactor) Start(ctx context.Context) (dto.State, error) {
	return i.transition(ctx, func(s domain.State) domain.State {
		if s.IsRunning {
			return s
		}
		return s.Toggle()
	})
}

func (i *Interactor) Pause(ctx context.Context) (dto.State, error) {
	return i.transition(ctx, func(s domain.State) domain.State {
		if !s.IsRunning {
			return s
		}
		return s.Toggle()
	})
}

func (i *Interactor) Toggle(ctx context.Context) (dto.State, error) {
	return i.transition(ctx, domain.State.Toggle)
}

func (i *Interactor) Reset(ctx context.Context) (dto.State, error) {
	return i.transition(ctx, domain.State.Reset)
}

func (i *Interactor) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ensureLoaded(ctx)
	return toSettings(i.state.Settings), nil
}

// SaveSettings validates and persists new durations. The in-memory settings
// change even if the write fails; the error is still reported.
func (i *Interactor) SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.State, error) {
	next := domain.Settings{FocusMinutes: input.FocusMinutes, BreakMinutes: input.BreakMinutes}
	if err := next.Validate(); err != nil {
		return dto.State{}, err
	}
	var saveErr error
	state, err := i.transition(ctx, func(s domain.State) domain.State {
		saveErr = i.settings.SaveSettings(ctx, next)
		return s.ApplySettings(next)
	})
	if err != nil {
		return dto.State{}, err
	}
	if saveErr != nil {
		i.logger.Warn("save timer settings failed", zap.Error(saveErr))
		return state, fmt.Errorf("save settings: %w", saveErr)
	}
	i.logger.Info("timer settings saved",
		zap.Int("focus_minutes", next.FocusMinutes),
		zap.Int("break_minutes", next.BreakMinutes),
	)
	return state, nil
}

func (i *Interactor) Subscribe(fn func(dto.Update)) func() {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := i.nextID
	i.nextID++
	i.subs[id] = fn
	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		delete(i.subs, id)
	}
}

// Close stops the tick source. The state is kept.
func (i *Interactor) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopLocked()
}

func (i *Interactor) transition(ctx context.Context, fn func(domain.State) domain.State) (dto.State, error) {
	i.mu.Lock()
	i.ensureLoaded(ctx)
	i.state = fn(i.state)
	i.syncScheduleLocked()
	update := dto.Update{State: toState(i.state)}
	subs := i.subscribersLocked()
	i.mu.Unlock()

	publish(subs, update)
	return update.State, nil
}

func (i *Interactor) tick(gen uint64) {
	i.mu.Lock()
	if gen != i.gen {
		i.mu.Unlock()
		return
	}
	next, done := i.state.Tick()
	i.state = next
	i.syncScheduleLocked()
	update := dto.Update{State: toState(i.state)}
	subs := i.subscribersLocked()
	i.mu.Unlock()

	publish(subs, update)
	if done == nil {
		return
	}
	i.logger.Info("timer phase complete",
		zap.String("finished", string(done.Finished)),
		zap.String("next", string(done.Next)),
	)
	chimeErr, notifyErr := i.svc.Announce(context.Background(), *done)
	if chimeErr != nil {
		i.logger.Warn("completion chime failed", zap.Error(chimeErr))
	}
	if notifyErr != nil {
		i.logger.Warn("completion notification failed", zap.Error(notifyErr))
	}
	// the completion is reported only once it has been announced
	update.Completion = &dto.Completion{Finished: string(done.Finished), Next: string(done.Next)}
	publish(subs, update)
}

// syncScheduleLocked keeps exactly one tick source alive while running and
// none otherwise.
func (i *Interactor) syncScheduleLocked() {
	switch {
	case i.state.IsRunning && i.cancel == nil:
		i.gen++
		gen := i.gen
		i.cancel = i.scheduler.Every(TickInterval, func() { i.tick(gen) })
	case !i.state.IsRunning && i.cancel != nil:
		i.stopLocked()
	}
}

func (i *Interactor) stopLocked() {
	if i.cancel == nil {
		return
	}
	i.cancel()
	i.cancel = nil
	i.gen++
}

func (i *Interactor) ensureLoaded(ctx context.Context) {
	if i.loaded {
		return
	}
	i.state = domain.New(i.settings.LoadSettings(ctx))
	i.loaded = true
}

func (i *Interactor) subscribersLocked() []func(dto.Update) {
	out := make([]func(dto.Update), 0, len(i.subs))
	for _, fn := range i.subs {
		out = append(out, fn)
	}
	return out
}

func publish(subs []func(dto.Update), update dto.Update) {
	for _, fn := range subs {
		fn(update)
	}
}

func toState(s domain.State) dto.State {
	return dto.State{
		Phase:            string(s.Phase),
		Label:            s.Phase.Label(),
		SecondsRemaining: s.SecondsRemaining,
		SecondsTotal:     s.SecondsTotal,
		IsRunning:        s.IsRunning,
		Clock:            domain.FormatClock(s.SecondsRemaining),
		Progress:         s.Progress(),
		Settings:         toSettings(s.Settings),
	}
}

func toSettings(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{FocusMinutes: s.FocusMinutes, BreakMinutes: s.BreakMinutes}
}
