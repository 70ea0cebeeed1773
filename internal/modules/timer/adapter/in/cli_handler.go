package in

import (
	"context"

	timerdto "lofi/internal/modules/timer/dto"
	timerin "lofi/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (timerdto.State, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) State(ctx context.Context) (timerdto.State, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context) (timerdto.State, error) {
	return h.usecase.Toggle(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (timerdto.State, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Settings(ctx context.Context) (timerdto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) SaveSettings(ctx context.Context, focusMinutes, breakMinutes int) (timerdto.State, error) {
	return h.usecase.SaveSettings(ctx, timerdto.SettingsInput{FocusMinutes: focusMinutes, BreakMinutes: breakMinutes})
}

func (h CLIHandler) Subscribe(fn func(timerdto.Update)) func() {
	return h.usecase.Subscribe(fn)
}

func (h CLIHandler) Close() {
	h.usecase.Close()
}

// RunPhase starts the countdown and blocks until the current phase completes
// or ctx is cancelled, reporting every update to onUpdate. A cancelled run is
// paused before returning.
func (h CLIHandler) RunPhase(ctx context.Context, onUpdate func(timerdto.Update)) (timerdto.Completion, error) {
	done := make(chan timerdto.Completion, 1)
	unsubscribe := h.usecase.Subscribe(func(u timerdto.Update) {
		if onUpdate != nil {
			onUpdate(u)
		}
		if u.Completion != nil {
			select {
			case done <- *u.Completion:
			default:
			}
		}
	})
	defer unsubscribe()

	if _, err := h.usecase.Start(ctx); err != nil {
		return timerdto.Completion{}, err
	}
	select {
	case c := <-done:
		return c, nil
	case <-ctx.Done():
		_, _ = h.usecase.Pause(context.Background())
		return timerdto.Completion{}, ctx.Err()
	}
}
