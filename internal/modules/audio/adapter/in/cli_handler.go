package in

import (
	"context"

	audiodto "lofi/internal/modules/audio/dto"
	audioin "lofi/internal/modules/audio/port/in"
)

type CLIHandler struct {
	usecase audioin.Usecase
}

func NewCLIHandler(usecase audioin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) State(ctx context.Context) audiodto.PlayerState {
	return h.usecase.State(ctx)
}

func (h CLIHandler) TogglePlay(ctx context.Context) audiodto.PlayerState {
	return h.usecase.TogglePlay(ctx)
}

func (h CLIHandler) Skip(ctx context.Context) audiodto.PlayerState {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) SetVolume(ctx context.Context, v float64) audiodto.PlayerState {
	return h.usecase.SetVolume(ctx, v)
}

func (h CLIHandler) ToggleMute(ctx context.Context) audiodto.PlayerState {
	return h.usecase.ToggleMute(ctx)
}

func (h CLIHandler) Subscribe(fn func(audiodto.PlayerState)) func() {
	return h.usecase.Subscribe(fn)
}

// PlayChime lets the handler stand in as the timer's completion chime.
func (h CLIHandler) PlayChime(ctx context.Context) error {
	return h.usecase.PlayChime(ctx)
}

func (h CLIHandler) Close() error {
	return h.usecase.Close()
}
