package in

import (
	"context"

	"lofi/internal/modules/audio/dto"
)

type Usecase interface {
	State(ctx context.Context) dto.PlayerState
	TogglePlay(ctx context.Context) dto.PlayerState
	Skip(ctx context.Context) dto.PlayerState
	TrackEnded(ctx context.Context) dto.PlayerState
	SetVolume(ctx context.Context, v float64) dto.PlayerState
	ToggleMute(ctx context.Context) dto.PlayerState
	PlayChime(ctx context.Context) error
	Subscribe(fn func(dto.PlayerState)) (unsubscribe func())
	Close() error
}
