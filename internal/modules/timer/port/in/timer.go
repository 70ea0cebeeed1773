package in

import (
	"context"

	"lofi/internal/modules/timer/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.State, error)
	State(ctx context.Context) (dto.State, error)
	Start(ctx context.Context) (dto.State, error)
	Pause(ctx context.Context) (dto.State, error)
	Toggle(ctx context.Context) (dto.State, error)
	Reset(ctx context.Context) (dto.State, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.State, error)
	Subscribe(fn func(dto.Update)) (unsubscribe func())
	Close()
}
