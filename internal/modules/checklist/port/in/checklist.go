package in

import (
	"context"

	"lofi/internal/modules/checklist/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.Snapshot, error)
	Snapshot(ctx context.Context) (dto.Snapshot, error)
	Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error)
	Toggle(ctx context.Context, id string) (dto.ToggleOutput, error)
	Delete(ctx context.Context, id string) error
	Rollover(ctx context.Context) (dto.RolloverOutput, error)
}
