package out

import (
	"context"

	"lofi/internal/modules/audio/domain"
	apperrors "lofi/internal/platform/errors"
)

// SilentOutput stands in when audio is disabled in config. Every start is
// rejected so the player never claims to be playing.
type SilentOutput struct{}

func NewSilentOutput() SilentOutput {
	return SilentOutput{}
}

func (SilentOutput) Load(context.Context, domain.Track) error { return nil }

func (SilentOutput) Play() error { return apperrors.ErrPlaybackRejected }

func (SilentOutput) Pause() error { return nil }

func (SilentOutput) SetVolume(float64) {}

func (SilentOutput) OnEnded(func()) {}

func (SilentOutput) PlayChime(context.Context, string, float64) error { return nil }

func (SilentOutput) Close() error { return nil }
