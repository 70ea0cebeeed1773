package out

import (
	"context"

	"lofi/internal/modules/audio/domain"
)

// Output is the sound device. Load prepares a track paused; Play may fail
// with apperrors.ErrPlaybackRejected when the device refuses to start.
type Output interface {
	Load(ctx context.Context, track domain.Track) error
	Play() error
	Pause() error
	SetVolume(v float64)
	// OnEnded registers the callback for a track playing to its end. It is
	// never invoked while the output holds its own locks.
	OnEnded(fn func())
	PlayChime(ctx context.Context, url string, volume float64) error
	Close() error
}
