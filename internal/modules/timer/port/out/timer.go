package out

import (
	"context"
	"time"

	"lofi/internal/modules/timer/domain"
)

// Scheduler fires fn every interval until cancel is called. Cancel must be
// safe to call from inside fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

type SettingsStore interface {
	LoadSettings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// Chime plays the short completion sound.
type Chime interface {
	PlayChime(ctx context.Context) error
}

type Notifier interface {
	Permission() domain.Permission
	RequestPermission(ctx context.Context) domain.Permission
	Notify(ctx context.Context, title, body string) error
}
