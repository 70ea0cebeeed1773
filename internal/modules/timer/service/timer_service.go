package service

import (
	"context"

	"lofi/internal/modules/timer/domain"
	timerout "lofi/internal/modules/timer/port/out"
)

// TimerService holds the completion side effects that accompany a phase
// change.
type TimerService struct {
	chime    timerout.Chime
	notifier timerout.Notifier
}

func NewTimerService(chime timerout.Chime, notifier timerout.Notifier) *TimerService {
	return &TimerService{chime: chime, notifier: notifier}
}

// Announce plays the chime and, when permission was granted, raises a
// desktop notification. Both are best-effort and their errors are only
// logged by the caller.
func (s *TimerService) Announce(ctx context.Context, done domain.Completion) (chimeErr, notifyErr error) {
	if s.chime != nil {
		chimeErr = s.chime.PlayChime(ctx)
	}
	if s.notifier != nil && s.notifier.Permission() == domain.PermissionGranted {
		notifyErr = s.notifier.Notify(ctx, domain.NotificationTitle, domain.NotificationBody(done.Finished))
	}
	return chimeErr, notifyErr
}
