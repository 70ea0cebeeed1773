package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrPlaybackRejected   = errors.New("playback rejected")
	ErrNotificationDenied = errors.New("notification permission denied")
)
