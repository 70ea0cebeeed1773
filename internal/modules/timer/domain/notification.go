package domain

// Permission mirrors the three states of a desktop notification grant.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

const NotificationTitle = "Timer Complete"

func NotificationBody(finished Phase) string {
	if finished == PhaseFocus {
		return "Focus session finished!"
	}
	return "Break finished!"
}
