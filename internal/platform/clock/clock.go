package clock

import "time"

// DayLayout is the calendar-day key format used for tasks and stats.
const DayLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the UTC day key for the clock's current instant.
func Today(c Clock) string {
	return c.Now().UTC().Format(DayLayout)
}
