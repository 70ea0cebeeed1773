package domain

// Task is one checklist item. Date is the day key the task belongs to.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
	Date        string `json:"date"`
}

// Stats tracks the completion streak. LastCompletionDate is nil until the
// first fully completed day.
type Stats struct {
	Streak             int     `json:"streak"`
	LastCompletionDate *string `json:"lastCompletionDate"`
}

func DefaultStats() Stats {
	return Stats{}
}

// CompletedOn reports whether the streak was already credited for day.
func (s Stats) CompletedOn(day string) bool {
	return s.LastCompletionDate != nil && *s.LastCompletionDate == day
}

// AllCompleted is true for a non-empty list where every task is done.
func AllCompleted(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.IsCompleted {
			return false
		}
	}
	return true
}

// IsStale decides the daily reset from the first task only: a list whose
// first entry is dated another day is discarded whole, mixed dates included.
func IsStale(tasks []Task, today string) bool {
	return len(tasks) > 0 && tasks[0].Date != today
}

// ApplyStreak credits the streak at most once per day.
func ApplyStreak(stats Stats, tasks []Task, today string) (Stats, bool) {
	if !AllCompleted(tasks) || stats.CompletedOn(today) {
		return stats, false
	}
	day := today
	return Stats{Streak: stats.Streak + 1, LastCompletionDate: &day}, true
}

func Toggle(tasks []Task, id string) ([]Task, Task, bool) {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].IsCompleted = !out[i].IsCompleted
			return out, out[i], true
		}
	}
	return tasks, Task{}, false
}

func Remove(tasks []Task, id string) ([]Task, bool) {
	out := make([]Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return tasks, false
	}
	return out, true
}

func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
