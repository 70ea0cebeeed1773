package dto

type AddInput struct {
	Text string
}

type TaskOutput struct {
	ID          string
	Text        string
	IsCompleted bool
	Date        string
}

type StatsOutput struct {
	Streak             int
	LastCompletionDate string
}

type Snapshot struct {
	Today     string
	Tasks     []TaskOutput
	Stats     StatsOutput
	Completed int
}

type ToggleOutput struct {
	Task            TaskOutput
	Stats           StatsOutput
	StreakIncreased bool
}

type RolloverOutput struct {
	Reset    bool
	Snapshot Snapshot
}
