package dto

type SettingsInput struct {
	FocusMinutes int
	BreakMinutes int
}

type SettingsOutput struct {
	FocusMinutes int
	BreakMinutes int
}

type State struct {
	Phase            string
	Label            string
	SecondsRemaining int
	SecondsTotal     int
	IsRunning        bool
	Clock            string
	Progress         float64
	Settings         SettingsOutput
}

// Completion is attached to the update published when a phase runs out.
type Completion struct {
	Finished string
	Next     string
}

type Update struct {
	State      State
	Completion *Completion
}
