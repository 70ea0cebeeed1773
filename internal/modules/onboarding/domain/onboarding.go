package domain

// CompletedValue is the only stored content that counts as completed.
const CompletedValue = "true"

func IsCompleted(stored string) bool {
	return stored == CompletedValue
}

// Welcome is the markdown shown on first launch.
const Welcome = `# Welcome

Your personal sanctuary for focus.

## Pomodoro Timer
Focus for 25 minutes, break for 5. Customize as you need.

## Lo-Fi Ambience
Curated tracks to help you enter the flow state.

## Daily Tasks
Track your progress and build your daily streak.

*Press enter to get started.*
`
