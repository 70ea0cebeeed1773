package domain

import "strings"

type Quote struct {
	Content string
	Author  string
}

var fallbacks = []Quote{
	{Content: "The best way to get something done is to begin.", Author: "Unknown"},
	{Content: "Small steps lead to big changes.", Author: "Unknown"},
	{Content: "Focus on being productive instead of busy.", Author: "Tim Ferriss"},
	{Content: "Your future is created by what you do today, not tomorrow.", Author: "Robert Kiyosaki"},
}

// Fallbacks returns a copy of the built-in quotes.
func Fallbacks() []Quote {
	out := make([]Quote, len(fallbacks))
	copy(out, fallbacks)
	return out
}

// Initial is shown before the first fetch completes.
func Initial() Quote {
	return fallbacks[0]
}

// Fallback picks the built-in quote at i, wrapping out-of-range indexes.
func Fallback(i int) Quote {
	if i < 0 {
		i = -i
	}
	return fallbacks[i%len(fallbacks)]
}

func FallbackCount() int {
	return len(fallbacks)
}

func (q Quote) Valid() bool {
	return strings.TrimSpace(q.Content) != ""
}
