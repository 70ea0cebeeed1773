package in

import "context"

type Usecase interface {
	Completed(ctx context.Context) bool
	Complete(ctx context.Context) error
	Reset(ctx context.Context) error
	// Welcome is the first-launch text, as markdown.
	Welcome() string
}
