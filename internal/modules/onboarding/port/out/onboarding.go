package out

import "context"

// FlagStore holds the raw onboarding flag. Read returns "" when it was never
// written or cannot be read.
type FlagStore interface {
	Read(ctx context.Context) string
	Write(ctx context.Context, value string) error
	Clear(ctx context.Context) error
}
