package tx

import "context"

// Manager runs fn as one unit of writes. Stores that take part look up the
// unit from the context fn receives; an error from fn discards every write.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly, for stores without rollback.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
