package out

import (
	"context"

	"lofi/internal/modules/quote/domain"
)

// Source fetches one remote quote per call.
type Source interface {
	Fetch(ctx context.Context) (domain.Quote, error)
}
