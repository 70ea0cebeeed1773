package in

import (
	"context"

	"lofi/internal/modules/quote/dto"
)

type Usecase interface {
	Current(ctx context.Context) dto.QuoteOutput
	Refresh(ctx context.Context) dto.QuoteOutput
}
