package in

import (
	"context"

	quotedto "lofi/internal/modules/quote/dto"
	quotein "lofi/internal/modules/quote/port/in"
)

type CLIHandler struct {
	usecase quotein.Usecase
}

func NewCLIHandler(usecase quotein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) quotedto.QuoteOutput {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Refresh(ctx context.Context) quotedto.QuoteOutput {
	return h.usecase.Refresh(ctx)
}
