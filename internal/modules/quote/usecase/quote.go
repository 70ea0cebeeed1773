package usecase

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"lofi/internal/modules/quote/domain"
	"lofi/internal/modules/quote/dto"
	quotein "lofi/internal/modules/quote/port/in"
	quoteout "lofi/internal/modules/quote/port/out"
	"lofi/internal/modules/quote/service"
)

var errEmptyQuote = errors.New("quote has no content")

type Interactor struct {
	svc    *service.QuoteService
	source quoteout.Source
	logger *zap.Logger

	mu       sync.Mutex
	current  domain.Quote
	fallback bool
}

func NewInteractor(svc *service.QuoteService, source quoteout.Source, logger *zap.Logger) quotein.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, source: source, logger: logger, current: domain.Initial(), fallback: true}
}

func (i *Interactor) Current(context.Context) dto.QuoteOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return toOutput(i.current, i.fallback)
}

// Refresh fetches a new quote and never fails: any error swaps in one of the
// built-in quotes instead.
func (i *Interactor) Refresh(ctx context.Context) dto.QuoteOutput {
	q, err := i.source.Fetch(ctx)
	if err == nil && !q.Valid() {
		err = errEmptyQuote
	}
	fallback := err != nil
	if fallback {
		i.logger.Warn("using fallback quote", zap.Error(err))
		q = i.svc.RandomFallback()
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.current = q
	i.fallback = fallback
	return toOutput(q, fallback)
}

func toOutput(q domain.Quote, fallback bool) dto.QuoteOutput {
	return dto.QuoteOutput{Content: q.Content, Author: q.Author, Fallback: fallback}
}
