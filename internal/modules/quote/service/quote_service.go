package service

import (
	"math/rand/v2"

	"lofi/internal/modules/quote/domain"
)

type QuoteService struct {
	pick func(n int) int
}

// NewQuoteService uses pick to choose among the fallbacks; nil selects
// math/rand.
func NewQuoteService(pick func(n int) int) *QuoteService {
	if pick == nil {
		pick = rand.IntN
	}
	return &QuoteService{pick: pick}
}

func (s *QuoteService) RandomFallback() domain.Quote {
	return domain.Fallback(s.pick(domain.FallbackCount()))
}
