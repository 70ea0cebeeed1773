package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lofi/internal/modules/quote/domain"
	"lofi/internal/modules/quote/service"
	"lofi/internal/modules/quote/usecase"
)

type stubSource struct {
	quote domain.Quote
	err   error
	calls int
}

func (s *stubSource) Fetch(context.Context) (domain.Quote, error) {
	s.calls++
	return s.quote, s.err
}

func TestInitialQuoteIsFirstFallback(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuoteService(nil), &stubSource{}, zap.NewNop())
	got := uc.Current(context.Background())
	assert.Equal(t, "The best way to get something done is to begin.", got.Content)
	assert.True(t, got.Fallback)
}

func TestRefreshReplacesQuote(t *testing.T) {
	t.Parallel()
	src := &stubSource{quote: domain.Quote{Content: "Ship it.", Author: "Someone"}}
	uc := usecase.NewInteractor(service.NewQuoteService(nil), src, zap.NewNop())

	got := uc.Refresh(context.Background())
	assert.Equal(t, "Ship it.", got.Content)
	assert.Equal(t, "Someone", got.Author)
	assert.False(t, got.Fallback)
	assert.Equal(t, got, uc.Current(context.Background()))
}

func TestRefreshFailureUsesFallback(t *testing.T) {
	t.Parallel()
	fallbacks := domain.Fallbacks()
	for pick := 0; pick < len(fallbacks); pick++ {
		src := &stubSource{err: errors.New("offline")}
		uc := usecase.NewInteractor(service.NewQuoteService(func(n int) int {
			require.Equal(t, 4, n)
			return pick
		}), src, zap.NewNop())

		got := uc.Refresh(context.Background())
		assert.True(t, got.Fallback)
		assert.Equal(t, fallbacks[pick].Content, got.Content)
		assert.Equal(t, fallbacks[pick].Author, got.Author)
	}
}

func TestRefreshTreatsEmptyContentAsFailure(t *testing.T) {
	t.Parallel()
	src := &stubSource{quote: domain.Quote{Content: " ", Author: "nobody"}}
	uc := usecase.NewInteractor(service.NewQuoteService(func(int) int { return 2 }), src, zap.NewNop())
	got := uc.Refresh(context.Background())
	assert.Equal(t, "Focus on being productive instead of busy.", got.Content)
	assert.NotEmpty(t, got.Content)
}

func TestEveryRefreshHitsTheSource(t *testing.T) {
	t.Parallel()
	src := &stubSource{quote: domain.Quote{Content: "a", Author: "b"}}
	uc := usecase.NewInteractor(service.NewQuoteService(nil), src, zap.NewNop())
	uc.Refresh(context.Background())
	uc.Refresh(context.Background())
	assert.Equal(t, 2, src.calls)
}
