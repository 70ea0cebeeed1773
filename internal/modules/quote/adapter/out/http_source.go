package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lofi/internal/modules/quote/domain"
)

const maxQuoteBody = 64 << 10

// HTTPSource reads {"content": ..., "author": ...} from a quote endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

type quotePayload struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (s *HTTPSource) Fetch(ctx context.Context) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Quote{}, fmt.Errorf("fetch quote: unexpected status %d", resp.StatusCode)
	}
	var payload quotePayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxQuoteBody)).Decode(&payload); err != nil {
		return domain.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	q := domain.Quote{Content: payload.Content, Author: payload.Author}
	if !q.Valid() {
		return domain.Quote{}, fmt.Errorf("decode quote: empty content")
	}
	return q, nil
}
