// Package suggest sources purchasable substitutes for unmatched outfit slots
// via the Google Custom Search API.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/infra/linkpreview"
	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/resilience/circuitbreaker"
	"outfitmatch/internal/resilience/retry"
)

// Previewer enriches a search hit with Open Graph metadata.
// It is optional; suggestions work without images.
type Previewer interface {
	Fetch(ctx context.Context, pageURL string) (*linkpreview.Preview, error)
}

// GoogleClient looks up substitute products with the Custom Search API.
// Lookups are best-effort: rate limited, retried on transient failures, and
// short-circuited when the API is misbehaving.
type GoogleClient struct {
	config      *config.SuggestConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	breaker     *circuitbreaker.CircuitBreaker
	previewer   Previewer
}

// NewGoogleClient creates a suggest client. previewer may be nil to skip
// image enrichment.
func NewGoogleClient(cfg *config.SuggestConfig, previewer Previewer) *GoogleClient {
	return &GoogleClient{
		config:      cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(cfg.RatePerSecond, cfg.RateBurst),
		breaker:     circuitbreaker.New(circuitbreaker.SuggestAPIConfig()),
		previewer:   previewer,
	}
}

// BreakerState reports the current circuit breaker state for health checks.
func (g *GoogleClient) BreakerState() string {
	return g.breaker.State().String()
}

// searchResponse is the subset of the Custom Search response we consume.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PageMap struct {
		CSEImage []struct {
			Src string `json:"src"`
		} `json:"cse_image"`
	} `json:"pagemap"`
}

// Suggest returns one substitute product for the given slot characteristics,
// or (nil, nil) when the search produced no usable hit.
func (g *GoogleClient) Suggest(ctx context.Context, clothingType entity.ClothingType, style entity.Style) (*entity.Suggestion, error) {
	if !g.config.Enabled() {
		metrics.RecordSuggestionLookupSkipped()
		return nil, nil
	}

	if err := g.rateLimiter.Allow(ctx); err != nil {
		metrics.RecordSuggestionLookupSkipped()
		return nil, fmt.Errorf("suggest rate limit: %w", err)
	}

	start := time.Now()
	result, err := g.breaker.Execute(func() (interface{}, error) {
		var hit *searchItem
		err := retry.WithBackoff(ctx, retry.SuggestConfig(), func() error {
			var serr error
			hit, serr = g.search(ctx, buildQuery(clothingType, style))
			return serr
		})
		return hit, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSuggestionLookupSkipped()
			slog.Warn("suggest circuit open, skipping lookup",
				slog.String("clothing_type", string(clothingType)))
			return nil, nil
		}
		metrics.RecordSuggestionLookupFailed(time.Since(start))
		return nil, err
	}

	hit, _ := result.(*searchItem)
	if hit == nil {
		metrics.RecordSuggestionLookupSuccess(time.Since(start))
		return nil, nil
	}

	suggestion := &entity.Suggestion{
		URL:   hit.Link,
		Label: hit.Title,
	}
	if len(hit.PageMap.CSEImage) > 0 {
		suggestion.ImageURL = hit.PageMap.CSEImage[0].Src
	}

	if suggestion.ImageURL == "" && g.previewer != nil {
		// Best effort: a missing image never fails the lookup.
		preview, perr := g.previewer.Fetch(ctx, hit.Link)
		if perr != nil {
			slog.Debug("preview enrichment failed",
				slog.String("url", hit.Link),
				slog.Any("error", perr))
		} else if preview != nil {
			suggestion.ImageURL = preview.ImageURL
			if suggestion.Label == "" {
				suggestion.Label = preview.Title
			}
		}
	}

	metrics.RecordSuggestionLookupSuccess(time.Since(start))
	return suggestion, nil
}

// search runs one Custom Search request and returns the first hit, or nil
// when there are no results.
func (g *GoogleClient) search(ctx context.Context, query string) (*searchItem, error) {
	params := url.Values{}
	params.Set("key", g.config.APIKey)
	params.Set("cx", g.config.SearchEngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(g.config.NumResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("custom search: %s", strings.TrimSpace(string(body))),
		}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if len(parsed.Items) == 0 {
		return nil, nil
	}
	return &parsed.Items[0], nil
}

// buildQuery turns slot characteristics into a product search query.
func buildQuery(clothingType entity.ClothingType, style entity.Style) string {
	parts := make([]string, 0, 3)
	if style != entity.StyleUnspecified {
		parts = append(parts, string(style))
	}
	parts = append(parts, string(clothingType), "clothing buy")
	return strings.Join(parts, " ")
}
