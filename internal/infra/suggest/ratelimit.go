package suggest

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements a token bucket for outgoing search requests.
// The Custom Search API has a small daily quota; the limiter keeps a burst of
// unmatched slots from burning through it.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained with
// the given burst capacity.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
