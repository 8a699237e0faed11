package scrape

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/patentdoc"
	"golang.org/x/time/rate"
)

// DefaultRPS is the request rate allowed per host. The variants of one
// patent are all served by the patents host, so this spaces out the
// translation fetches of a single scrape.
const DefaultRPS = 1.0

// RateLimiter spaces out page fetches per host using token buckets with a
// burst of one. Pages without a host (file:// URLs of saved pages) are
// never delayed.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second to
// each host. A non-positive rps selects DefaultRPS.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRPS
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a fetch of pageURL is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *RateLimiter) Wait(ctx context.Context, pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return patentdoc.Errorf(patentdoc.EINVALID, "invalid URL %q: %v", pageURL, err)
	}
	if u.Host == "" {
		return nil
	}

	l.mu.Lock()
	limiter, ok := l.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[u.Host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
