package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/feedscrape"
	"golang.org/x/time/rate"
)

var _ feedscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter, so targets on different hosts load
// concurrently while loads from one host are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps loads per second
// per host, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a load from host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
