package mock

import (
	"context"

	"github.com/fwojciec/feedscrape"
)

var _ feedscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of feedscrape.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
