package fetch

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// DefaultRatePerHost keeps the scraper polite without making multi
// page runs crawl.
const DefaultRatePerHost = 2.0

// hostLimiter throttles requests per target host so hammering one
// careers site doesn't slow the others down.
type hostLimiter struct {
	mu       sync.Mutex
	perHost  float64
	limiters map[string]*rate.Limiter
}

func newHostLimiter(perHost float64) *hostLimiter {
	if perHost <= 0 {
		perHost = DefaultRatePerHost
	}
	return &hostLimiter{
		perHost:  perHost,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (h *hostLimiter) limiterFor(target string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(target); err == nil {
		host = u.Hostname()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	lim, ok := h.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(h.perHost), 1)
		h.limiters[host] = lim
	}
	return lim
}

func (h *hostLimiter) Wait(ctx context.Context, target string) error {
	return h.limiterFor(target).Wait(ctx)
}
