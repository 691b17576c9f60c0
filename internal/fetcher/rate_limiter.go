package fetcher

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests per host and caps in-flight requests per host.
type RateLimiter struct {
	maxConcurrent int
	limit         rate.Limit
	burst         int
	hosts         map[string]*hostLimiter
	mu            sync.Mutex
}

type hostLimiter struct {
	sem     chan struct{}
	limiter *rate.Limiter
}

func NewRateLimiter(maxConcurrent int, reqPerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		maxConcurrent: maxConcurrent,
		limit:         rate.Limit(reqPerSec),
		burst:         burst,
		hosts:         make(map[string]*hostLimiter),
	}
}

func (rl *RateLimiter) limiterFor(host string) *hostLimiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if hl, ok := rl.hosts[host]; ok {
		return hl
	}
	hl := &hostLimiter{
		sem:     make(chan struct{}, rl.maxConcurrent),
		limiter: rate.NewLimiter(rl.limit, rl.burst),
	}
	rl.hosts[host] = hl
	return hl
}

// Acquire blocks until host has a free slot and a token. The returned func
// frees the slot and must be called once the request is done.
func (rl *RateLimiter) Acquire(ctx context.Context, host string) (func(), error) {
	hl := rl.limiterFor(host)

	select {
	case hl.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := hl.limiter.Wait(ctx); err != nil {
		<-hl.sem
		return nil, err
	}

	return func() { <-hl.sem }, nil
}
