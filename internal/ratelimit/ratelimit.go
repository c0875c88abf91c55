// Package ratelimit paces calls to external services so the pipeline stays
// inside API rate limits without per-adapter sleeps.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ServiceLimiter keeps one token-bucket limiter per named service
// (categorizer, geocoder, a source API). All callers hitting the same
// service share the same bucket.
type ServiceLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

// NewServiceLimiter creates a limiter registry allowing reqPerSec requests
// per second with the given burst for each service.
func NewServiceLimiter(reqPerSec float64, burst int) *ServiceLimiter {
	return &ServiceLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(reqPerSec),
		burst:    burst,
	}
}

func (l *ServiceLimiter) limiterFor(service string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[service]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.burst)
	l.limiters[service] = lim
	return lim
}

// Wait blocks until the service's bucket allows another request, or the
// context is cancelled.
func (l *ServiceLimiter) Wait(ctx context.Context, service string) error {
	return l.limiterFor(service).Wait(ctx)
}
