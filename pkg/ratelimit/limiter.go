package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for request pacing
type Limiter interface {
	// Allow checks if a request is allowed right now
	Allow() bool
	// Wait blocks until the limiter allows another request
	Wait()
}

// FixedDelay paces requests to at most one per configured delay. It is a
// courtesy throttle, not an adaptive backoff.
type FixedDelay struct {
	limiter *rate.Limiter
}

// NewFixedDelay creates a limiter enforcing the given minimum spacing
// between requests. A non-positive delay yields a no-op limiter.
func NewFixedDelay(delay time.Duration) Limiter {
	if delay <= 0 {
		return noop{}
	}
	return &FixedDelay{
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Allow checks if a request can proceed without waiting
func (f *FixedDelay) Allow() bool {
	return f.limiter.Allow()
}

// Wait blocks until the configured delay has elapsed since the last request
func (f *FixedDelay) Wait() {
	// The background context never cancels, so Wait only returns on a
	// granted token.
	_ = f.limiter.Wait(context.Background())
}

// noop is the zero-delay limiter
type noop struct{}

func (noop) Allow() bool { return true }
func (noop) Wait()       {}
