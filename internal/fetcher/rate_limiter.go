package fetcher

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces requests per host: a concurrency semaphore, a flat
// minimum interval between requests, and an RPM window on top.
type RateLimiter struct {
	maxConcurrent int
	rpm           int
	minInterval   time.Duration
	hostLimiters  map[string]*hostLimiter
	mu            sync.RWMutex
}

type hostLimiter struct {
	sem         chan struct{} // Semaphore for concurrency
	windowStart time.Time
	requests    int
	lastRequest time.Time
	mu          sync.Mutex
}

func NewRateLimiter(maxConcurrent, rpm int, minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		maxConcurrent: maxConcurrent,
		rpm:           rpm,
		minInterval:   minInterval,
		hostLimiters:  make(map[string]*hostLimiter),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context, host string) error {
	rl.mu.Lock()
	limiter, exists := rl.hostLimiters[host]
	if !exists {
		limiter = &hostLimiter{
			sem: make(chan struct{}, rl.maxConcurrent),
		}
		rl.hostLimiters[host] = limiter
	}
	rl.mu.Unlock()

	// Acquire semaphore (concurrency control)
	select {
	case limiter.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	defer func() { <-limiter.sem }()

	// Flat pacing between successive requests
	limiter.mu.Lock()
	if !limiter.lastRequest.IsZero() {
		if wait := rl.minInterval - time.Since(limiter.lastRequest); wait > 0 {
			limiter.mu.Unlock()
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			limiter.mu.Lock()
		}
	}

	now := time.Now()

	// Reset the window if a minute has passed
	if now.Sub(limiter.windowStart) > time.Minute {
		limiter.requests = 0
		limiter.windowStart = now
	}

	// Check if we've exceeded RPM
	if limiter.requests >= rl.rpm {
		waitTime := time.Minute - now.Sub(limiter.windowStart)
		limiter.mu.Unlock()

		select {
		case <-time.After(waitTime):
			limiter.mu.Lock()
			limiter.requests = 1
			limiter.windowStart = time.Now()
			limiter.lastRequest = time.Now()
			limiter.mu.Unlock()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	limiter.requests++
	limiter.lastRequest = time.Now()
	limiter.mu.Unlock()

	return nil
}
