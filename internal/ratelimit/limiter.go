package ratelimit

import (
	"context"
	"os"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external data sources we interact with
type API string

const (
	// APIYahoo represents the Yahoo Finance endpoints (chart + quote)
	APIYahoo API = "yahoo"
	// APIInvesting represents the scraped fund-data website
	APIInvesting API = "investing"
)

// Limiter manages rate limits for different APIs
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

var (
	instance *Limiter
	once     sync.Once
)

// GetLimiter returns the singleton rate limiter instance
func GetLimiter() *Limiter {
	once.Do(func() {
		instance = &Limiter{
			limiters: make(map[API]*rate.Limiter),
		}
		instance.initLimiters()
	})
	return instance
}

// initLimiters initializes rate limiters for each API with conservative defaults
func (l *Limiter) initLimiters() {
	// In test mode, use unlimited rate limits to avoid slowing down tests
	if os.Getenv("GO_TESTING") == "1" || isTestMode() {
		l.limiters[APIYahoo] = rate.NewLimiter(rate.Inf, 1)
		l.limiters[APIInvesting] = rate.NewLimiter(rate.Inf, 1)
		return
	}

	// Yahoo tolerates a couple of requests per second on the unauthenticated
	// chart/quote endpoints; the tracker asks twice per instrument per cycle
	// (market state + history), so 2/s keeps a large list moving.
	l.limiters[APIYahoo] = rate.NewLimiter(rate.Limit(2), 1)

	// The fund site is a third party we scrape; stay well under anything
	// that looks like automated traffic.
	l.limiters[APIInvesting] = rate.NewLimiter(rate.Limit(0.5), 1)
}

// isTestMode checks if we're running in test mode
func isTestMode() bool {
	for _, arg := range os.Args {
		if len(arg) > 6 && arg[:6] == "-test." {
			return true
		}
	}
	return false
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now
func (l *Limiter) Allow(api API) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
