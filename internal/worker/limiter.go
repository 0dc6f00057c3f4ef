package worker

import (
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter implements per-client rate limiting, keyed by an opaque
// client identifier (the server uses the remote IP). Limiters are created
// lazily on first sight of a client and kept for the process lifetime;
// the demo deployment sees too few distinct clients to need eviction.
type ClientLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewClientLimiter creates a limiter allowing requestsPerMinute sustained
// requests per client with the given burst.
func NewClientLimiter(requestsPerMinute float64, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 10
	}

	return &ClientLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerMinute / 60.0),
		defaultBurst: burst,
	}
}

// Allow reports whether the client may issue a request now
func (l *ClientLimiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

func (l *ClientLimiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[client] = limiter

	return limiter
}

// SetClientRate sets a custom rate limit for a specific client
func (l *ClientLimiter) SetClientRate(client string, requestsPerMinute float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[client] = rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), burst)
}
