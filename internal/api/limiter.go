package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedSessions caps the limiter map; it is reset once exceeded.
const maxTrackedSessions = 10000

// sessionLimiter keeps one token bucket per session.
type sessionLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// newSessionLimiter converts a per-minute rate to a token bucket. A
// non-positive rate disables limiting.
func newSessionLimiter(perMinute, burst int) *sessionLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}
	return &sessionLimiter{limit: limit, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

func (l *sessionLimiter) allow(sessionID string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[sessionID]
	if !ok {
		if len(l.limiters) >= maxTrackedSessions {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[sessionID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
