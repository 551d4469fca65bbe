package server

import (
	"sync"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/metrics"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 15 * time.Minute

// limiterStore keeps a token-bucket limiter per client IP with lazy cleanup
// of idle entries.
type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	// Piggyback idle-entry cleanup on misses instead of a janitor goroutine;
	// the login endpoint is low-traffic enough for a linear sweep.
	cutoff := now.Add(-limiterIdleTTL)
	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// loginRateLimit rejects clients that exceed the configured login rate.
func (s *Server) loginRateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.loginLimiter.get(c.RealIP()).Allow() {
			metrics.LoginRateLimited.Inc()
			return echo.NewHTTPError(429, "Demasiados intentos, espera un momento")
		}
		return next(c)
	}
}
