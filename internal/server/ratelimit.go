package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	appErrors "resumebuilder/internal/errors"
)

const limiterEvictionAge = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key (IP or API key)
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
	logger   *appErrors.Logger
}

// NewRateLimiter creates a limiter. requestsPerMin is the sustained rate per
// key and burstCapacity the bucket size.
func NewRateLimiter(requestsPerMin int, burstCapacity int, logger *appErrors.Logger) *RateLimiter {
	if logger == nil {
		logger = appErrors.Discard()
	}
	l := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burstCapacity,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go l.evictLoop(limiterEvictionAge)
	return l
}

// Allow takes a token from the bucket of key
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// GetStats returns current rate limiter statistics
func (l *RateLimiter) GetStats() map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	return map[string]any{
		"active_limiters": len(l.visitors),
		"rate_per_second": float64(l.rate),
		"rate_per_minute": float64(l.rate) * 60.0,
		"burst_capacity":  l.burst,
	}
}

func (l *RateLimiter) evictLoop(age time.Duration) {
	ticker := time.NewTicker(age)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evict(age)
		case <-l.done:
			return
		}
	}
}

// evict drops buckets idle for longer than age
func (l *RateLimiter) evict(age time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-age)
	for key, v := range l.visitors {
		if !v.lastSeen.After(cutoff) {
			delete(l.visitors, key)
		}
	}
	l.logger.Debug("Rate limiter eviction completed", "remaining_limiters", len(l.visitors))
}

// Close stops the eviction goroutine
func (l *RateLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// rateLimitMiddleware rejects requests over the per-key budget with 429
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.RateLimiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
		if key == "" || s.RateLimiter.Allow(key) {
			next.ServeHTTP(w, r)
			return
		}

		kind, _, _ := strings.Cut(key, ":")
		s.Logger.Info("Rate limit exceeded", "limiter", kind, "endpoint", r.URL.Path)
		s.obs.Metrics().RecordRateLimitHit(r.Context(), kind)
		writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
	})
}

// getRateLimitKey prefers the API key when enabled. The client address has
// already been resolved from proxy headers by middleware.RealIP.
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		if apiKey := requestAPIKey(r); apiKey != "" {
			return "api:" + apiKey
		}
	}
	if byIP {
		return "ip:" + clientIP(r)
	}
	return ""
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
