package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/linkvault/internal/utils"
)

type RateLimitConfig struct {
	RPS           float64 // tokens refilled per second, per client IP
	Burst         int
	MaxEntries    int
	SweepInterval time.Duration
	IdleTTL       time.Duration
	TrustProxy    bool // resolve IP from proxy headers when true
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterPool keeps one token bucket per client IP.
type limiterPool struct {
	cfg       RateLimitConfig
	mu        sync.Mutex
	m         map[string]*entry
	lastSweep time.Time
}

func newLimiterPool(cfg RateLimitConfig) *limiterPool {
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Burst < 1 {
		cfg.Burst = 10
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	return &limiterPool{
		cfg:       cfg,
		m:         make(map[string]*entry, 1024),
		lastSweep: time.Now(),
	}
}

func (p *limiterPool) get(key string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= p.cfg.SweepInterval ||
		(p.cfg.MaxEntries > 0 && len(p.m) >= p.cfg.MaxEntries) {
		p.sweepLocked(now)
	}

	e, ok := p.m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(rate.Limit(p.cfg.RPS), p.cfg.Burst)}
		p.m[key] = e
	}
	e.lastSeen = now
	return e.lim
}

func (p *limiterPool) sweepLocked(now time.Time) {
	for ip, e := range p.m {
		if now.Sub(e.lastSeen) > p.cfg.IdleTTL {
			delete(p.m, ip)
		}
	}
	p.lastSweep = now
}

func (p *limiterPool) allow(key string, now time.Time) bool {
	return p.get(key, now).AllowN(now, 1)
}

// retryAfter is the time to refill one token, in whole seconds.
func (p *limiterPool) retryAfter() int {
	sec := int(math.Ceil(1 / p.cfg.RPS))
	if sec < 1 {
		sec = 1
	}
	return sec
}

// RateLimit limits requests per client IP with a token bucket.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	p := newLimiterPool(cfg)
	limitStr := strconv.Itoa(p.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, p.cfg.TrustProxy)

			w.Header().Set("X-RateLimit-Limit", limitStr)
			if !p.allow(key, time.Now()) {
				w.Header().Set("Retry-After", strconv.Itoa(p.retryAfter()))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
