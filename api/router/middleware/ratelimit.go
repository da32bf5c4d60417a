package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"parley/logger"
	"parley/models"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 5 * time.Minute
	limiterSweepInterval = time.Minute
)

// clientLimiter pairs a token bucket with its last-use time so idle entries
// can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool hands out one token bucket per client IP. Idle entries are
// swept lazily on the request path, so the pool needs no background
// goroutine and dies with its router.
type limiterPool struct {
	requestsPerSecond float64
	burst             int

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newLimiterPool(requestsPerSecond float64, burst int) *limiterPool {
	return &limiterPool{
		requestsPerSecond: requestsPerSecond,
		burst:             burst,
		clients:           make(map[string]*clientLimiter),
		lastSweep:         time.Now(),
	}
}

// get returns the client's limiter, creating it on first sight, and sweeps
// idle entries at most once per sweep interval so the map stays bounded.
func (p *limiterPool) get(ip string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= limiterSweepInterval {
		p.sweepLocked(now)
	}

	cl, ok := p.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(p.requestsPerSecond), p.burst)}
		p.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func (p *limiterPool) sweepLocked(now time.Time) {
	for ip, cl := range p.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(p.clients, ip)
		}
	}
	p.lastSweep = now
}

// RateLimiter enforces a per-client-IP token bucket across the whole API.
// Exhausted clients receive a 429 ErrorResponse.
func RateLimiter(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool(requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !pool.get(ip, time.Now()).Allow() {
				logger.Warn("RateLimiter: client %s exceeded %v req/s", ip, requestsPerSecond)
				writeJSONError(w, http.StatusTooManyRequests, models.NewErrorResponse("Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
