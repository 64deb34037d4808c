package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/buysimply/buysimply/faults"
)

// ThrottleConfig bounds the request rate per client IP.
type ThrottleConfig struct {
	// Limit is the number of requests allowed per Window.
	Limit int

	// Window is the period the limit applies to.
	Window time.Duration
}

// DefaultThrottleConfig allows 10 requests per minute, the front-door
// policy this service has always shipped with.
func DefaultThrottleConfig() *ThrottleConfig {
	return &ThrottleConfig{
		Limit:  10,
		Window: time.Minute,
	}
}

// throttler keeps one token-bucket limiter per client IP. The map only
// grows for the process lifetime; clients are few (staff members), so no
// eviction is needed.
type throttler struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newThrottler(cfg *ThrottleConfig) *throttler {
	return &throttler{
		visitors: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		burst:    cfg.Limit,
	}
}

func (t *throttler) allow(clientIP string) bool {
	t.mu.Lock()
	limiter, ok := t.visitors[clientIP]
	if !ok {
		limiter = rate.NewLimiter(t.limit, t.burst)
		t.visitors[clientIP] = limiter
	}
	t.mu.Unlock()

	return limiter.Allow()
}

// throttle builds the rate-limiting middleware. It runs ahead of the
// guard, and a throttled request leaves through the classifier like every
// other failure.
func (h *handlers) throttle(cfg *ThrottleConfig) func(http.Handler) http.Handler {
	t := newThrottler(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !t.allow(clientIP(r)) {
				h.respondFault(w, r, faults.TooManyRequests("ThrottlerException: Too Many Requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's client address without the port. The
// RealIP middleware has already rewritten RemoteAddr from the forwarding
// headers when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
