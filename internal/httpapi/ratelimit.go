package httpapi

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// IPLimiter rate-limits per client IP. Only the submission endpoint sits
// behind it; listing reads are already cushioned by the gateway cache, and
// upstream throttling stays the ATS's job.
type IPLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

// NewIPLimiter allows ratePerMinute requests with the given burst per IP.
// ratePerMinute <= 0 disables limiting (returns nil).
func NewIPLimiter(ratePerMinute, burst int) *IPLimiter {
	if ratePerMinute <= 0 {
		return nil
	}
	return &IPLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(float64(ratePerMinute) / 60.0),
		b: burst,
	}
}

func (l *IPLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[ip]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[ip] = lim
	return lim
}

func (l *IPLimiter) Allow(remoteAddr string) bool {
	if l == nil {
		return true
	}
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	return l.limiterFor(ip).Allow()
}

func RateLimit(l *IPLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.RemoteAddr) {
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many submissions, try again later")
			return
		}
		next(w, r)
	}
}
