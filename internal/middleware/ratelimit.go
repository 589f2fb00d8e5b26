package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/respond"
)

const tooManyAttempts = "Too many attempts, try again later"

// RateLimitPerIP throttles each client IP with its own token bucket.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	return newIPLimiters(rps, burst, time.Now).handler()
}

// ipLimiters keeps one bucket per client. A bucket idle for longer than it
// takes to refill completely is dropped on the next sweep.
type ipLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	buckets   map[string]*ipBucket
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(rps rate.Limit, burst int, now func() time.Time) *ipLimiters {
	idle := time.Minute
	if rps > 0 && rps != rate.Inf {
		if refill := time.Duration(float64(burst) / float64(rps) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &ipLimiters{
		rps:       rps,
		burst:     burst,
		idle:      idle,
		now:       now,
		lastSweep: now(),
		buckets:   make(map[string]*ipBucket),
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) >= l.idle {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *ipLimiters) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.get(c.ClientIP()).AllowN(l.now(), 1) {
			c.Next()
			return
		}
		if respond.WantsJSON(c) {
			apierrors.TooManyRequests(c)
			return
		}
		respond.Redirect(c, c.Request.URL.Path, tooManyAttempts)
	}
}

// PerMinute converts an attempts-per-minute budget into a limiter rate.
func PerMinute(n int) rate.Limit {
	if n <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(n) / 60)
}
