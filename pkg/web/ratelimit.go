package web

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 4096

// ipRateLimiter keeps one token bucket per client IP. The least recently
// seen clients are evicted once maxTrackedClients is reached.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache
	every    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	cache, err := lru.New(maxTrackedClients)
	if err != nil {
		panic(err)
	}
	return &ipRateLimiter{
		limiters: cache,
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(ip); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.every, l.burst)
	l.limiters.Add(ip, limiter)
	return limiter
}

// Allow reports whether ip may make a request now
func (l *ipRateLimiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}
