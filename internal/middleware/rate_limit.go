package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultCleanupInterval is how often idle visitors are forgotten
const DefaultCleanupInterval = time.Minute

// RateLimiter is an in-memory token bucket per client IP. Lead forms get a
// stricter limiter than catalog reads.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	r        rate.Limit
	b        int
	idle     time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing r requests per second with bursts of b.
// Call Stop to end its cleanup goroutine.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return newRateLimiter(r, b, DefaultCleanupInterval)
}

func newRateLimiter(r rate.Limit, b int, cleanup time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
		idle:     3 * cleanup,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go rl.cleanupVisitors(cleanup)

	return rl
}

// Stop ends the cleanup goroutine; safe to call more than once
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() {
		close(rl.stop)
		<-rl.done
	})
}

func (rl *RateLimiter) getVisitor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.r, rl.b)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors(every time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.forgetIdle(now)
		}
	}
}

func (rl *RateLimiter) forgetIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Middleware returns a Gin middleware function for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP(), time.Now())

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
