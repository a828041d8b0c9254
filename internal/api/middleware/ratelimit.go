package middleware

import (
	"net/http"
	"sync"
	"time"

	"vida-fed/internal/api/response"
	"vida-fed/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter 按客户端 IP 限流
type RateLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu      sync.Mutex
	clients map[string]*client
	swept   time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter perSecond <= 0 表示不限流；ttl 内未出现的 IP 会被清理
func NewRateLimiter(perSecond float64, burst int, ttl time.Duration) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		clients: make(map[string]*client),
		swept:   time.Now(),
	}
}

// Allow 判断该 IP 的请求是否放行
func (l *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	l.sweep(now)
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// sweep 只清理超过 ttl 未出现的 IP，调用方持有锁
func (l *RateLimiter) sweep(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.swept) < l.ttl {
		return
	}
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.clients, ip)
		}
	}
	l.swept = now
}

// Len 当前跟踪的 IP 数
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware 超限时返回 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			metrics.RateLimited()
			c.Header("Retry-After", "1")
			response.Fail(c, http.StatusTooManyRequests, "TooManyRequests", "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}
		c.Next()
	}
}
