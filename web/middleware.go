/* middleware.go
 * Contains the gin middleware: request scoped logging with request ids, request metrics and per client rate limiting
 */

package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader    = "X-Request-Id"
	msgTooManyRequests = "Too many requests. Please try again later."

	// Limiters idle for longer than this are dropped once the table is full
	limiterIdleTTL = 10 * time.Minute
	maxLimiters    = 10000
)

// requestLogger attaches a logger carrying a request id to the request context and logs failed requests
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := xid.New().String()
		c.Writer.Header().Set(requestIDHeader, id)

		reqlogger := log.Logger.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(reqlogger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.observeRequest(c.Request.Method, c.FullPath(), status, elapsed)

		msg := "Request"
		if len(c.Errors) > 0 {
			msg = c.Errors.String()
		}
		event := reqlogger.Debug()
		switch {
		case status >= http.StatusInternalServerError:
			event = reqlogger.Error()
		case status >= http.StatusBadRequest:
			event = reqlogger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg(msg)
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter holds one token bucket per client address
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= maxLimiters {
			l.prune(now)
		}
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// prune must be called with mu held
func (l *ipLimiter) prune(now time.Time) {
	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

// rateLimit answers 429 once a client has used up its burst
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"status":  "error",
				"message": msgTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
