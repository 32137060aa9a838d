package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// limiterStore holds one token bucket per key with idle eviction.
type limiterStore[K comparable] struct {
	limiters sync.Map // map[K]*limiterEntry
	rps      float64
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newLimiterStore[K comparable](rps float64, burst int) *limiterStore[K] {
	return &limiterStore[K]{rps: rps, burst: burst}
}

// getLimiter retrieves or creates the limiter for key.
func (s *limiterStore[K]) getLimiter(key K) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// evictIdle removes limiters not accessed since threshold.
func (s *limiterStore[K]) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			s.limiters.Delete(key)
		}
		return true
	})
}

// cleanupStale periodically evicts idle limiters until ctx is done.
func (s *limiterStore[K]) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-limiterIdleTimeout))
		}
	}
}

// allow consumes a token for key. When the bucket is empty it writes a 429
// with a Retry-After header and aborts the request.
func (s *limiterStore[K]) allow(c *gin.Context, key K, logger *slog.Logger, attrs ...any) bool {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	reservation.Cancel()

	logger.Debug("rate limit exceeded", append(attrs, slog.Int("retry_after", retryAfter))...)

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please retry after the specified delay.",
	})
	c.Abort()
	return false
}

// RateLimitMiddleware enforces per-client rate limiting on authenticated
// requests. It must run after AuthenticationMiddleware. Requests over the
// limit get 429 Too Many Requests with a Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](rps, burst)
	go store.cleanupStale(context.Background(), limiterCleanupInterval)

	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok || client == nil {
			logger.Error("rate limit middleware: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !store.allow(c, client.ID, logger, slog.String("client_id", client.ID.String())) {
			return
		}
		c.Next()
	}
}

// TokenRateLimitMiddleware enforces per-IP rate limiting on unauthenticated
// endpoints such as token issuance. The IP comes from c.ClientIP(), which
// honours X-Forwarded-For and X-Real-IP for trusted proxies.
func TokenRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](rps, burst)
	go store.cleanupStale(context.Background(), limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !store.allow(c, clientIP, logger, slog.String("client_ip", clientIP)) {
			return
		}
		c.Next()
	}
}
