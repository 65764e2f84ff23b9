package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"crmchat/internal/adapter/http/helper"
	"crmchat/internal/core/telemetry"
	"crmchat/pkg/config"
)

const defaultLimitKey = "default"

// RateLimiter counts requests per client IP and route in fixed windows.
type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]config.RateLimitConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// NewRateLimiter takes limits keyed by "METHOD route" plus a "default"
// entry. metrics may be nil.
func NewRateLimiter(limits map[string]config.RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	configs := make(map[string]config.RateLimitConfig, len(limits)+1)
	for key, limit := range limits {
		configs[key] = limit
	}

	if _, ok := configs[defaultLimitKey]; !ok {
		configs[defaultLimitKey] = config.RateLimitConfig{Requests: 300, Window: time.Minute}
	}

	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path
		limit := rl.limitFor(methodPath)
		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, c.ClientIP())

		allowed, remaining, resetTime := rl.checkRateLimit(key, limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", limit.Requests),
				zap.Duration("window", limit.Window))

			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			helper.SendError(c, http.StatusTooManyRequests, helper.CodeRateLimit,
				fmt.Sprintf("Too many requests. Limit: %d per %v", limit.Requests, limit.Window), nil)
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) limitFor(methodPath string) config.RateLimitConfig {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if limit, ok := rl.config[methodPath]; ok {
		return limit
	}

	return rl.config[defaultLimitKey]
}

func (rl *RateLimiter) checkRateLimit(key string, limit config.RateLimitConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if item, found := rl.cache.Get(key); found {
		entry := item.(RateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= limit.Requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, time.Until(entry.ResetTime))

			return true, limit.Requests - entry.Count, entry.ResetTime
		}
	}

	resetTime := now.Add(limit.Window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, limit.Window)

	return true, limit.Requests - 1, resetTime
}

func (rl *RateLimiter) SetConfig(methodPath string, limit config.RateLimitConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[methodPath] = limit
}

func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	return map[string]interface{}{
		"active_entries": rl.cache.ItemCount(),
		"configs":        len(rl.config),
	}
}
