package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"kdrama-rec-api/internal/interfaces/http/dto"
	apperrors "kdrama-rec-api/pkg/errors"
	"kdrama-rec-api/pkg/logger"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond int
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 限流；限流器故障时放行
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 50
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		allowed, err := limiter.Allow(ctx, c.ClientIP(), cfg.RequestsPerSecond, time.Second)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			dto.AbortAppError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
