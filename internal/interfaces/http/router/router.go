// Package router 提供 HTTP 路由配置
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kdrama-rec-api/internal/config"
	"kdrama-rec-api/internal/interfaces/http/dto"
	"kdrama-rec-api/internal/interfaces/http/handler"
	"kdrama-rec-api/internal/interfaces/http/middleware"
)

// Router HTTP 路由器
type Router struct {
	engine  *gin.Engine
	cfg     *config.Config
	limiter middleware.RateLimiter
}

// Handlers 路由依赖的处理器
type Handlers struct {
	Recommend *handler.RecommendHandler
	Health    *handler.HealthHandler
}

// New 创建路由器，limiter 为 nil 时不限流
func New(cfg *config.Config, h Handlers, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:  gin.New(),
		cfg:     cfg,
		limiter: limiter,
	}
	r.setupMiddleware()
	r.setupRoutes(h)
	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

func (r *Router) setupRoutes(h Handlers) {
	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := []gin.HandlerFunc{
		middleware.Timeout(r.cfg.Server.HTTP.RequestTimeout),
		middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:           r.cfg.Security.RateLimit.Enabled,
			RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
		}, r.limiter),
	}

	// 旧版前端使用的接口
	r.engine.GET("/recommend", append(api, h.Recommend.Recommend)...)

	v1 := r.engine.Group("/v1", api...)
	{
		v1.GET("/recommendations", h.Recommend.RecommendV1)
		v1.GET("/titles", h.Recommend.SuggestTitles)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		dto.Error(c, http.StatusNotFound, "route not found")
	})
}
