package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"kdrama-rec-api/internal/application/recommend"
)

// HealthChecker 外部依赖的健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependency 可选依赖，失败时只降级不影响就绪态
type Dependency struct {
	Name    string
	Checker HealthChecker
}

// CatalogInspector 提供当前目录概况
type CatalogInspector interface {
	Catalog() (recommend.CatalogStats, bool)
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	catalog CatalogInspector
	version string
	deps    []Dependency
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(catalog CatalogInspector, version string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{catalog: catalog, version: version, deps: deps}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status  string                     `json:"status"`
	Catalog *recommend.CatalogStats    `json:"catalog,omitempty"`
	Checks  map[string]*readinessCheck `json:"checks"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready 就绪检查接口：目录已加载即就绪，外部依赖只报告状态
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := readinessResponse{
		Status: "ok",
		Checks: make(map[string]*readinessCheck, len(h.deps)+1),
	}

	if stats, ok := h.catalog.Catalog(); ok && stats.Items > 0 {
		resp.Catalog = &stats
		resp.Checks["catalog"] = &readinessCheck{Status: "ok"}
	} else {
		resp.Status = "not_ready"
		resp.Checks["catalog"] = &readinessCheck{Status: "missing", Error: "catalog index not loaded"}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, dep := range h.deps {
		g.Go(func() error {
			start := time.Now()
			err := dep.Checker.HealthCheck(gctx)
			check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
			if err != nil {
				check.Status = "degraded"
				check.Error = err.Error()
			}
			mu.Lock()
			resp.Checks[dep.Name] = check
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if resp.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
