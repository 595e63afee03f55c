package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 可探活的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	corpusPath string
	store      Pinger
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(corpusPath string, store Pinger) *HealthHandler {
	return &HealthHandler{
		corpusPath: corpusPath,
		store:      store,
	}
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
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查语料文件与向量缓存存储是否可用
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"corpus":      {Status: "unknown"},
		"cache_store": {Status: "unknown"},
	}

	ready := true

	// 语料文件（必需）
	if _, err := os.Stat(h.corpusPath); err != nil {
		checks["corpus"].Status = "error"
		checks["corpus"].Error = err.Error()
		ready = false
	} else {
		checks["corpus"].Status = "ok"
	}

	// 缓存存储（必需）
	if h.store == nil {
		checks["cache_store"].Status = "missing"
		checks["cache_store"].Error = "cache store not configured"
		ready = false
	} else {
		start := time.Now()
		err := h.store.Ping(ctx)
		checks["cache_store"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["cache_store"].Status = "error"
			checks["cache_store"].Error = err.Error()
			ready = false
		} else {
			checks["cache_store"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
