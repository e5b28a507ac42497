package controllers

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
)

var startedAt = time.Now()

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

// Ping 健康检查端点
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /ping [get]
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status 依赖和运行时状态
// @Summary      Service status
// @Description  Database and Redis connectivity plus runtime figures
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /health/status [get]
func (h *HealthCheckController) Status() {
	ctx, cancel := context.WithTimeout(h.Ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	database := "up"
	if err := pingDatabase(ctx, h.Container); err != nil {
		database = "down: " + err.Error()
		status = "degraded"
	}

	redisStatus := "disabled"
	if svc, ok := h.Container.Lookup("redis"); ok {
		redisStatus = "up"
		if err := svc.(services.InterfaceRedisService).Ping(ctx); err != nil {
			redisStatus = "down: " + err.Error()
			status = "degraded"
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response.Success(h.Ctx, gin.H{
		"status":     status,
		"database":   database,
		"redis":      redisStatus,
		"uptime":     time.Since(startedAt).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
		"memory_mb":  mem.Alloc / 1024 / 1024,
	})
}

// CacheStats 响应缓存统计
// @Summary      Cache statistics
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /health/cache-stats [get]
func (h *HealthCheckController) CacheStats() {
	response.Success(h.Ctx, middleware.CacheStats(h.Ctx.Request.Context()))
}

func pingDatabase(ctx context.Context, c *container.ServiceContainer) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
