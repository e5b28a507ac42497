// @title           E-Commerce Storefront API
// @version         1.0
// @description     Storefront catalog, order placement and tracking, and the admin back office

// @BasePath  /api

// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        admin_token
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/routes"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/database"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/storage"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		Logger.Error("服务退出: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// 加载.env文件
	envErr := godotenv.Load()

	// 获取配置
	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 初始化日志配置，目录不可写时只输出到控制台
	if err := Logger.SetupLogger(cfg.LogDir); err != nil {
		Logger.Warning("日志文件不可用，仅输出到控制台: %v", err)
	}
	defer Logger.Close()

	if envErr != nil {
		Logger.Warning("无法加载.env文件: %v", envErr)
	} else {
		Logger.Info("成功加载.env文件")
	}

	gin.SetMode(cfg.GinMode)

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return fmt.Errorf("无法创建数据库连接池: %w", err)
	}
	defer pool.Close()
	db := pool.GetDB()

	if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 确保系统中有管理员账户、初始商品和站点设置
	if err := database.Seed(db, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		return fmt.Errorf("初始化数据失败: %w", err)
	}

	uploads, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("初始化上传存储失败: %w", err)
	}

	serviceContainer := container.NewServiceContainer(db, cfg, uploads)
	if svc, ok := serviceContainer.Lookup("redis"); ok {
		defer svc.(services.InterfaceRedisService).Close()
	}
	router := routes.SetupRouter(serviceContainer)

	printSystemInfo(pool, uploads)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("服务器启动在: http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务器失败: %w", err)
		}
		return nil
	case sig := <-quit:
		Logger.Info("收到信号 %s，开始关闭服务器", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭服务器失败: %w", err)
	}
	Logger.Info("服务器已关闭")
	return nil
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool, uploads storage.Storage) {
	if stats, err := pool.Stats(); err == nil {
		Logger.Info("数据库连接池状态: %+v", stats)
	}
	Logger.Info("上传存储: %s", uploads.Driver())
	Logger.Info("系统CPU核心数: %d, 当前Go协程数: %d", runtime.NumCPU(), runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
