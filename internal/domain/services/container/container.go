package container

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/storage"
)

// ServiceContainer 服务容器，控制器按名称获取服务
type ServiceContainer struct {
	DB     *gorm.DB
	Config *config.Config

	mu       sync.RWMutex
	services map[string]interface{}
}

// NewServiceContainer 创建服务容器并注册所有服务，uploads 为 nil 时使用本地存储
func NewServiceContainer(db *gorm.DB, cfg *config.Config, uploads storage.Storage) *ServiceContainer {
	if uploads == nil {
		uploads = storage.NewLocalStorage(cfg.PublicDir)
	}

	c := &ServiceContainer{
		DB:       db,
		Config:   cfg,
		services: make(map[string]interface{}),
	}

	c.Register("product", services.NewProductService(db, cfg))
	c.Register("order", services.NewOrderService(db, cfg))
	c.Register("settings", services.NewSettingsService(db, cfg, storage.NewSnapshotWriter(cfg.PublicDir)))
	admins := services.NewAdminService(db, cfg)
	c.Register("admin", admins)
	c.Register("jwt", services.NewJWTService(cfg, admins))
	c.Register("storage", uploads)

	if cfg.RedisEnabled {
		c.Register("redis", services.NewRedisService(cfg))
	}
	return c
}

// Register 注册或替换服务
func (c *ServiceContainer) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// GetService 按名称获取服务，未注册时 panic
func (c *ServiceContainer) GetService(name string) interface{} {
	service, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("service %q is not registered", name))
	}
	return service
}

// Lookup 按名称获取可选服务
func (c *ServiceContainer) Lookup(name string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	service, ok := c.services[name]
	return service, ok
}
