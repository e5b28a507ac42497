package routes

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hellosarowarhn-boop/ecomm/docs"
	"github.com/hellosarowarhn-boop/ecomm/internal/app/controllers"
	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/storage"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	cfg := serviceContainer.Config

	r := gin.Default()
	r.Use(middleware.RequestID())

	// 仅在配置了前端地址时添加 CORS 头，cookie 认证需要明确的来源
	if cfg.CORSOrigin != "" {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
				return
			}
			c.Next()
		})
	}

	// 响应缓存：启用 Redis 时多实例共享
	if svc, ok := serviceContainer.Lookup("redis"); ok {
		middleware.SetCacheStore(middleware.NewRedisCacheStore(svc.(services.InterfaceRedisService)))
	} else {
		middleware.SetCacheStore(middleware.NewMemoryCacheStore())
	}

	// 初始化认证中间件
	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 静态文件：上传的图片和设置快照
	r.Static("/"+storage.UploadPrefix, filepath.Join(cfg.PublicDir, storage.UploadPrefix))
	r.StaticFile("/settings.json", filepath.Join(cfg.PublicDir, "settings.json"))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")

	// 添加IP限流中间件 - 每秒允许20个请求，最多突发40个请求
	api.Use(middleware.IPRateLimiter(20, 40))

	registerHealthRoutes(api, container)
	registerStorefrontRoutes(api, container)
	registerOrderRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerHealthRoutes 健康检查路由
func registerHealthRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))

	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))
	healthGroup.GET("/cache-stats", middleware.RequireAdmin(), controllers.HandleHealthFunc(container, "cacheStats"))
}

// registerStorefrontRoutes 商品、站点设置和上传路由
func registerStorefrontRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	cache := middleware.Cache(middleware.CacheConfig{Expiration: container.Config.CacheTTL})

	api.GET("/products", cache, controllers.HandleProductFunc(container, "getProducts"))
	api.GET("/products/:id", cache, controllers.HandleProductFunc(container, "getProduct"))
	api.PUT("/products", middleware.RequireSuperAdmin(), controllers.HandleProductFunc(container, "updateProduct"))

	api.GET("/settings", cache, controllers.HandleSettingsFunc(container, "getSettings"))
	api.PUT("/settings", middleware.RequireSuperAdmin(), controllers.HandleSettingsFunc(container, "updateSettings"))

	// 上传限流 - 整个上传路径每秒5个，最多突发10个
	api.POST("/upload", middleware.RequireSuperAdmin(), middleware.PathRateLimiter(5, 10), controllers.HandleUploadFunc(container, "upload"))
}

// registerOrderRoutes 订单路由，按手机号查询订单对外公开
func registerOrderRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	orders := api.Group("/orders")

	orders.GET("", middleware.Unless(controllers.IsPublicOrderLookup, middleware.RequireAdmin()), controllers.HandleOrderFunc(container, "getOrders"))
	// 下单限流 - 每个IP每秒1个，最多突发5个
	orders.POST("", middleware.CombinedRateLimiter(1, 5), controllers.HandleOrderFunc(container, "createOrder"))

	admin := orders.Group("", middleware.RequireAdmin())
	admin.PUT("", controllers.HandleOrderFunc(container, "updateOrderStatus"))
	admin.DELETE("", controllers.HandleOrderFunc(container, "deleteOrder"))
	admin.GET("/stats", controllers.HandleOrderFunc(container, "getStats"))
	admin.GET("/customers", controllers.HandleOrderFunc(container, "getCustomers"))
}

// registerAdminRoutes 管理员认证和账号管理路由
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	adminGroup := api.Group("/admin")

	// 登录限流 - 每个IP每5秒1次，最多突发5次
	adminGroup.POST("/login", middleware.CombinedRateLimiter(0.2, 5), controllers.HandleAuthFunc(container, "login"))
	adminGroup.POST("/logout", controllers.HandleAuthFunc(container, "logout"))
	adminGroup.GET("/verify", middleware.OptionalAuth(), controllers.HandleAuthFunc(container, "verify"))

	admins := adminGroup.Group("/admins", middleware.RequireSuperAdmin())
	admins.GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	admins.GET("/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	admins.POST("", controllers.HandleAdminFunc(container, "createAdmin"))
	admins.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	admins.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))
}
