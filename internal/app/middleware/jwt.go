package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
)

// AuthCookieName 保存管理员令牌的 cookie 名称
const AuthCookieName = "admin_token"

// 上下文键
const (
	ContextClaimsKey  = "claims"
	ContextAdminIDKey = "adminID"
	ContextRoleKey    = "role"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(service services.InterfaceJWTService) {
	jwtService = service
}

// extractToken 优先从 cookie 读取令牌，其次是 Authorization 头
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AuthCookieName); err == nil && token != "" {
		return token
	}

	// 检查并移除 "Bearer " 前缀
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// authenticate 校验令牌，成功时把声明写入上下文
func authenticate(c *gin.Context) (*services.AdminClaims, bool) {
	if jwtService == nil {
		return nil, false
	}
	claims, err := jwtService.ExtractClaims(extractToken(c))
	if err != nil {
		return nil, false
	}

	c.Set(ContextClaimsKey, claims)
	c.Set(ContextAdminIDKey, claims.ID)
	c.Set(ContextRoleKey, claims.Role)
	return claims, true
}

// RequireRole 要求有效令牌且角色在允许列表中，令牌无效返回401，角色不符返回403
func RequireRole(roles ...models.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !claims.HasRole(roles...) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin 任意管理员角色
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin, models.RoleCoAdmin)
}

// RequireSuperAdmin 仅超级管理员
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}

// OptionalAuth 有有效令牌时写入声明，没有也放行
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c)
		c.Next()
	}
}

// Unless skip 返回 true 时跳过 handler
func Unless(skip func(*gin.Context) bool, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skip(c) {
			c.Next()
			return
		}
		handler(c)
	}
}

// GetClaims 获取当前请求的管理员声明
func GetClaims(c *gin.Context) (*services.AdminClaims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.AdminClaims)
	return claims, ok
}
