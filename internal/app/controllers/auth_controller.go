package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
	"github.com/hellosarowarhn-boop/ecomm/utils"
)

// AuthController 处理管理员登录、登出和会话校验
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@ecomstore.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "verify":
			controller.Verify()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

func (c *AuthController) setTokenCookie(token string, maxAge int) {
	cfg := c.Container.Config
	c.Ctx.SetSameSite(http.SameSiteStrictMode)
	c.Ctx.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", cfg.CookieSecure, true)
}

// Login 管理员登录
// @Summary      Admin login
// @Description  Verifies email and password and sets the admin_token cookie (HttpOnly, SameSite=Strict)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "email and password are required")
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(c.Ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		Logger.Warning("管理员登录失败: %s", utils.NormalizeEmail(req.Email))
		handleServiceError(c.Ctx, err)
		return
	}

	c.setTokenCookie(result.Token, int(jwtService.TokenTTL().Seconds()))
	response.Success(c.Ctx, result)
}

// Logout 管理员登出
// @Summary      Admin logout
// @Description  Clears the admin_token cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /admin/logout [post]
func (c *AuthController) Logout() {
	c.setTokenCookie("", -1)
	response.Success(c.Ctx, nil)
}

// Verify 校验当前会话
// @Summary      Verify session
// @Description  Reports whether the admin_token cookie holds a valid, unexpired token
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/verify [get]
func (c *AuthController) Verify() {
	claims, ok := middleware.GetClaims(c.Ctx)
	if !ok {
		response.Fail(c.Ctx, code.ErrTokenInvalid, gin.H{"authenticated": false})
		return
	}

	response.Success(c.Ctx, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":    claims.ID,
			"email": claims.Email,
			"role":  claims.Role,
			"name":  claims.Name,
		},
	})
}
