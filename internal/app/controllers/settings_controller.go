package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
)

// SettingsController 站点设置控制器
type SettingsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSettingsController 创建一个新的站点设置控制器
func NewSettingsController(ctx *gin.Context, container *container.ServiceContainer) *SettingsController {
	return &SettingsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleSettingsFunc 返回一个处理站点设置请求的Gin处理函数
func HandleSettingsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSettingsController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "updateSettings":
			controller.UpdateSettings()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

func (c *SettingsController) service() services.InterfaceSettingsService {
	return c.Container.GetService("settings").(services.InterfaceSettingsService)
}

// GetSettings 获取站点设置
// @Summary      Get site settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /settings [get]
func (c *SettingsController) GetSettings() {
	settings, err := c.service().GetSettings(c.Ctx.Request.Context())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, settings)
}

// UpdateSettings 更新站点设置
// @Summary      Update site settings
// @Description  Replaces all settings. Empty button texts fall back to their defaults. settings.json and contact.json are rewritten afterwards.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request body services.SettingsUpdateInput true "settings"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /settings [put]
// @Security     CookieAuth
func (c *SettingsController) UpdateSettings() {
	var req services.SettingsUpdateInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	settings, err := c.service().UpdateSettings(c.Ctx.Request.Context(), req)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	middleware.PurgeCache(c.Ctx.Request.Context())
	response.Success(c.Ctx, settings)
}
