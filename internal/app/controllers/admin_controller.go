package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	CreateAdmin()
	UpdateAdmin()
	DeleteAdmin()
}

// AdminController 管理员控制器
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "createAdmin":
			controller.CreateAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

func (c *AdminController) service() services.InterfaceAdminService {
	return c.Container.GetService("admin").(services.InterfaceAdminService)
}

// 1. GetAdmins 获取管理员列表
// @Summary      List admins
// @Description  All admin accounts, newest first
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/admins [get]
// @Security     CookieAuth
func (c *AdminController) GetAdmins() {
	admins, err := c.service().GetAllAdmins(c.Ctx.Request.Context())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admins)
}

// 2. GetAdmin 获取管理员详情
// @Summary      Get admin
// @Tags         Admin
// @Produce      json
// @Param        id path int true "admin id"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [get]
// @Security     CookieAuth
func (c *AdminController) GetAdmin() {
	id, ok := parseID(c.Ctx.Param("id"))
	if !ok {
		response.ParamError(c.Ctx, "invalid admin id")
		return
	}

	admin, err := c.service().GetAdminByID(c.Ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admin)
}

// 3. CreateAdmin 创建管理员
// @Summary      Create admin
// @Description  Email and password are required; role defaults to co_admin
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body services.CreateAdminInput true "admin"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/admins [post]
// @Security     CookieAuth
func (c *AdminController) CreateAdmin() {
	var req services.CreateAdminInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	admin, err := c.service().CreateAdmin(c.Ctx.Request.Context(), req)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	Logger.Info("已创建管理员 %s (%s)", admin.Email, admin.Role)
	response.Created(c.Ctx, admin)
}

// 4. UpdateAdmin 更新管理员
// @Summary      Update admin
// @Description  Updates name, email and role. The password changes only when a non-empty one is sent.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "admin id"
// @Param        request body services.UpdateAdminInput true "fields"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [put]
// @Security     CookieAuth
func (c *AdminController) UpdateAdmin() {
	id, ok := parseID(c.Ctx.Param("id"))
	if !ok {
		response.ParamError(c.Ctx, "invalid admin id")
		return
	}

	var req services.UpdateAdminInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	admin, err := c.service().UpdateAdmin(c.Ctx.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, admin)
}

// 5. DeleteAdmin 删除管理员
// @Summary      Delete admin
// @Description  Admins cannot delete themselves
// @Tags         Admin
// @Produce      json
// @Param        id path int true "admin id"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [delete]
// @Security     CookieAuth
func (c *AdminController) DeleteAdmin() {
	id, ok := parseID(c.Ctx.Param("id"))
	if !ok {
		response.ParamError(c.Ctx, "invalid admin id")
		return
	}

	claims, ok := middleware.GetClaims(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	if err := c.service().DeleteAdmin(c.Ctx.Request.Context(), id, claims.ID); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	Logger.Info("管理员 #%d 已被 %s 删除", id, claims.Email)
	response.Success(c.Ctx, gin.H{"id": id})
}
