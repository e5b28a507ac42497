package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"Request validation failed"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 表示成功响应
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data"`
}

// 业务错误到错误码的映射
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrProductNotFound, code.ErrProductNotFound},
	{services.ErrTooManyImages, code.ErrProductTooManyImages},
	{services.ErrOrderNotFound, code.ErrOrderNotFound},
	{services.ErrInvalidOrderStatus, code.ErrOrderInvalidStatus},
	{services.ErrInvalidDeleteMode, code.ErrOrderInvalidDeleteMode},
	{services.ErrAdminNotFound, code.ErrAdminNotFound},
	{services.ErrAdminEmailExists, code.ErrAdminAlreadyExist},
	{services.ErrCannotDeleteSelf, code.ErrAdminDeleteSelf},
	{services.ErrLastSuperAdmin, code.ErrAdminLastSuperAdmin},
	{services.ErrInvalidCredentials, code.ErrAdminPasswordIncorrect},
	{services.ErrInvalidToken, code.ErrTokenInvalid},
}

// handleServiceError 将服务层错误写为统一响应，未知错误只记录日志不暴露细节
func handleServiceError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		response.ParamError(ctx, validationErr.Message)
		return
	}

	var transitionErr *models.TransitionError
	if errors.As(err, &transitionErr) {
		response.FailWithMessage(ctx, code.ErrOrderIllegalTransition, transitionErr.Error(), gin.H{
			"from": transitionErr.From,
			"to":   transitionErr.To,
		})
		return
	}

	for _, mapping := range serviceErrorCodes {
		if errors.Is(err, mapping.err) {
			response.Fail(ctx, mapping.code, nil)
			return
		}
	}

	Logger.Error("%s %s 处理失败: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	response.ServerError(ctx)
}

// parseID 解析正整数ID
func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
