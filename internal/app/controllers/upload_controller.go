package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/storage"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// multipart 表单除文件外的额外开销
const multipartOverhead = 1 << 20

// UploadController 文件上传控制器
type UploadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUploadController 创建一个新的上传控制器
func NewUploadController(ctx *gin.Context, container *container.ServiceContainer) *UploadController {
	return &UploadController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleUploadFunc 返回一个处理上传请求的Gin处理函数
func HandleUploadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUploadController(ctx, container)

		switch method {
		case "upload":
			controller.Upload()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

// Upload 上传图片
// @Summary      Upload image
// @Description  Stores an image under an SEO friendly name and returns its public URL
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "image file"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /upload [post]
// @Security     CookieAuth
func (c *UploadController) Upload() {
	maxBytes := c.Container.Config.UploadMaxBytes
	c.Ctx.Request.Body = http.MaxBytesReader(c.Ctx.Writer, c.Ctx.Request.Body, maxBytes+multipartOverhead)

	header, err := c.Ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c.Ctx, code.ErrUploadTooLarge, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrUploadMissingFile, nil)
		return
	}
	if header.Size > maxBytes {
		response.Fail(c.Ctx, code.ErrUploadTooLarge, nil)
		return
	}

	filename, err := storage.SanitizeFilename(header.Filename, time.Now())
	if err != nil {
		response.Fail(c.Ctx, code.ErrUploadFileType, nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		Logger.Error("打开上传文件失败: %v", err)
		response.Fail(c.Ctx, code.ErrUploadFailed, nil)
		return
	}
	defer file.Close()

	store := c.Container.GetService("storage").(storage.Storage)
	url, err := store.Save(c.Ctx.Request.Context(), filename, storage.ContentTypeFor(filename), file)
	if err != nil {
		Logger.Error("保存上传文件失败 (%s): %v", store.Driver(), err)
		response.Fail(c.Ctx, code.ErrUploadFailed, nil)
		return
	}

	Logger.Info("已上传文件 %s", url)
	response.Success(c.Ctx, gin.H{"url": url})
}
