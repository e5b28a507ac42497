package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/app/middleware"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
)

// InterfaceProductController 定义商品控制器接口
type InterfaceProductController interface {
	GetProducts()
	GetProduct()
	UpdateProduct()
}

// ProductController 商品控制器
type ProductController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProductController 创建一个新的商品控制器
func NewProductController(ctx *gin.Context, container *container.ServiceContainer) *ProductController {
	return &ProductController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	ID uint `json:"id" binding:"required" example:"1"`
	services.ProductUpdateInput
}

// HandleProductFunc 返回一个处理商品请求的Gin处理函数
func HandleProductFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProductController(ctx, container)

		switch method {
		case "getProducts":
			controller.GetProducts()
		case "getProduct":
			controller.GetProduct()
		case "updateProduct":
			controller.UpdateProduct()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

func (c *ProductController) service() services.InterfaceProductService {
	return c.Container.GetService("product").(services.InterfaceProductService)
}

// 1. GetProducts 获取商品列表
// @Summary      List products
// @Description  Returns products in id order. With active=true only active products are returned and combo images are built from the single products.
// @Tags         Product
// @Produce      json
// @Param        active query bool false "only active products"
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /products [get]
func (c *ProductController) GetProducts() {
	activeOnly := c.Ctx.Query("active") == "true"

	products, err := c.service().ListProducts(c.Ctx.Request.Context(), activeOnly)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, products)
}

// 2. GetProduct 获取上架商品详情
// @Summary      Get product
// @Description  Returns one active product, combo images included
// @Tags         Product
// @Produce      json
// @Param        id path int true "product id"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [get]
func (c *ProductController) GetProduct() {
	id, ok := parseID(c.Ctx.Param("id"))
	if !ok {
		response.ParamError(c.Ctx, "invalid product id")
		return
	}

	product, err := c.service().GetProduct(c.Ctx.Request.Context(), id, true)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, product)
}

// 3. UpdateProduct 更新商品
// @Summary      Update product
// @Description  Replaces every editable field of a product. At most 5 images; combo products never store images.
// @Tags         Product
// @Accept       json
// @Produce      json
// @Param        request body UpdateProductRequest true "product fields"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /products [put]
// @Security     CookieAuth
func (c *ProductController) UpdateProduct() {
	var req UpdateProductRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	product, err := c.service().UpdateProduct(c.Ctx.Request.Context(), req.ID, req.ProductUpdateInput)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	middleware.PurgeCache(c.Ctx.Request.Context())
	response.Success(c.Ctx, product)
}
