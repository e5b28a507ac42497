package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services/container"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/response"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// InterfaceOrderController 定义订单控制器接口
type InterfaceOrderController interface {
	GetOrders()
	CreateOrder()
	UpdateOrderStatus()
	DeleteOrder()
	GetStats()
	GetCustomers()
}

// OrderController 订单控制器
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建一个新的订单控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	ID          uint               `json:"id" binding:"required" example:"1"`
	OrderStatus models.OrderStatus `json:"order_status" binding:"required" example:"processing"`
}

// HandleOrderFunc 返回一个处理订单请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "getOrders":
			controller.GetOrders()
		case "createOrder":
			controller.CreateOrder()
		case "updateOrderStatus":
			controller.UpdateOrderStatus()
		case "deleteOrder":
			controller.DeleteOrder()
		case "getStats":
			controller.GetStats()
		case "getCustomers":
			controller.GetCustomers()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "unknown method", nil)
		}
	}
}

// IsPublicOrderLookup 只按手机号查询未删除订单时无需登录
func IsPublicOrderLookup(ctx *gin.Context) bool {
	_, deleted := ctx.GetQuery("deleted")
	return strings.TrimSpace(ctx.Query("phone")) != "" && !deleted
}

func (c *OrderController) service() services.InterfaceOrderService {
	return c.Container.GetService("order").(services.InterfaceOrderService)
}

// 1. GetOrders 查询订单
// @Summary      List orders
// @Description  Newest first. Looking up by phone alone is public (order tracking); every other query needs an admin session.
// @Tags         Order
// @Produce      json
// @Param        phone query string false "customer phone"
// @Param        status query string false "order status"
// @Param        deleted query bool false "only soft-deleted orders"
// @Param        limit query int false "page size, default 100, max 1000"
// @Param        offset query int false "offset"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /orders [get]
func (c *OrderController) GetOrders() {
	filter := models.OrderFilter{
		Phone:       c.Ctx.Query("phone"),
		Status:      models.OrderStatus(c.Ctx.Query("status")),
		DeletedOnly: c.Ctx.Query("deleted") == "true",
	}

	if err := c.Ctx.ShouldBindQuery(&filter.PaginationQuery); err != nil {
		response.ParamError(c.Ctx, "invalid pagination parameters")
		return
	}

	orders, err := c.service().ListOrders(c.Ctx.Request.Context(), filter)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, orders)
}

// 2. CreateOrder 下单
// @Summary      Place order
// @Description  Creates a pending order with the product name and price copied at order time
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body services.CreateOrderInput true "order"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /orders [post]
func (c *OrderController) CreateOrder() {
	var req services.CreateOrderInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	order, err := c.service().CreateOrder(c.Ctx.Request.Context(), req)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	Logger.Info("新订单 #%d: 商品=%d", order.ID, order.ProductID)
	response.Created(c.Ctx, gin.H{"id": order.ID})
}

// 3. UpdateOrderStatus 更新订单状态
// @Summary      Update order status
// @Description  Moves an order along the allowed status transitions. Re-applying the current status is a no-op.
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body UpdateOrderStatusRequest true "status change"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /orders [put]
// @Security     CookieAuth
func (c *OrderController) UpdateOrderStatus() {
	var req UpdateOrderStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request: "+err.Error(), nil)
		return
	}

	order, err := c.service().UpdateOrderStatus(c.Ctx.Request.Context(), req.ID, req.OrderStatus)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, order)
}

// 4. DeleteOrder 删除订单
// @Summary      Delete order
// @Description  action=soft (default) moves the order to trash, restore brings it back, permanent removes it
// @Tags         Order
// @Produce      json
// @Param        id query int true "order id"
// @Param        action query string false "soft, restore or permanent"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders [delete]
// @Security     CookieAuth
func (c *OrderController) DeleteOrder() {
	id, ok := parseID(c.Ctx.Query("id"))
	if !ok {
		response.ParamError(c.Ctx, "invalid order id")
		return
	}
	mode := models.DeleteMode(c.Ctx.DefaultQuery("action", string(models.DeleteModeSoft)))

	if err := c.service().DeleteOrder(c.Ctx.Request.Context(), id, mode); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	Logger.Info("订单 #%d 已执行 %s 删除操作", id, mode)
	response.Success(c.Ctx, gin.H{"id": id, "action": mode})
}

// 5. GetStats 订单统计
// @Summary      Order statistics
// @Description  Totals over orders that are not in trash
// @Tags         Order
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /orders/stats [get]
// @Security     CookieAuth
func (c *OrderController) GetStats() {
	stats, err := c.service().GetStats(c.Ctx.Request.Context())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// 6. GetCustomers 客户列表
// @Summary      List customers
// @Description  Customers derived from orders grouped by phone, most recent first
// @Tags         Order
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /orders/customers [get]
// @Security     CookieAuth
func (c *OrderController) GetCustomers() {
	customers, err := c.service().ListCustomers(c.Ctx.Request.Context())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"total":     len(customers),
		"customers": customers,
	})
}
