package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

func newOrderInput(phone string, productID uint, productName, price string) CreateOrderInput {
	return CreateOrderInput{
		CustomerName:        "Karim",
		Phone:               phone,
		City:                "Dhaka",
		Address:             "House 1, Road 2",
		ProductID:           productID,
		ProductNameSnapshot: productName,
		PriceSnapshot:       decimal.RequireFromString(price),
	}
}

func TestCreateOrder(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)

	input := newOrderInput(" 01711111111 ", 1, "Product A", "29.99")
	input.CustomerName = "  Karim "
	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, "Karim", order.CustomerName)
	assert.Equal(t, "01711111111", order.Phone)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
}

func TestCreateOrderValidation(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)

	tests := []struct {
		name   string
		mutate func(in *CreateOrderInput)
	}{
		{"name", func(in *CreateOrderInput) { in.CustomerName = " " }},
		{"phone", func(in *CreateOrderInput) { in.Phone = "" }},
		{"city", func(in *CreateOrderInput) { in.City = "" }},
		{"address", func(in *CreateOrderInput) { in.Address = "" }},
		{"product", func(in *CreateOrderInput) { in.ProductID = 0 }},
		{"snapshot", func(in *CreateOrderInput) { in.ProductNameSnapshot = "" }},
		{"negative price", func(in *CreateOrderInput) { in.PriceSnapshot = decimal.NewFromInt(-5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := newOrderInput("017", 1, "A", "10")
			tt.mutate(&input)
			_, err := svc.CreateOrder(context.Background(), input)

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestListOrdersFilters(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "A", "10"))
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, newOrderInput("0172", 2, "B", "20"))
	require.NoError(t, err)
	third, err := svc.CreateOrder(ctx, newOrderInput("0171", 2, "B", "20"))
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, []uint{orders[0].ID, orders[1].ID, orders[2].ID})

	orders, err = svc.ListOrders(ctx, models.OrderFilter{Phone: "0171"})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = svc.UpdateOrderStatus(ctx, second.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	orders, err = svc.ListOrders(ctx, models.OrderFilter{Status: models.OrderStatusProcessing})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	orders, err = svc.ListOrders(ctx, models.OrderFilter{PaginationQuery: models.PaginationQuery{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	_, err = svc.ListOrders(ctx, models.OrderFilter{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestListOrdersEmpty(t *testing.T) {
	db, cfg := newTestDB(t)
	orders, err := NewOrderService(db, cfg).ListOrders(context.Background(), models.OrderFilter{Phone: "none"})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestUpdateOrderStatusStateMachine(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "A", "10"))
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{
		models.OrderStatusWaiting,
		models.OrderStatusProcessing,
		models.OrderStatusDeliveredToCourier,
		models.OrderStatusComplete,
	} {
		updated, err := svc.UpdateOrderStatus(ctx, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.OrderStatus)
	}

	// 终态不能再变更
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPending)
	var transitionErr *models.TransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, models.OrderStatusComplete, transitionErr.From)
	assert.Equal(t, models.OrderStatusPending, transitionErr.To)

	// 相同状态视为成功
	updated, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusComplete)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusComplete, updated.OrderStatus)
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "A", "10"))
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusComplete)
	var transitionErr *models.TransitionError
	assert.True(t, errors.As(err, &transitionErr))

	_, err = svc.UpdateOrderStatus(ctx, 999, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModeSoft))
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderModes(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "A", "10"))
	require.NoError(t, err)

	// 默认为软删除，重复执行无副作用
	require.NoError(t, svc.DeleteOrder(ctx, order.ID, ""))
	require.NoError(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModeSoft))

	active, err := svc.ListOrders(ctx, models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := svc.ListOrders(ctx, models.OrderFilter{DeletedOnly: true})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].DeletedAt.Valid)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModeRestore))
	require.NoError(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModeRestore))

	active, err = svc.ListOrders(ctx, models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.False(t, active[0].DeletedAt.Valid)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModePermanent))
	assert.ErrorIs(t, svc.DeleteOrder(ctx, order.ID, models.DeleteModeSoft), ErrOrderNotFound)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.DeleteOrder(ctx, 1, "archive"), ErrInvalidDeleteMode)
}

func TestGetStats(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "Product A", "10"))
	require.NoError(t, err)
	b1, err := svc.CreateOrder(ctx, newOrderInput("0172", 2, "Product B", "20"))
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, newOrderInput("0173", 2, "Product B v2", "20"))
	require.NoError(t, err)
	gone, err := svc.CreateOrder(ctx, newOrderInput("0174", 1, "Product A", "10"))
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, b1.ID, models.OrderStatusCanceled)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOrder(ctx, gone.ID, models.DeleteModeSoft))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[models.OrderStatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[models.OrderStatusCanceled])
	assert.Equal(t, int64(0), stats.ByStatus[models.OrderStatusComplete])
	assert.Len(t, stats.ByStatus, len(models.OrderStatuses))

	require.Len(t, stats.ByProduct, 2)
	assert.Equal(t, models.ProductOrderCount{ProductID: 2, ProductName: "Product B v2", Count: 2}, stats.ByProduct[0])
	assert.Equal(t, models.ProductOrderCount{ProductID: 1, ProductName: "Product A", Count: 1}, stats.ByProduct[1])
}

func TestListCustomers(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewOrderService(db, cfg)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, newOrderInput("0171", 1, "A", "29.99"))
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, newOrderInput("0172", 2, "B", "39.99"))
	require.NoError(t, err)

	latest := newOrderInput("0171", 3, "Combo", "59.99")
	latest.CustomerName = "Karim Uddin"
	latest.City = "Chattogram"
	_, err = svc.CreateOrder(ctx, latest)
	require.NoError(t, err)

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	first := customers[0]
	assert.Equal(t, "0171", first.Phone)
	assert.Equal(t, "Karim Uddin", first.Name)
	assert.Equal(t, "Chattogram", first.City)
	assert.Equal(t, 2, first.TotalOrders)
	assert.Equal(t, "89.98", first.TotalSpent.StringFixed(2))

	assert.Equal(t, "0172", customers[1].Phone)
	assert.Equal(t, 1, customers[1].TotalOrders)
}
