package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "pending"
	OrderStatusProcessing         OrderStatus = "processing"
	OrderStatusDeliveredToCourier OrderStatus = "delivered_to_courier"
	OrderStatusComplete           OrderStatus = "complete"
	OrderStatusWaiting            OrderStatus = "waiting"
	OrderStatusCanceled           OrderStatus = "canceled"
)

// OrderStatuses 界面展示顺序
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusDeliveredToCourier,
	OrderStatusComplete,
	OrderStatusWaiting,
	OrderStatusCanceled,
}

// 允许的状态流转，complete 和 canceled 为终态
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:            {OrderStatusProcessing, OrderStatusWaiting, OrderStatusCanceled},
	OrderStatusWaiting:            {OrderStatusPending, OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusProcessing:         {OrderStatusDeliveredToCourier, OrderStatusWaiting, OrderStatusCanceled},
	OrderStatusDeliveredToCourier: {OrderStatusComplete, OrderStatusCanceled},
	OrderStatusComplete:           {},
	OrderStatusCanceled:           {},
}

// Valid 判断状态值是否合法
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo 判断能否从当前状态变更为 next，相同状态视为允许
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionError 非法的状态变更
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}

// Order represents a customer order. Product name and price are copied at creation time.
type Order struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	CustomerName        string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone               string          `gorm:"type:varchar(20);not null;index" json:"phone"`
	City                string          `gorm:"type:varchar(100);not null" json:"city"`
	Address             string          `gorm:"type:text;not null" json:"address"`
	ProductID           uint            `gorm:"not null" json:"product_id"` // 弱引用，不建外键
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	PriceSnapshot       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_snapshot"`
	OrderStatus         OrderStatus     `gorm:"type:varchar(30);not null;default:'pending';index" json:"order_status"`
	CreatedAt           time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

// DeleteMode 订单删除方式
type DeleteMode string

const (
	DeleteModeSoft      DeleteMode = "soft"
	DeleteModeRestore   DeleteMode = "restore"
	DeleteModePermanent DeleteMode = "permanent"
)

// Valid 判断删除方式是否合法
func (m DeleteMode) Valid() bool {
	return m == DeleteModeSoft || m == DeleteModeRestore || m == DeleteModePermanent
}

// OrderFilter 订单查询条件
type OrderFilter struct {
	Phone       string
	Status      OrderStatus
	DeletedOnly bool
	PaginationQuery
}

// ProductOrderCount 按商品统计的订单数
type ProductOrderCount struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Count       int64  `json:"count"`
}

// OrderStats 后台首页统计
type OrderStats struct {
	Total     int64                 `json:"total"`
	ByStatus  map[OrderStatus]int64 `json:"by_status"`
	ByProduct []ProductOrderCount   `json:"by_product"`
}

// Customer 由订单按手机号聚合得到的客户信息
type Customer struct {
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	TotalOrders   int             `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate time.Time       `json:"last_order_date"`
}
