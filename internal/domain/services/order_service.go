package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
)

// InterfaceOrderService 订单服务接口
type InterfaceOrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint, mode models.DeleteMode) error
	GetStats(ctx context.Context) (*models.OrderStats, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// CreateOrderInput 下单请求
type CreateOrderInput struct {
	CustomerName        string          `json:"customer_name"`
	Phone               string          `json:"phone"`
	City                string          `json:"city"`
	Address             string          `json:"address"`
	ProductID           uint            `json:"product_id"`
	ProductNameSnapshot string          `json:"product_name_snapshot"`
	PriceSnapshot       decimal.Decimal `json:"price_snapshot"`
}

// Validate 校验并清理下单字段
func (in *CreateOrderInput) Validate() error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.ProductNameSnapshot = strings.TrimSpace(in.ProductNameSnapshot)

	switch {
	case in.CustomerName == "":
		return invalidf("customer_name is required")
	case in.Phone == "":
		return invalidf("phone is required")
	case in.City == "":
		return invalidf("city is required")
	case in.Address == "":
		return invalidf("address is required")
	case in.ProductID == 0:
		return invalidf("product_id is required")
	case in.ProductNameSnapshot == "":
		return invalidf("product_name_snapshot is required")
	case in.PriceSnapshot.IsNegative():
		return invalidf("price_snapshot must not be negative")
	}
	return nil
}

// OrderService 提供订单相关的服务
type OrderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, cfg *config.Config) InterfaceOrderService {
	return &OrderService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateOrder 创建订单，初始状态为 pending
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:        input.CustomerName,
		Phone:               input.Phone,
		City:                input.City,
		Address:             input.Address,
		ProductID:           input.ProductID,
		ProductNameSnapshot: input.ProductNameSnapshot,
		PriceSnapshot:       input.PriceSnapshot,
		OrderStatus:         models.OrderStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// 2 ListOrders 按创建时间倒序查询订单，默认不含已删除订单
func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	page := filter.PaginationQuery.Normalize()

	query := s.DB.WithContext(ctx).Model(&models.Order{})
	if filter.DeletedOnly {
		query = query.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if phone := strings.TrimSpace(filter.Phone); phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, ErrInvalidOrderStatus
		}
		query = query.Where("order_status = ?", filter.Status)
	}

	orders := []models.Order{}
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// 3 UpdateOrderStatus 按状态机变更订单状态，相同状态直接返回
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("get order: %w", err)
		}

		if order.OrderStatus == status {
			return nil
		}
		if !order.OrderStatus.CanTransitionTo(status) {
			return &models.TransitionError{From: order.OrderStatus, To: status}
		}

		// 以旧状态为条件更新，防止并发请求跳过状态机
		result := tx.Model(&order).
			Where("order_status = ?", order.OrderStatus).
			Update("order_status", status)
		if result.Error != nil {
			return fmt.Errorf("update order status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &models.TransitionError{From: order.OrderStatus, To: status}
		}
		order.OrderStatus = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 4 DeleteOrder 软删除、恢复或永久删除订单
func (s *OrderService) DeleteOrder(ctx context.Context, id uint, mode models.DeleteMode) error {
	if mode == "" {
		mode = models.DeleteModeSoft
	}
	if !mode.Valid() {
		return ErrInvalidDeleteMode
	}

	db := s.DB.WithContext(ctx)

	var order models.Order
	if err := db.Unscoped().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("get order: %w", err)
	}

	var err error
	switch mode {
	case models.DeleteModeSoft:
		if order.DeletedAt.Valid {
			return nil
		}
		err = db.Delete(&order).Error
	case models.DeleteModeRestore:
		if !order.DeletedAt.Valid {
			return nil
		}
		err = db.Unscoped().Model(&order).Update("deleted_at", nil).Error
	case models.DeleteModePermanent:
		err = db.Unscoped().Delete(&order).Error
	}
	if err != nil {
		return fmt.Errorf("%s delete order: %w", mode, err)
	}
	return nil
}

// 5 GetStats 统计未删除订单的总数、各状态数量和各商品数量
func (s *OrderService) GetStats(ctx context.Context) (*models.OrderStats, error) {
	db := s.DB.WithContext(ctx)

	stats := &models.OrderStats{
		ByStatus:  make(map[models.OrderStatus]int64, len(models.OrderStatuses)),
		ByProduct: []models.ProductOrderCount{},
	}
	for _, status := range models.OrderStatuses {
		stats.ByStatus[status] = 0
	}

	var statusRows []struct {
		OrderStatus models.OrderStatus
		Count       int64
	}
	err := db.Model(&models.Order{}).
		Select("order_status, COUNT(*) AS count").
		Group("order_status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	for _, row := range statusRows {
		stats.ByStatus[row.OrderStatus] = row.Count
		stats.Total += row.Count
	}

	var productRows []struct {
		ProductID uint
		Count     int64
	}
	err = db.Model(&models.Order{}).
		Select("product_id, COUNT(*) AS count").
		Group("product_id").
		Order("count DESC").Order("product_id ASC").
		Scan(&productRows).Error
	if err != nil {
		return nil, fmt.Errorf("count orders by product: %w", err)
	}

	for _, row := range productRows {
		// 使用最近一笔订单的商品名快照
		var latest models.Order
		err := db.Where("product_id = ?", row.ProductID).
			Order("created_at DESC").Order("id DESC").
			First(&latest).Error
		if err != nil {
			return nil, fmt.Errorf("latest order for product %d: %w", row.ProductID, err)
		}
		stats.ByProduct = append(stats.ByProduct, models.ProductOrderCount{
			ProductID:   row.ProductID,
			ProductName: latest.ProductNameSnapshot,
			Count:       row.Count,
		})
	}
	return stats, nil
}

// 6 ListCustomers 按手机号聚合未删除订单，姓名和地址取最近一笔订单
func (s *OrderService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	byPhone := make(map[string]*models.Customer)
	customers := []*models.Customer{}
	for _, order := range orders {
		customer, ok := byPhone[order.Phone]
		if !ok {
			customer = &models.Customer{
				Name:          order.CustomerName,
				Phone:         order.Phone,
				City:          order.City,
				Address:       order.Address,
				TotalSpent:    decimal.Zero,
				LastOrderDate: order.CreatedAt,
			}
			byPhone[order.Phone] = customer
			customers = append(customers, customer)
		}
		customer.TotalOrders++
		customer.TotalSpent = customer.TotalSpent.Add(order.PriceSnapshot)
	}

	result := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, *c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastOrderDate.After(result[j].LastOrderDate)
	})
	return result, nil
}
