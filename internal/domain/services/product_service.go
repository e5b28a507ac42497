package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
)

// InterfaceProductService 商品服务接口
type InterfaceProductService interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint, public bool) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, input ProductUpdateInput) (*models.Product, error)
}

// ProductUpdateInput 商品全量更新字段
type ProductUpdateInput struct {
	Name           string               `json:"name"`
	OriginalPrice  decimal.Decimal      `json:"original_price"`
	OfferPrice     decimal.Decimal      `json:"offer_price"`
	BottleQuantity int                  `json:"bottle_quantity"`
	Description    string               `json:"description"`
	Images         models.ProductImages `json:"images"`
	IsActive       bool                 `json:"is_active"`
}

// Validate 校验更新字段
func (in *ProductUpdateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalidf("name is required")
	}
	if in.OriginalPrice.IsNegative() || in.OfferPrice.IsNegative() {
		return invalidf("prices must not be negative")
	}
	if in.BottleQuantity < 1 {
		return invalidf("bottle_quantity must be at least 1")
	}
	if len(in.Images) > models.MaxProductImages {
		return ErrTooManyImages
	}
	return nil
}

// ProductService 提供商品相关的服务
type ProductService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProductService 创建商品服务
func NewProductService(db *gorm.DB, cfg *config.Config) InterfaceProductService {
	return &ProductService{
		DB:     db,
		Config: cfg,
	}
}

// 1 ListProducts 按ID顺序返回商品，activeOnly 时只返回上架商品并生成套餐图片
func (s *ProductService) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var products []models.Product

	query := s.DB.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if activeOnly {
		return models.SynthesizeCombo(products), nil
	}
	return products, nil
}

// 2 GetProduct 获取单个商品，public 时下架商品视为不存在
func (s *ProductService) GetProduct(ctx context.Context, id uint, public bool) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if !public {
		return &product, nil
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	if product.Type != models.ProductTypeCombo {
		return &product, nil
	}

	// 套餐图片依赖全部上架单品
	products, err := s.ListProducts(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == product.ID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// 3 UpdateProduct 全量更新商品字段，套餐商品不保存图片
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input ProductUpdateInput) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var product models.Product
	db := s.DB.WithContext(ctx)
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	images := input.Images
	if images == nil || product.Type == models.ProductTypeCombo {
		images = models.ProductImages{}
	}

	product.Name = input.Name
	product.OriginalPrice = input.OriginalPrice
	product.OfferPrice = input.OfferPrice
	product.BottleQuantity = input.BottleQuantity
	product.Description = input.Description
	product.Images = images
	product.IsActive = input.IsActive

	err := db.Model(&product).
		Select("name", "original_price", "offer_price", "bottle_quantity", "description", "images", "is_active", "updated_at").
		Updates(&product).Error
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}
