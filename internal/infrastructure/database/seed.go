package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/utils"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// Seed 写入初始数据：默认管理员、示例商品和站点设置
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := EnsureAdminExists(db, adminEmail, adminPassword); err != nil {
		return err
	}
	if err := ensureProductsExist(db); err != nil {
		return err
	}
	return ensureSettingsExist(db)
}

// EnsureAdminExists 确保系统中有管理员账户
func EnsureAdminExists(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}

	admin := models.Admin{
		Email:    utils.NormalizeEmail(email),
		Password: hashedPassword,
		Name:     "Super Admin",
		Role:     models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("创建默认管理员失败: %w", err)
	}

	Logger.Info("已创建默认管理员账户: %s", admin.Email)
	return nil
}

// DefaultProducts 初始商品目录
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			Name:           "Product A",
			OriginalPrice:  decimal.RequireFromString("39.99"),
			OfferPrice:     decimal.RequireFromString("29.99"),
			Type:           models.ProductTypeSingle,
			BottleQuantity: 1,
			Description:    "Premium quality Product A. Carefully crafted for everyday use with the finest ingredients.",
			Images:         models.ProductImages{},
			IsActive:       true,
		},
		{
			Name:           "Product B",
			OriginalPrice:  decimal.RequireFromString("49.99"),
			OfferPrice:     decimal.RequireFromString("39.99"),
			Type:           models.ProductTypeSingle,
			BottleQuantity: 1,
			Description:    "Premium quality Product B. A perfect companion to Product A for complete care.",
			Images:         models.ProductImages{},
			IsActive:       true,
		},
		{
			Name:           "Combo Product (A + B)",
			OriginalPrice:  decimal.RequireFromString("89.99"),
			OfferPrice:     decimal.RequireFromString("59.99"),
			Type:           models.ProductTypeCombo,
			BottleQuantity: 2,
			Description:    "Get both Product A and Product B together at a special combo price. Best value for complete care.",
			Images:         models.ProductImages{},
			IsActive:       true,
		},
	}
}

func ensureProductsExist(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := DefaultProducts()
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	Logger.Info("已写入 %d 个初始商品", len(products))
	return nil
}

func ensureSettingsExist(db *gorm.DB) error {
	var settings models.SiteSettings
	err := db.First(&settings, models.SettingsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load settings: %w", err)
	}

	settings = models.DefaultSiteSettings()
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
