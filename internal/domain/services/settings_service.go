package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	Logger "github.com/hellosarowarhn-boop/ecomm/pkg/logger"
)

// InterfaceSettingsService 站点设置服务接口
type InterfaceSettingsService interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSettings(ctx context.Context, input SettingsUpdateInput) (*models.SiteSettings, error)
}

// SettingsSnapshotWriter 设置更新后写出静态快照
type SettingsSnapshotWriter interface {
	WriteSettings(settings *models.SiteSettings) error
}

// SettingsUpdateInput 站点设置全量更新字段
type SettingsUpdateInput struct {
	SiteName          string       `json:"site_name"`
	SiteLogo          string       `json:"site_logo"`
	Favicon           string       `json:"favicon"`
	FooterLogo        string       `json:"footer_logo"`
	HeroTitle         string       `json:"hero_title"`
	HeroDescription   string       `json:"hero_description"`
	HeroButtonText    string       `json:"hero_button_text"`
	ProductButtonText string       `json:"product_button_text"`
	ComboButtonText   string       `json:"combo_button_text"`
	ContactPhone      string       `json:"contact_phone"`
	ContactEmail      string       `json:"contact_email"`
	ContactAddress    string       `json:"contact_address"`
	HeroImages        []string     `json:"hero_images"`
	FAQs              []models.FAQ `json:"faqs"`
}

// SettingsService 提供站点设置相关的服务
type SettingsService struct {
	DB        *gorm.DB
	Config    *config.Config
	Snapshots SettingsSnapshotWriter
}

// NewSettingsService 创建站点设置服务，snapshots 可以为 nil
func NewSettingsService(db *gorm.DB, cfg *config.Config, snapshots SettingsSnapshotWriter) InterfaceSettingsService {
	return &SettingsService{
		DB:        db,
		Config:    cfg,
		Snapshots: snapshots,
	}
}

// 1 GetSettings 读取设置，不存在时写入默认值
func (s *SettingsService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	db := s.DB.WithContext(ctx)

	var settings models.SiteSettings
	err := db.First(&settings, models.SettingsID).Error
	if err == nil {
		settings.ApplyDefaults()
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings = models.DefaultSiteSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return &settings, nil
}

// 2 UpdateSettings 全量替换设置并尽力写出静态快照
func (s *SettingsService) UpdateSettings(ctx context.Context, input SettingsUpdateInput) (*models.SiteSettings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := models.SiteSettings{
		BaseModel:         models.BaseModel{ID: models.SettingsID, CreatedAt: current.CreatedAt},
		SiteName:          strings.TrimSpace(input.SiteName),
		SiteLogo:          strings.TrimSpace(input.SiteLogo),
		Favicon:           strings.TrimSpace(input.Favicon),
		FooterLogo:        strings.TrimSpace(input.FooterLogo),
		HeroTitle:         input.HeroTitle,
		HeroDescription:   input.HeroDescription,
		HeroButtonText:    strings.TrimSpace(input.HeroButtonText),
		ProductButtonText: strings.TrimSpace(input.ProductButtonText),
		ComboButtonText:   strings.TrimSpace(input.ComboButtonText),
		ContactPhone:      strings.TrimSpace(input.ContactPhone),
		ContactEmail:      strings.TrimSpace(input.ContactEmail),
		ContactAddress:    input.ContactAddress,
		HeroImages:        input.HeroImages,
		FAQs:              input.FAQs,
	}
	settings.ApplyDefaults()

	if err := s.DB.WithContext(ctx).Save(&settings).Error; err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	if s.Snapshots != nil {
		if err := s.Snapshots.WriteSettings(&settings); err != nil {
			Logger.Warning("写出设置快照失败: %v", err)
		}
	}
	return &settings, nil
}
