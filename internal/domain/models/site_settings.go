package models

// SettingsID 站点设置为单行表
const SettingsID uint = 1

// 站点设置默认值
const (
	DefaultSiteName          = "E-Commerce Store"
	DefaultHeroTitle         = "Elevate Your Everyday."
	DefaultHeroDescription   = "Discover our premium collection."
	DefaultHeroButtonText    = "Shop Now"
	DefaultProductButtonText = "Order Now"
	DefaultComboButtonText   = "Get This Combo Deal"
	DefaultWorkingHours      = "Saturday - Thursday: 9:00 AM - 9:00 PM"
)

// FAQ 常见问题
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SiteSettings holds storefront branding, hero carousel, FAQ and contact info
type SiteSettings struct {
	BaseModel
	SiteName          string   `gorm:"type:varchar(255)" json:"site_name"`
	SiteLogo          string   `gorm:"type:varchar(500)" json:"site_logo"`
	Favicon           string   `gorm:"type:varchar(500)" json:"favicon"`
	FooterLogo        string   `gorm:"type:varchar(500)" json:"footer_logo"`
	HeroTitle         string   `gorm:"type:varchar(255)" json:"hero_title"`
	HeroDescription   string   `gorm:"type:text" json:"hero_description"`
	HeroButtonText    string   `gorm:"type:varchar(100)" json:"hero_button_text"`
	ProductButtonText string   `gorm:"type:varchar(100)" json:"product_button_text"`
	ComboButtonText   string   `gorm:"type:varchar(100)" json:"combo_button_text"`
	ContactPhone      string   `gorm:"type:varchar(100)" json:"contact_phone"`
	ContactEmail      string   `gorm:"type:varchar(100)" json:"contact_email"`
	ContactAddress    string   `gorm:"type:text" json:"contact_address"`
	HeroImages        []string `gorm:"type:json;serializer:json" json:"hero_images"`
	FAQs              []FAQ    `gorm:"column:faqs;type:json;serializer:json" json:"faqs"`
}

// TableName 指定表名
func (SiteSettings) TableName() string {
	return "site_settings"
}

// DefaultSiteSettings 首次读取时写入的默认设置
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		BaseModel:         BaseModel{ID: SettingsID},
		SiteName:          DefaultSiteName,
		HeroTitle:         DefaultHeroTitle,
		HeroDescription:   DefaultHeroDescription,
		HeroButtonText:    DefaultHeroButtonText,
		ProductButtonText: DefaultProductButtonText,
		ComboButtonText:   DefaultComboButtonText,
		HeroImages:        []string{},
		FAQs:              []FAQ{},
	}
}

// ApplyDefaults 按钮文案为空时回退到默认值，列表为空时置为空数组
func (s *SiteSettings) ApplyDefaults() {
	if s.HeroButtonText == "" {
		s.HeroButtonText = DefaultHeroButtonText
	}
	if s.ProductButtonText == "" {
		s.ProductButtonText = DefaultProductButtonText
	}
	if s.ComboButtonText == "" {
		s.ComboButtonText = DefaultComboButtonText
	}
	if s.HeroImages == nil {
		s.HeroImages = []string{}
	}
	if s.FAQs == nil {
		s.FAQs = []FAQ{}
	}
}

// PublicSettings settings.json 的内容
type PublicSettings struct {
	SiteName          string   `json:"site_name"`
	SiteLogo          string   `json:"site_logo"`
	Favicon           string   `json:"favicon"`
	FooterLogo        string   `json:"footer_logo"`
	HeroTitle         string   `json:"hero_title"`
	HeroDescription   string   `json:"hero_description"`
	HeroButtonText    string   `json:"hero_button_text"`
	ProductButtonText string   `json:"product_button_text"`
	ComboButtonText   string   `json:"combo_button_text"`
	HeroImages        []string `json:"hero_images"`
	FAQs              []FAQ    `json:"faqs"`
	ContactPhone      string   `json:"contact_phone"`
	ContactEmail      string   `json:"contact_email"`
	ContactAddress    string   `json:"contact_address"`
}

// ContactInfo contact.json 的内容
type ContactInfo struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	WorkingHours string `json:"working_hours"`
}

// Public 生成公开快照
func (s *SiteSettings) Public() PublicSettings {
	return PublicSettings{
		SiteName:          s.SiteName,
		SiteLogo:          s.SiteLogo,
		Favicon:           s.Favicon,
		FooterLogo:        s.FooterLogo,
		HeroTitle:         s.HeroTitle,
		HeroDescription:   s.HeroDescription,
		HeroButtonText:    s.HeroButtonText,
		ProductButtonText: s.ProductButtonText,
		ComboButtonText:   s.ComboButtonText,
		HeroImages:        s.HeroImages,
		FAQs:              s.FAQs,
		ContactPhone:      s.ContactPhone,
		ContactEmail:      s.ContactEmail,
		ContactAddress:    s.ContactAddress,
	}
}

// Contact 生成联系方式快照
func (s *SiteSettings) Contact() ContactInfo {
	return ContactInfo{
		Phone:        s.ContactPhone,
		Email:        s.ContactEmail,
		Address:      s.ContactAddress,
		WorkingHours: DefaultWorkingHours,
	}
}
