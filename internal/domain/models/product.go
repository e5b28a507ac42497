package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// 价格以数字形式输出，而不是字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductType 商品类型
type ProductType string

const (
	ProductTypeSingle ProductType = "single"
	ProductTypeCombo  ProductType = "combo"
)

// MaxProductImages 单个商品允许的最大图片数
const MaxProductImages = 5

// ProductImage 商品图片
type ProductImage struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UnmarshalJSON 兼容历史数据中的纯字符串URL
func (i *ProductImage) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*i = ProductImage{URL: url}
		return nil
	}

	type plain ProductImage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid product image: %w", err)
	}
	*i = ProductImage(p)
	return nil
}

// ProductImages 以JSON列存储的图片列表，读取时统一规范化为 {url, name}
type ProductImages []ProductImage

// UnmarshalJSON 解析并丢弃没有URL的条目
func (p *ProductImages) UnmarshalJSON(data []byte) error {
	var raw []ProductImage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	images := make(ProductImages, 0, len(raw))
	for _, img := range raw {
		img.URL = strings.TrimSpace(img.URL)
		if img.URL == "" {
			continue
		}
		images = append(images, img)
	}
	*p = images
	return nil
}

// MarshalJSON 空列表输出为 []
func (p ProductImages) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ProductImage(p))
}

// Scan 实现 sql.Scanner
func (p *ProductImages) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = ProductImages{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for product images: %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*p = ProductImages{}
		return nil
	}
	return p.UnmarshalJSON(data)
}

// Value 实现 driver.Valuer
func (p ProductImages) Value() (driver.Value, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Product represents a catalog entry
type Product struct {
	BaseModel
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	OriginalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"original_price"`
	OfferPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"offer_price"`
	Type           ProductType     `gorm:"type:varchar(20);not null;default:'single'" json:"type"` // Type: single, combo
	BottleQuantity int             `gorm:"not null;default:1" json:"bottle_quantity"`
	Description    string          `gorm:"type:text" json:"description"`
	Images         ProductImages   `gorm:"type:json" json:"images"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
}

// SynthesizeCombo 将所有单品的图片按列表顺序拼接，作为套餐商品的图片
// 不修改入参，也不写回数据库
func SynthesizeCombo(products []Product) []Product {
	comboImages := ProductImages{}
	for _, p := range products {
		if p.Type == ProductTypeSingle {
			comboImages = append(comboImages, p.Images...)
		}
	}

	result := make([]Product, len(products))
	for i, p := range products {
		if p.Type == ProductTypeCombo {
			images := make(ProductImages, len(comboImages))
			copy(images, comboImages)
			p.Images = images
		}
		result[i] = p
	}
	return result
}
