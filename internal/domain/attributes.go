package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SizeScale string

const (
	ScaleClothing SizeScale = "clothing"
	ScaleShoes    SizeScale = "shoes"
	ScaleAge      SizeScale = "age"
	ScaleCustom   SizeScale = "custom"
)

func (s SizeScale) Valid() bool {
	switch s {
	case ScaleClothing, ScaleShoes, ScaleAge, ScaleCustom:
		return true
	}
	return false
}

// CommonSizes returns the preset size names offered for a scale.
func CommonSizes(s SizeScale) []string {
	switch s {
	case ScaleClothing:
		return []string{"XS", "S", "M", "L", "XL", "XXL"}
	case ScaleShoes:
		return []string{"5", "6", "7", "8", "9", "10", "11"}
	case ScaleAge:
		return []string{"Newborn", "0-3M", "3-6M", "6-12M", "12-18M", "18-24M"}
	}
	return nil
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaTypeFor classifies an upload by its content type.
func MediaTypeFor(contentType string) MediaType {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return MediaVideo
	}
	return MediaImage
}

const (
	DefaultHex      = "#000000"
	UnnamedColor    = "Unnamed Color"
	UnnamedSize     = "Unnamed Size"
	lowStockCeiling = 5
)

var hexRe = regexp.MustCompile(`(?i)^#([0-9a-f]{3}){1,2}$`)

// ValidHex accepts #RGB and #RRGGBB, any case.
func ValidHex(s string) bool {
	return hexRe.MatchString(s)
}

// CoerceHex is the store-level fallback for values that slipped past validation.
func CoerceHex(s string) string {
	s = strings.TrimSpace(s)
	if !ValidHex(s) {
		return DefaultHex
	}
	return s
}

type Color struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name         string    `gorm:"size:80;not null" json:"name"`
	HexCode      string    `gorm:"size:7;not null" json:"hex_code"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Color) TableName() string { return "product_colors" }

type Size struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name         string    `gorm:"size:80;not null" json:"name"`
	Scale        SizeScale `gorm:"type:varchar(20);not null" json:"scale"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Size) TableName() string { return "product_sizes" }

// Variation is one sellable combination. Nil ColorID or SizeID means the
// product has no such dimension.
type Variation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID        `gorm:"type:uuid;index" json:"product_id"`
	ColorID      *uuid.UUID       `gorm:"type:uuid;index" json:"color_id"`
	SizeID       *uuid.UUID       `gorm:"type:uuid;index" json:"size_id"`
	SKU          *string          `gorm:"size:120" json:"sku"`
	Price        float64          `gorm:"type:decimal(12,2);not null" json:"price"`
	SalePrice    *float64         `gorm:"type:decimal(12,2)" json:"sale_price"`
	Stock        int              `gorm:"not null;default:0" json:"stock"`
	IsDefault    bool             `gorm:"not null;default:false" json:"is_default"`
	DisplayOrder int              `gorm:"not null;default:0" json:"display_order"`
	Images       []VariationImage `gorm:"foreignKey:VariationID" json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Variation) TableName() string { return "product_variations" }

func (v Variation) EffectivePrice() float64 {
	return effectivePrice(v.Price, v.SalePrice)
}

func (v Variation) InStock() bool  { return v.Stock > 0 }
func (v Variation) LowStock() bool { return v.Stock > 0 && v.Stock <= lowStockCeiling }

type VariationImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VariationID  uuid.UUID `gorm:"type:uuid;index" json:"variation_id"`
	ImageURL     string    `gorm:"size:500;not null" json:"image_url"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
	MediaType    MediaType `gorm:"type:varchar(10);not null;default:'image'" json:"media_type"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (VariationImage) TableName() string { return "product_variation_images" }

type ColorInput struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

// Normalized applies the last-resort defaults for an empty name or bad hex.
func (c ColorInput) Normalized() ColorInput {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = UnnamedColor
	}
	return ColorInput{Name: name, HexCode: CoerceHex(c.HexCode)}
}

type SizeInput struct {
	Name  string    `json:"name"`
	Scale SizeScale `json:"scale"`
}

func (s SizeInput) Normalized() SizeInput {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = UnnamedSize
	}
	scale := SizeScale(strings.TrimSpace(string(s.Scale)))
	if scale == "" {
		scale = ScaleCustom
	}
	return SizeInput{Name: name, Scale: scale}
}

// ProductAttributes is the full persisted attribute graph of one product.
type ProductAttributes struct {
	Colors     []Color     `json:"colors"`
	Sizes      []Size      `json:"sizes"`
	Variations []Variation `json:"variations"`
}
