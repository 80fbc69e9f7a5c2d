package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug          string    `gorm:"uniqueIndex;size:140" json:"slug"`
	Name          string    `gorm:"size:180" json:"name"`
	NameBN        string    `gorm:"size:180" json:"name_bn"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionBN string    `gorm:"type:text" json:"description_bn"`
	Price         float64   `gorm:"type:decimal(12,2)" json:"price"`
	SalePrice     *float64  `gorm:"type:decimal(12,2)" json:"sale_price"`
	Category      string    `gorm:"size:100;index" json:"category"`
	Active        bool      `gorm:"index" json:"active"`
	Featured      bool      `gorm:"default:false" json:"featured"`
	Images        []Image   `json:"images"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePrice es el precio de oferta cuando hay uno menor al de lista
func (p Product) EffectivePrice() float64 {
	return effectivePrice(p.Price, p.SalePrice)
}

func effectivePrice(price float64, sale *float64) float64 {
	if sale != nil && *sale > 0 && *sale < price {
		return *sale
	}
	return price
}

type Image struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	URL          string    `gorm:"size:255" json:"url"`
	Alt          string    `gorm:"size:140" json:"alt"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type FeaturedProduct struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"product_id"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductFilter struct {
	Query      string
	Category   string
	Sort       string
	Page       int
	PageSize   int
	ActiveOnly bool
}

// AttributeStats son los contadores de la página de edición del admin
type AttributeStats struct {
	Colors     int64 `json:"colors"`
	Sizes      int64 `json:"sizes"`
	Variations int64 `json:"variations"`
}
