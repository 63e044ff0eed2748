package models

import "gorm.io/gorm"

// Brand groups products under a manufacturer label.
type Brand struct {
	gorm.Model
	Name     string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Slug     string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	LogoURL  string `gorm:"size:500" json:"logo_url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Product is a catalogue entry. Prices are in rupees; the payment layer
// converts to paise when talking to the gateway.
type Product struct {
	gorm.Model
	Name              string  `gorm:"size:255;not null;index" json:"name"`
	Slug              string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description       string  `gorm:"type:text" json:"description"`
	Price             float64 `gorm:"not null;default:0" json:"price"`
	CompareAtPrice    float64 `gorm:"default:0" json:"compare_at_price"`
	Category          string  `gorm:"size:100;index" json:"category"`
	Subcategory       string  `gorm:"size:100" json:"subcategory"`
	BrandID           *uint   `gorm:"index" json:"brand_id,omitempty"`
	Stock             int     `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int     `gorm:"default:5" json:"low_stock_threshold"`
	IsFeatured        bool    `gorm:"default:false;index" json:"is_featured"`
	IsActive          bool    `gorm:"default:true;index" json:"is_active"`
	// Per-product override of the affiliate commission rate, percent.
	// Zero means the affiliate's own rate applies.
	CommissionRate float64 `gorm:"default:0" json:"commission_rate"`

	Brand    *Brand           `json:"brand,omitempty"`
	Images   []ProductImage   `json:"images,omitempty"`
	Variants []ProductVariant `json:"variants,omitempty"`
}

// EffectivePrice resolves the unit price for an optional variant.
func (p *Product) EffectivePrice(v *ProductVariant) float64 {
	if v == nil {
		return p.Price
	}
	return p.Price + v.PriceModifier
}

// ProductImage is an ordered gallery image; exactly one per product
// should be primary.
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	AltText   string `gorm:"size:255" json:"alt_text"`
	Position  int    `gorm:"default:0" json:"position"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
}

// ProductVariant is a size/colour combination with its own SKU and stock.
// PriceModifier is added to the product base price.
type ProductVariant struct {
	gorm.Model
	ProductID     uint    `gorm:"not null;index" json:"product_id"`
	SKU           string  `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Size          string  `gorm:"size:50" json:"size"`
	Color         string  `gorm:"size:50" json:"color"`
	PriceModifier float64 `gorm:"default:0" json:"price_modifier"`
	Stock         int     `gorm:"not null;default:0" json:"stock"`
}
