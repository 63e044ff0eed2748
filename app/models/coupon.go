package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a discount code. UsedCount is only ever advanced through a
// conditional UPDATE guarded by the usage limit, never read-then-write.
type Coupon struct {
	gorm.Model
	Code           string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description    string     `gorm:"size:255" json:"description"`
	DiscountType   string     `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue  float64    `gorm:"not null" json:"discount_value"`
	MinOrderAmount float64    `gorm:"default:0" json:"min_order_amount"`
	MaxDiscount    float64    `gorm:"default:0" json:"max_discount"` // 0 = uncapped
	UsageLimit     int        `gorm:"default:0" json:"usage_limit"`  // 0 = unlimited
	UsedCount      int        `gorm:"default:0" json:"used_count"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
}

// DiscountFor computes the discount this coupon grants on subtotal.
// Validity (window, usage, minimum) is checked separately.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	var d float64
	switch c.DiscountType {
	case DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
	case DiscountFixed:
		d = c.DiscountValue
	}
	if c.MaxDiscount > 0 && d > c.MaxDiscount {
		d = c.MaxDiscount
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
