package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line in a user's cart. A user has at most one row per
// product+variant pair; adding the same pair again merges quantities.
type CartItem struct {
	gorm.Model
	UserID    uint  `gorm:"not null;uniqueIndex:idx_cart_user_product_variant" json:"user_id"`
	ProductID uint  `gorm:"not null;uniqueIndex:idx_cart_user_product_variant" json:"product_id"`
	VariantID *uint `gorm:"uniqueIndex:idx_cart_user_product_variant" json:"variant_id,omitempty"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`

	Product *Product        `json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// WishlistItem is a saved product, one row per user+product.
type WishlistItem struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`

	Product *Product `json:"product,omitempty"`
}

// AbandonedCartEmail records a reminder already sent for a user's stale
// cart so the hourly scan never mails the same tier twice.
type AbandonedCartEmail struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:idx_abandoned_user_tier" json:"user_id"`
	Tier   int       `gorm:"not null;uniqueIndex:idx_abandoned_user_tier" json:"tier"`
	SentAt time.Time `gorm:"not null" json:"sent_at"`
}
