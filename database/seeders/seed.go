package seeders

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/config"
)

func init() {
	Register("admin", SeedAdmin)
	Register("brands", SeedBrands)
	Register("products", SeedProducts)
	Register("coupons", SeedCoupons)
}

// SeedAdmin creates the bootstrap admin account. Idempotent.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@aranya.test")

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(config.Get("ADMIN_PASSWORD", "changeme123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Store Admin",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}).Error
}

// SeedBrands inserts the starter brand set.
func SeedBrands(db *gorm.DB) error {
	brands := []models.Brand{
		{Name: "Aranya Originals", Slug: "aranya-originals", IsActive: true},
		{Name: "Banarasi House", Slug: "banarasi-house", IsActive: true},
		{Name: "Kanchi Weaves", Slug: "kanchi-weaves", IsActive: true},
	}
	for i := range brands {
		var count int64
		if err := db.Model(&models.Brand{}).Where("slug = ?", brands[i].Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&brands[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts demo catalog entries with variants and images.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var brand models.Brand
	if err := db.Where("slug = ?", "banarasi-house").First(&brand).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:           "Banarasi Silk Saree",
			Slug:           "banarasi-silk-saree",
			Description:    "Handwoven Banarasi silk with zari border.",
			Price:          5499,
			CompareAtPrice: 6999,
			Category:       "sarees",
			Subcategory:    "silk",
			BrandID:        &brand.ID,
			Stock:          25,
			IsFeatured:     true,
			IsActive:       true,
			CommissionRate: 10,
			Images: []models.ProductImage{
				{URL: "https://cdn.aranya.test/sarees/banarasi-1.jpg", IsPrimary: true},
				{URL: "https://cdn.aranya.test/sarees/banarasi-2.jpg", Position: 1},
			},
			Variants: []models.ProductVariant{
				{SKU: "BSS-RED", Color: "Red", Stock: 10},
				{SKU: "BSS-GOLD", Color: "Gold", PriceModifier: 500, Stock: 15},
			},
		},
		{
			Name:           "Cotton Chanderi Kurta",
			Slug:           "cotton-chanderi-kurta",
			Description:    "Lightweight Chanderi cotton kurta for daily wear.",
			Price:          1299,
			Category:       "kurtas",
			Subcategory:    "cotton",
			Stock:          60,
			IsActive:       true,
			CommissionRate: 8,
			Images: []models.ProductImage{
				{URL: "https://cdn.aranya.test/kurtas/chanderi-1.jpg", IsPrimary: true},
			},
			Variants: []models.ProductVariant{
				{SKU: "CCK-S", Size: "S", Stock: 20},
				{SKU: "CCK-M", Size: "M", Stock: 20},
				{SKU: "CCK-L", Size: "L", Stock: 20},
			},
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCoupons inserts a welcome coupon. Idempotent.
func SeedCoupons(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Coupon{}).Where("code = ?", "WELCOME10").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	expires := time.Now().AddDate(1, 0, 0)
	return db.Create(&models.Coupon{
		Code:           "WELCOME10",
		Description:    "10% off your first order",
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  10,
		MinOrderAmount: 999,
		MaxDiscount:    500,
		UsageLimit:     1000,
		ExpiresAt:      &expires,
		IsActive:       true,
	}).Error
}
