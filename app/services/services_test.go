package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/database"
)

// setupDB points the global connection at in-memory sqlite, migrates the
// schema and wipes any rows left over from an earlier test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.PasswordResetToken{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.AbandonedCartEmail{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.Affiliate{},
		&models.AffiliateClick{},
		&models.Blog{},
		&models.Announcement{},
	))

	// child tables before parents, the FK pragma is on
	for _, table := range []string{
		"order_items", "orders", "cart_items", "wishlist_items",
		"abandoned_cart_emails", "affiliate_clicks", "affiliates",
		"product_variants", "product_images", "products", "brands",
		"coupons", "password_reset_tokens", "addresses", "blogs",
		"announcements", "users",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "$2a$10$irrelevant",
		Role:     models.RoleCustomer,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:     name,
		Slug:     name,
		Price:    price,
		Category: "sarees",
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	a := models.Address{
		UserID:  userID,
		Kind:    models.AddressShipping,
		Name:    "Test User",
		Phone:   "9999999999",
		Line1:   "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
		Country: "India",
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uint, qty int) models.CartItem {
	t.Helper()
	it := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	require.NoError(t, db.Create(&it).Error)
	return it
}
