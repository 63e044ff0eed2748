package migrations

import (
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/migration"
	"github.com/aranya-labs/aranya/pkg/queue"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_cart_tables", &CreateCartTables{})
	migration.Register("20260101000003_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000004_create_coupons_table", &CreateCouponsTable{})
	migration.Register("20260101000005_create_affiliates_table", &CreateAffiliatesTable{})
	migration.Register("20260101000006_create_content_tables", &CreateContentTables{})
	migration.Register("20260101000007_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- users, addresses, reset tokens --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Address{}, &models.PasswordResetToken{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("password_reset_tokens", "addresses", "users")
}

// -------- brands, products, images, variants --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
	)
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_variants", "product_images", "products", "brands")
}

// -------- cart, wishlist, abandoned-cart log --------

type CreateCartTables struct{}

func (m *CreateCartTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CartItem{},
		&models.WishlistItem{},
		&models.AbandonedCartEmail{},
	)
}

func (m *CreateCartTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("abandoned_cart_emails", "wishlist_items", "cart_items")
}

// -------- orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- coupons --------

type CreateCouponsTable struct{}

func (m *CreateCouponsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Coupon{})
}

func (m *CreateCouponsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("coupons")
}

// -------- affiliates --------

type CreateAffiliatesTable struct{}

func (m *CreateAffiliatesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Affiliate{}, &models.AffiliateClick{})
}

func (m *CreateAffiliatesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("affiliate_clicks", "affiliates")
}

// -------- blog posts, announcements --------

type CreateContentTables struct{}

func (m *CreateContentTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Blog{}, &models.Announcement{})
}

func (m *CreateContentTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("announcements", "blogs")
}

// -------- queue dead letters --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
