package repositories

import (
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Category string
	Brand    uint
	Search   string
	Featured bool
	Page     int
	PerPage  int
}

// ProductRepository handles database operations for the catalogue:
// products, variants, images and brands.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) base() *orm.Query {
	return orm.DB().Model(&models.Product{}).Preload("Images").Preload("Variants").Preload("Brand")
}

// List returns active products matching the filter with pagination.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	q := r.base().Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Brand != 0 {
		q = q.Where("brand_id = ?", f.Brand)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.Featured {
		q = q.Where("is_featured = ?", true)
	}

	var products []models.Product
	pagination, err := q.Order("created_at DESC").GetWithPagination(&products, f.Page, f.PerPage)
	return products, pagination, err
}

// FindByID loads one product with its relations.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.base().Where("id = ?", id).First(&p)
	return p, err
}

// FindBySlug loads one active product by slug.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	var p models.Product
	err := r.base().Where("slug = ? AND is_active = ?", slug, true).First(&p)
	return p, err
}

// Related returns other active products sharing the category.
func (r *ProductRepository) Related(p models.Product, limit int) ([]models.Product, error) {
	var out []models.Product
	err := r.base().
		Where("category = ? AND id <> ? AND is_active = ?", p.Category, p.ID, true).
		Order("created_at DESC").Limit(limit).Get(&out)
	return out, err
}

// Create persists a product with any nested images/variants.
func (r *ProductRepository) Create(p *models.Product) error {
	return orm.DB().Create(p)
}

// Update persists product changes.
func (r *ProductRepository) Update(p *models.Product) error {
	return orm.DB().Save(p)
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Product{})
}

// CreateVariant persists a new variant.
func (r *ProductRepository) CreateVariant(v *models.ProductVariant) error {
	return orm.DB().Create(v)
}

// CreateImage persists a new gallery image.
func (r *ProductRepository) CreateImage(img *models.ProductImage) error {
	return orm.DB().Create(img)
}

// FindVariant loads one variant of a product.
func (r *ProductRepository) FindVariant(productID, variantID uint) (models.ProductVariant, error) {
	var v models.ProductVariant
	err := orm.DB().Model(&models.ProductVariant{}).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&v)
	return v, err
}

// DecrementStock takes qty units off a product, or its variant when
// variantID is non-nil. The UPDATE carries a stock guard so two
// concurrent checkouts cannot oversell: zero rows affected means not
// enough stock and the caller must abort.
func (r *ProductRepository) DecrementStock(tx *orm.Query, productID uint, variantID *uint, qty int) (bool, error) {
	var (
		affected int64
		err      error
	)
	if variantID != nil {
		affected, err = tx.Model(&models.ProductVariant{}).
			Where("id = ? AND stock >= ?", *variantID, qty).
			UpdatesConditional(map[string]interface{}{"stock": gorm.Expr("stock - ?", qty)})
	} else {
		affected, err = tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, qty).
			UpdatesConditional(map[string]interface{}{"stock": gorm.Expr("stock - ?", qty)})
	}
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// LowStock returns active products at or below their low-stock threshold.
func (r *ProductRepository) LowStock() ([]models.Product, error) {
	var out []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("is_active = ? AND stock <= low_stock_threshold", true).
		Order("stock ASC").Get(&out)
	return out, err
}

// Brands returns all active brands.
func (r *ProductRepository) Brands() ([]models.Brand, error) {
	var brands []models.Brand
	err := orm.DB().Model(&models.Brand{}).Where("is_active = ?", true).Order("name ASC").Get(&brands)
	return brands, err
}

// FindBrand loads one brand by primary key.
func (r *ProductRepository) FindBrand(id uint) (models.Brand, error) {
	var b models.Brand
	err := orm.DB().Model(&models.Brand{}).Where("id = ?", id).First(&b)
	return b, err
}

// CreateBrand persists a new brand.
func (r *ProductRepository) CreateBrand(b *models.Brand) error {
	return orm.DB().Create(b)
}

// UpdateBrand persists brand changes.
func (r *ProductRepository) UpdateBrand(b *models.Brand) error {
	return orm.DB().Save(b)
}

// DeleteBrand soft-deletes a brand.
func (r *ProductRepository) DeleteBrand(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Brand{})
}
