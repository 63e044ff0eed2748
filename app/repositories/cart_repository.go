package repositories

import (
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// CartRepository handles cart and wishlist rows.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ForUser returns the user's cart items with product and variant loaded.
func (r *CartRepository) ForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Preload("Product").Preload("Product.Images").Preload("Variant").
		Order("created_at ASC").
		Get(&items)
	return items, err
}

// FindItem loads one cart item owned by the user.
func (r *CartRepository) FindItem(userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item)
	return item, err
}

// FindLine returns the existing row for a product+variant pair, if any.
func (r *CartRepository) FindLine(userID, productID uint, variantID *uint) (models.CartItem, error) {
	var item models.CartItem
	q := orm.DB().Model(&models.CartItem{}).Where("user_id = ? AND product_id = ?", userID, productID)
	if variantID != nil {
		q = q.Where("variant_id = ?", *variantID)
	} else {
		q = q.Where("variant_id IS NULL")
	}
	err := q.First(&item)
	return item, err
}

// Create persists a new cart line.
func (r *CartRepository) Create(item *models.CartItem) error {
	return orm.DB().Create(item)
}

// Update persists quantity changes.
func (r *CartRepository) Update(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// Delete removes one cart line.
func (r *CartRepository) Delete(userID, itemID uint) error {
	return orm.DB().Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
}

// Clear empties a user's cart. Pass the checkout transaction so the
// clear commits or rolls back with the order.
func (r *CartRepository) Clear(tx *orm.Query, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartItem{})
}

// StaleCarts returns the distinct user ids whose oldest cart item
// predates cutoff. Fed by the abandoned-cart schedule.
func (r *CartRepository) StaleCarts(cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := orm.DB().Model(&models.CartItem{}).
		Select("DISTINCT user_id").
		Where("created_at < ?", cutoff).
		Scan(&ids)
	return ids, err
}

// Wishlist returns the user's saved products.
func (r *CartRepository) Wishlist(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := orm.DB().Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Preload("Product").Preload("Product.Images").
		Order("created_at DESC").
		Get(&items)
	return items, err
}

// AddToWishlist saves a product, ignoring duplicates.
func (r *CartRepository) AddToWishlist(userID, productID uint) error {
	var existing models.WishlistItem
	err := orm.DB().Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing)
	if err == nil {
		return nil
	}
	if !orm.IsNotFound(err) {
		return err
	}
	return orm.DB().Create(&models.WishlistItem{UserID: userID, ProductID: productID})
}

// RemoveFromWishlist deletes one wishlist row owned by the user.
func (r *CartRepository) RemoveFromWishlist(userID, itemID uint) error {
	return orm.DB().Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.WishlistItem{})
}
