package repositories

import (
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// CouponRepository handles coupon rows. Redemption is a conditional
// UPDATE so a limited-use code can never be oversubscribed, no matter
// how many checkouts race on it.
type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

// FindByCode loads a coupon regardless of state.
func (r *CouponRepository) FindByCode(code string) (models.Coupon, error) {
	var c models.Coupon
	err := orm.DB().Model(&models.Coupon{}).Where("code = ?", code).First(&c)
	return c, err
}

// All returns every coupon for the admin listing.
func (r *CouponRepository) All(page, limit int) ([]models.Coupon, orm.Pagination, error) {
	var coupons []models.Coupon
	pagination, err := orm.DB().Model(&models.Coupon{}).
		Order("created_at DESC").GetWithPagination(&coupons, page, limit)
	return coupons, pagination, err
}

// Create persists a new coupon.
func (r *CouponRepository) Create(c *models.Coupon) error {
	return orm.DB().Create(c)
}

// Update persists coupon changes.
func (r *CouponRepository) Update(c *models.Coupon) error {
	return orm.DB().Save(c)
}

// Delete soft-deletes a coupon.
func (r *CouponRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Coupon{})
}

// Redeem advances used_count by one, guarded by the usage limit. The
// guard and the increment live in the same UPDATE, so of N concurrent
// redemptions of a code with one use left exactly one succeeds.
// Returns false when the limit is exhausted.
func (r *CouponRepository) Redeem(tx *orm.Query, couponID uint) (bool, error) {
	affected, err := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
		UpdatesConditional(map[string]interface{}{"used_count": gorm.Expr("used_count + 1")})
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
