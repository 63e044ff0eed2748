package repositories

import (
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// AffiliateRepository handles affiliate rows, click events and the
// on-read stats aggregations.
type AffiliateRepository struct{}

func NewAffiliateRepository() *AffiliateRepository {
	return &AffiliateRepository{}
}

// FindByUser returns the user's affiliate record.
func (r *AffiliateRepository) FindByUser(userID uint) (models.Affiliate, error) {
	var a models.Affiliate
	err := orm.DB().Model(&models.Affiliate{}).Where("user_id = ?", userID).First(&a)
	return a, err
}

// FindByID loads one affiliate with its user.
func (r *AffiliateRepository) FindByID(id uint) (models.Affiliate, error) {
	var a models.Affiliate
	err := orm.DB().Model(&models.Affiliate{}).Preload("User").Where("id = ?", id).First(&a)
	return a, err
}

// FindApprovedByCode resolves a referral code to an approved affiliate.
// Pending and rejected affiliates get no attribution.
func (r *AffiliateRepository) FindApprovedByCode(code string) (models.Affiliate, error) {
	var a models.Affiliate
	err := orm.DB().Model(&models.Affiliate{}).
		Where("code = ? AND status = ?", code, models.AffiliateApproved).
		First(&a)
	return a, err
}

// CodeExists reports whether a referral code is already taken.
func (r *AffiliateRepository) CodeExists(code string) (bool, error) {
	n, err := orm.DB().Model(&models.Affiliate{}).Where("code = ?", code).Count()
	return n > 0, err
}

// Create persists a new application.
func (r *AffiliateRepository) Create(a *models.Affiliate) error {
	return orm.DB().Create(a)
}

// Update persists affiliate changes.
func (r *AffiliateRepository) Update(a *models.Affiliate) error {
	return orm.DB().Save(a)
}

// All lists affiliates, optionally filtered by status.
func (r *AffiliateRepository) All(status string, page, limit int) ([]models.Affiliate, orm.Pagination, error) {
	q := orm.DB().Model(&models.Affiliate{}).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var affiliates []models.Affiliate
	pagination, err := q.Order("created_at DESC").GetWithPagination(&affiliates, page, limit)
	return affiliates, pagination, err
}

// RecordClick stores one referral visit.
func (r *AffiliateRepository) RecordClick(c *models.AffiliateClick) error {
	return orm.DB().Create(c)
}

// ClickCount counts visits attributed to an affiliate.
func (r *AffiliateRepository) ClickCount(affiliateID uint) (int64, error) {
	return orm.DB().Model(&models.AffiliateClick{}).Where("affiliate_id = ?", affiliateID).Count()
}

// PaidSales counts paid orders attributed to an affiliate and sums
// their totals.
func (r *AffiliateRepository) PaidSales(affiliateID uint) (count int64, revenue float64, err error) {
	count, err = orm.DB().Model(&models.Order{}).
		Where("affiliate_id = ? AND payment_status = ?", affiliateID, models.PaymentPaid).
		Count()
	if err != nil {
		return 0, 0, err
	}
	err = orm.DB().Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("affiliate_id = ? AND payment_status = ?", affiliateID, models.PaymentPaid).
		Scan(&revenue)
	return count, revenue, err
}

// CreditCommission moves amount into the affiliate's earnings columns.
func (r *AffiliateRepository) CreditCommission(affiliateID uint, amount float64) error {
	return orm.DB().Model(&models.Affiliate{}).
		Where("id = ?", affiliateID).
		Updates(map[string]interface{}{
			"total_earnings":   gorm.Expr("total_earnings + ?", amount),
			"pending_earnings": gorm.Expr("pending_earnings + ?", amount),
		})
}
