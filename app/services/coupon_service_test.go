package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/orm"
)

func TestValidateCoupon(t *testing.T) {
	db := setupDB(t)

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	seed := []models.Coupon{
		{Code: "PCT10", DiscountType: models.DiscountPercentage, DiscountValue: 10, IsActive: true},
		{Code: "CAPPED", DiscountType: models.DiscountPercentage, DiscountValue: 50, MaxDiscount: 200, IsActive: true},
		{Code: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: 100, MinOrderAmount: 1000, IsActive: true},
		{Code: "OFF", DiscountType: models.DiscountFixed, DiscountValue: 50, IsActive: false},
		{Code: "FUTURE", DiscountType: models.DiscountFixed, DiscountValue: 50, StartsAt: &tomorrow, IsActive: true},
		{Code: "PAST", DiscountType: models.DiscountFixed, DiscountValue: 50, ExpiresAt: &yesterday, IsActive: true},
		{Code: "USED", DiscountType: models.DiscountFixed, DiscountValue: 50, UsageLimit: 2, UsedCount: 2, IsActive: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	svc := NewCouponService()

	t.Run("percentage", func(t *testing.T) {
		_, discount, err := svc.Validate("pct10", 2000)
		require.NoError(t, err)
		assert.InDelta(t, 200.0, discount, 0.001)
	})

	t.Run("percentage capped at max discount", func(t *testing.T) {
		_, discount, err := svc.Validate("CAPPED", 2000)
		require.NoError(t, err)
		assert.InDelta(t, 200.0, discount, 0.001)
	})

	t.Run("fixed below minimum", func(t *testing.T) {
		_, _, err := svc.Validate("FLAT100", 500)
		assert.ErrorIs(t, err, ErrCouponMinAmount)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, _, err := svc.Validate("NOPE", 500)
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		_, _, err := svc.Validate("OFF", 500)
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("not started", func(t *testing.T) {
		_, _, err := svc.Validate("FUTURE", 500)
		assert.ErrorIs(t, err, ErrCouponNotStarted)
	})

	t.Run("expired", func(t *testing.T) {
		_, _, err := svc.Validate("PAST", 500)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("exhausted", func(t *testing.T) {
		_, _, err := svc.Validate("USED", 500)
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})
}

// Redeem is a conditional UPDATE; the second redemption of a
// single-use code must lose.
func TestRedeemAtLimit(t *testing.T) {
	db := setupDB(t)

	coupon := models.Coupon{
		Code:          "ONCE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 50,
		UsageLimit:    1,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	repo := repositories.NewCouponRepository()

	require.NoError(t, orm.Transaction(func(tx *orm.Query) error {
		ok, err := repo.Redeem(tx, coupon.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	}))

	require.NoError(t, orm.Transaction(func(tx *orm.Query) error {
		ok, err := repo.Redeem(tx, coupon.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))

	var c models.Coupon
	require.NoError(t, db.First(&c, coupon.ID).Error)
	assert.Equal(t, 1, c.UsedCount)
}
