package services

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/crypt"
)

func TestApplyOncePerUser(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "once@aff.test")

	svc := NewAffiliateService()

	aff, err := svc.Apply(user.ID, ApplyInput{PromotionMethod: "Instagram reels for handloom sarees"})
	require.NoError(t, err)
	assert.Equal(t, models.AffiliatePending, aff.Status)
	assert.Len(t, aff.Code, 8)

	_, err = svc.Apply(user.ID, ApplyInput{PromotionMethod: "Trying again with another pitch"})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApproveSetsRate(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "approve@aff.test")

	svc := NewAffiliateService()
	aff, err := svc.Apply(user.ID, ApplyInput{PromotionMethod: "Fashion blog with weekly saree features"})
	require.NoError(t, err)

	got, err := svc.Approve(aff.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, models.AffiliateApproved, got.Status)
	assert.InDelta(t, 15.0, got.CommissionRate, 0.001)

	// review is one-shot
	_, err = svc.Approve(aff.ID, 20)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestRejectKeepsReason(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "reject@aff.test")

	svc := NewAffiliateService()
	aff, err := svc.Apply(user.ID, ApplyInput{PromotionMethod: "A promotion plan that will not make the cut"})
	require.NoError(t, err)

	got, err := svc.Reject(aff.ID, "insufficient audience")
	require.NoError(t, err)
	assert.Equal(t, models.AffiliateRejected, got.Status)
	assert.Equal(t, "insufficient audience", got.RejectionReason)
}

func TestTrackClickStoresHashedIP(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "clicks@aff.test")

	aff := models.Affiliate{
		UserID: user.ID,
		Code:   "CLICK123",
		Status: models.AffiliateApproved,
	}
	require.NoError(t, db.Create(&aff).Error)

	r := httptest.NewRequest("GET", "/r/CLICK123?to=/products/1", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.Header.Set("User-Agent", "test-agent")

	svc := NewAffiliateService()
	svc.TrackClick("CLICK123", r)

	var clicks []models.AffiliateClick
	require.NoError(t, db.Find(&clicks).Error)
	require.Len(t, clicks, 1)
	assert.Equal(t, crypt.Hash("203.0.113.9"), clicks[0].IP)
	assert.Equal(t, "/products/1", clicks[0].LandingPage)
}

func TestTrackClickIgnoresPendingCode(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "pendingclick@aff.test")

	aff := models.Affiliate{
		UserID: user.ID,
		Code:   "WAIT1234",
		Status: models.AffiliatePending,
	}
	require.NoError(t, db.Create(&aff).Error)

	r := httptest.NewRequest("GET", "/r/WAIT1234", nil)
	svc := NewAffiliateService()
	svc.TrackClick("WAIT1234", r)

	var count int64
	require.NoError(t, db.Model(&models.AffiliateClick{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStatsConversion(t *testing.T) {
	db := setupDB(t)
	partner := createUser(t, db, "stats@aff.test")
	buyer := createUser(t, db, "statsbuyer@aff.test")

	aff := models.Affiliate{
		UserID:         partner.ID,
		Code:           "STAT1234",
		Status:         models.AffiliateApproved,
		CommissionRate: 10,
	}
	require.NoError(t, db.Create(&aff).Error)

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&models.AffiliateClick{AffiliateID: aff.ID, IP: crypt.Hash("1.2.3.4")}).Error)
	}
	paid := models.Order{
		OrderNumber:   "ARN-20260301-000001",
		UserID:        buyer.ID,
		Total:         5000,
		Status:        models.OrderConfirmed,
		PaymentMethod: models.MethodRazorpay,
		PaymentStatus: models.PaymentPaid,
		AffiliateID:   &aff.ID,
	}
	require.NoError(t, db.Create(&paid).Error)
	unpaid := models.Order{
		OrderNumber:   "ARN-20260301-000002",
		UserID:        buyer.ID,
		Total:         1000,
		Status:        models.OrderPending,
		PaymentMethod: models.MethodCOD,
		PaymentStatus: models.PaymentPending,
		AffiliateID:   &aff.ID,
	}
	require.NoError(t, db.Create(&unpaid).Error)

	svc := NewAffiliateService()
	stats, err := svc.StatsFor(partner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Clicks)
	assert.Equal(t, int64(1), stats.Sales) // unpaid orders do not count
	assert.InDelta(t, 5000.0, stats.Revenue, 0.001)
	assert.InDelta(t, 25.0, stats.ConversionRate, 0.001)
}

func TestReferralLink(t *testing.T) {
	assert.Equal(t, "https://shop.test/r/ABC123", ReferralLink("https://shop.test", "ABC123"))
}
