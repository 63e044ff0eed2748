package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
)

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		subtotal float64
		discount float64
		want     Totals
	}{
		{
			name:     "below free shipping",
			subtotal: 2000,
			want:     Totals{Subtotal: 2000, Shipping: 500, Total: 2500},
		},
		{
			name:     "at free shipping threshold",
			subtotal: 10000,
			want:     Totals{Subtotal: 10000, Total: 10000},
		},
		{
			name:     "discount applied",
			subtotal: 2000,
			discount: 300,
			want:     Totals{Subtotal: 2000, Shipping: 500, Discount: 300, Total: 2200},
		},
		{
			name:     "discount never drives total negative",
			subtotal: 100,
			discount: 5000,
			want:     Totals{Subtotal: 100, Shipping: 500, Discount: 5000, Total: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.subtotal, tc.discount, 10000, 500, 0)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeTotalsTax(t *testing.T) {
	got := ComputeTotals(1000, 0, 10000, 500, 0.18)
	assert.InDelta(t, 180.0, got.Tax, 0.001)
	assert.InDelta(t, 1680.0, got.Total, 0.001)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "empty@cart.test")

	svc := NewCheckoutService()
	_, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: 1,
		PaymentMethod:     models.MethodCOD,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderCOD(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "cod@order.test")
	addr := createAddress(t, db, user.ID)
	product := createProduct(t, db, "banarasi-saree", 2000, 10)
	addToCart(t, db, user.ID, product.ID, 2)

	svc := NewCheckoutService()
	order, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ARN-"))
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.InDelta(t, 4000.0, order.Subtotal, 0.001)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "banarasi-saree", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// stock decremented
	var p models.Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 8, p.Stock)

	// cart cleared in the same transaction
	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestPlaceOrderWithCoupon(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "coupon@order.test")
	addr := createAddress(t, db, user.ID)
	product := createProduct(t, db, "chanderi-kurta", 3000, 5)
	addToCart(t, db, user.ID, product.ID, 1)

	coupon := models.Coupon{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		UsageLimit:    5,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	svc := NewCheckoutService()
	order, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
		CouponCode:        "save10",
	})
	require.NoError(t, err)

	assert.InDelta(t, 300.0, order.Discount, 0.001)
	assert.Equal(t, "SAVE10", order.CouponCode)

	var c models.Coupon
	require.NoError(t, db.First(&c, coupon.ID).Error)
	assert.Equal(t, 1, c.UsedCount)
}

func TestPlaceOrderExhaustedCoupon(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "exhausted@order.test")
	addr := createAddress(t, db, user.ID)
	product := createProduct(t, db, "silk-dupatta", 1500, 5)
	addToCart(t, db, user.ID, product.ID, 1)

	coupon := models.Coupon{
		Code:          "GONE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		UsageLimit:    1,
		UsedCount:     1,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	svc := NewCheckoutService()
	_, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
		CouponCode:        "GONE",
	})
	assert.ErrorIs(t, err, ErrCouponExhausted)

	// nothing committed
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "stock@order.test")
	addr := createAddress(t, db, user.ID)
	product := createProduct(t, db, "last-piece", 999, 1)
	addToCart(t, db, user.ID, product.ID, 2)

	svc := NewCheckoutService()
	_, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))

	// rollback: stock untouched, cart intact
	var p models.Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 1, p.Stock)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

func TestPlaceOrderUnknownAddress(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "noaddr@order.test")
	product := createProduct(t, db, "plain-saree", 800, 3)
	addToCart(t, db, user.ID, product.ID, 1)

	svc := NewCheckoutService()
	_, err := svc.PlaceOrder(user.ID, PlaceOrderInput{
		ShippingAddressID: 4242,
		PaymentMethod:     models.MethodCOD,
	})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestPlaceOrderReferralAttribution(t *testing.T) {
	db := setupDB(t)
	buyer := createUser(t, db, "buyer@ref.test")
	partner := createUser(t, db, "partner@ref.test")
	addr := createAddress(t, db, buyer.ID)
	product := createProduct(t, db, "ref-saree", 1200, 4)
	addToCart(t, db, buyer.ID, product.ID, 1)

	aff := models.Affiliate{
		UserID:         partner.ID,
		Code:           "PARTNER1",
		Status:         models.AffiliateApproved,
		CommissionRate: 10,
	}
	require.NoError(t, db.Create(&aff).Error)

	svc := NewCheckoutService()
	order, err := svc.PlaceOrder(buyer.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
		ReferralCode:      "PARTNER1",
	})
	require.NoError(t, err)
	require.NotNil(t, order.AffiliateID)
	assert.Equal(t, aff.ID, *order.AffiliateID)
}

func TestPlaceOrderPendingAffiliateNotAttributed(t *testing.T) {
	db := setupDB(t)
	buyer := createUser(t, db, "buyer2@ref.test")
	partner := createUser(t, db, "partner2@ref.test")
	addr := createAddress(t, db, buyer.ID)
	product := createProduct(t, db, "ref-kurta", 900, 4)
	addToCart(t, db, buyer.ID, product.ID, 1)

	aff := models.Affiliate{
		UserID: partner.ID,
		Code:   "NOTYET99",
		Status: models.AffiliatePending,
	}
	require.NoError(t, db.Create(&aff).Error)

	svc := NewCheckoutService()
	order, err := svc.PlaceOrder(buyer.ID, PlaceOrderInput{
		ShippingAddressID: addr.ID,
		PaymentMethod:     models.MethodCOD,
		ReferralCode:      "NOTYET99",
	})
	require.NoError(t, err)
	assert.Nil(t, order.AffiliateID)
}
