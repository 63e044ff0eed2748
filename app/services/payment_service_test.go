package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/razorpay"
)

const (
	testKeySecret     = "test_key_secret"
	testWebhookSecret = "test_webhook_secret"
)

func paymentTestService(t *testing.T) *PaymentService {
	t.Helper()
	config.Set("RAZORPAY_KEY_ID", "rzp_test_key")
	config.Set("RAZORPAY_KEY_SECRET", testKeySecret)
	config.Set("RAZORPAY_WEBHOOK_SECRET", testWebhookSecret)
	return NewPaymentService(nil)
}

func createPendingOrder(t *testing.T, db *gorm.DB, userID uint, rzpOrderID string) models.Order {
	t.Helper()
	o := models.Order{
		OrderNumber:     "ARN-20260101-000001",
		UserID:          userID,
		Subtotal:        2000,
		Total:           2000,
		Status:          models.OrderPending,
		PaymentMethod:   models.MethodRazorpay,
		PaymentStatus:   models.PaymentPending,
		RazorpayOrderID: rzpOrderID,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func TestVerifyClientBadSignature(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	user := createUser(t, db, "badsig@pay.test")
	order := createPendingOrder(t, db, user.ID, "order_bad")

	_, err := svc.VerifyClient(user.ID, "order_bad", "pay_1", "tampered")
	assert.ErrorIs(t, err, ErrBadSignature)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, models.PaymentFailed, o.PaymentStatus)
}

func TestVerifyClientWrongUser(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	owner := createUser(t, db, "owner@pay.test")
	other := createUser(t, db, "other@pay.test")
	createPendingOrder(t, db, owner.ID, "order_owned")

	sig := razorpay.Sign("order_owned|pay_1", testKeySecret)
	_, err := svc.VerifyClient(other.ID, "order_owned", "pay_1", sig)
	assert.ErrorIs(t, err, ErrNotYourOrder)
}

func TestVerifyClientPaysOnce(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	user := createUser(t, db, "paid@pay.test")
	order := createPendingOrder(t, db, user.ID, "order_good")

	sig := razorpay.Sign("order_good|pay_42", testKeySecret)

	first, err := svc.VerifyClient(user.ID, "order_good", "pay_42", sig)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, first.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, first.Status)
	assert.Equal(t, "pay_42", first.RazorpayPaymentID)
	require.NotNil(t, first.PaidAt)

	// redelivery of the same callback is a no-op
	second, err := svc.VerifyClient(user.ID, "order_good", "pay_42", sig)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, second.PaymentStatus)
	assert.Equal(t, first.PaidAt.Unix(), second.PaidAt.Unix())

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
}

func capturedWebhook(rzpOrderID, paymentID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"status":"captured"}}}}`,
		paymentID, rzpOrderID))
}

func TestWebhookBadSignature(t *testing.T) {
	setupDB(t)
	svc := paymentTestService(t)

	body := capturedWebhook("order_x", "pay_x")
	err := svc.HandleWebhook(body, "not-a-signature")
	assert.ErrorIs(t, err, ErrBadWebhookSig)
}

func TestWebhookCapturedIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	user := createUser(t, db, "hook@pay.test")
	order := createPendingOrder(t, db, user.ID, "order_hook")

	body := capturedWebhook("order_hook", "pay_hook")
	sig := razorpay.Sign(string(body), testWebhookSecret)

	require.NoError(t, svc.HandleWebhook(body, sig))
	require.NoError(t, svc.HandleWebhook(body, sig)) // provider redelivery

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, o.Status)
	assert.Equal(t, "pay_hook", o.RazorpayPaymentID)
}

func TestWebhookRaceWithClientVerify(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	user := createUser(t, db, "race@pay.test")
	order := createPendingOrder(t, db, user.ID, "order_race")

	// client callback wins first
	sig := razorpay.Sign("order_race|pay_race", testKeySecret)
	_, err := svc.VerifyClient(user.ID, "order_race", "pay_race", sig)
	require.NoError(t, err)

	// then the webhook arrives for the same payment
	body := capturedWebhook("order_race", "pay_race")
	whSig := razorpay.Sign(string(body), testWebhookSecret)
	require.NoError(t, svc.HandleWebhook(body, whSig))

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, "pay_race", o.RazorpayPaymentID)
}

func TestWebhookFailedEvent(t *testing.T) {
	db := setupDB(t)
	svc := paymentTestService(t)
	user := createUser(t, db, "fail@pay.test")
	order := createPendingOrder(t, db, user.ID, "order_fail")

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_f","order_id":"order_fail","error_description":"card declined"}}}}`)
	sig := razorpay.Sign(string(body), testWebhookSecret)

	require.NoError(t, svc.HandleWebhook(body, sig))

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, models.PaymentFailed, o.PaymentStatus)
}

func TestWebhookUnknownOrderAcked(t *testing.T) {
	setupDB(t)
	svc := paymentTestService(t)

	body := capturedWebhook("order_nobody", "pay_nobody")
	sig := razorpay.Sign(string(body), testWebhookSecret)
	assert.NoError(t, svc.HandleWebhook(body, sig))
}
