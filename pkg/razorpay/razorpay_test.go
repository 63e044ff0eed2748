package razorpay

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/pkg/httpx"
	"github.com/aranya-labs/aranya/pkg/testkit"
)

func TestVerifyPaymentSignature(t *testing.T) {
	c := New("rzp_test_key", "secret123")

	sig := Sign("order_abc|pay_xyz", "secret123")
	assert.True(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", sig))

	// tampered payment id
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_other", sig))
	// wrong secret
	bad := Sign("order_abc|pay_xyz", "wrong")
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", bad))
	// empty signature never verifies
	assert.False(t, c.VerifyPaymentSignature("order_abc", "pay_xyz", ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := Sign(string(body), "whsec")

	assert.True(t, VerifyWebhookSignature(body, sig, "whsec"))
	assert.False(t, VerifyWebhookSignature([]byte(`{"event":"payment.failed"}`), sig, "whsec"))
	assert.False(t, VerifyWebhookSignature(body, sig, ""))
}

func TestCreateOrder(t *testing.T) {
	tr := testkit.NewTransport()
	tr.Respond(http.MethodPost, "https://api.razorpay.com/v1/orders", 200,
		`{"id":"order_Nxq1","amount":259900,"currency":"INR","receipt":"ARN-1042","status":"created"}`)
	httpx.DefaultClient.Transport = tr
	defer httpx.ResetTransport()

	c := New("rzp_test_key", "secret123")
	ord, err := c.CreateOrder(259900, "INR", "ARN-1042", map[string]string{"order_number": "ARN-1042"})
	require.NoError(t, err)

	assert.Equal(t, "order_Nxq1", ord.ID)
	assert.Equal(t, int64(259900), ord.Amount)
	assert.Equal(t, "created", ord.Status)

	require.Len(t, tr.Requests, 1)
	user, pass, ok := tr.Requests[0].BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "rzp_test_key", user)
	assert.Equal(t, "secret123", pass)
}

func TestCreateOrderGatewayError(t *testing.T) {
	tr := testkit.NewTransport()
	tr.Respond(http.MethodPost, "https://api.razorpay.com/v1/orders", 401,
		`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`)
	httpx.DefaultClient.Transport = tr
	defer httpx.ResetTransport()

	c := New("rzp_test_key", "bad")
	_, err := c.CreateOrder(100, "INR", "ARN-1", nil)
	assert.Error(t, err)
}

func TestParseWebhook(t *testing.T) {
	body := []byte(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": "pay_Nxq9", "order_id": "order_Nxq1",
			"amount": 259900, "currency": "INR", "status": "captured",
			"method": "upi", "email": "priya@example.com"
		}}},
		"created_at": 1756400000
	}`)

	ev, err := ParseWebhook(body)
	require.NoError(t, err)
	assert.Equal(t, EventPaymentCaptured, ev.Event)
	assert.Equal(t, "pay_Nxq9", ev.Payload.Payment.Entity.ID)
	assert.Equal(t, "order_Nxq1", ev.Payload.Payment.Entity.OrderID)
	assert.Equal(t, int64(259900), ev.Payload.Payment.Entity.Amount)
}
