// Package razorpay is a minimal client for the Razorpay Orders API plus the
// signature checks the payment flow depends on. Amounts are in paise.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/httpx"
)

const baseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay REST API using basic auth.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
}

// New builds a client from explicit credentials.
func New(keyID, keySecret string) *Client {
	return &Client{keyID: keyID, keySecret: keySecret, baseURL: baseURL}
}

// FromConfig builds a client from RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET.
func FromConfig() *Client {
	return New(config.RazorpayKeyID(), config.RazorpayKeySecret())
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// KeyID returns the public key id, exposed to the storefront checkout page.
func (c *Client) KeyID() string { return c.keyID }

// Order is a gateway order as returned by POST /orders.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway. amount is in paise and
// receipt is our internal order number.
func (c *Client) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	if currency == "" {
		currency = "INR"
	}
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	resp, err := httpx.Post(c.baseURL + "/orders").
		BasicAuth(c.keyID, c.keySecret).
		Body(payload).
		Timeout(10 * time.Second).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}

	var ord Order
	if err := resp.JSON(&ord); err != nil {
		return nil, err
	}
	return &ord, nil
}

// FetchPayment returns the raw payment entity for a payment id.
func (c *Client) FetchPayment(paymentID string) (map[string]interface{}, error) {
	resp, err := httpx.Get(c.baseURL + "/payments/" + paymentID).
		BasicAuth(c.keyID, c.keySecret).
		Timeout(10 * time.Second).
		Send()
	if err != nil {
		return nil, fmt.Errorf("razorpay: fetch payment: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("razorpay: fetch payment: %w", err)
	}
	var out map[string]interface{}
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyPaymentSignature checks the checkout callback signature: an
// HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the API secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return verifyHMAC(orderID+"|"+paymentID, signature, c.keySecret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body using the webhook secret (distinct from the API secret).
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	return verifyHMAC(string(body), signature, secret)
}

func verifyHMAC(message, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the hex HMAC-SHA256 of message with secret. Exposed for
// tests that need to forge valid signatures.
func Sign(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
