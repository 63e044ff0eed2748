package jobs

import (
	"fmt"
	"strings"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/mail"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// PasswordResetEmail delivers the reset link.
type PasswordResetEmail struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	ResetURL string `json:"reset_url"`
}

func (j *PasswordResetEmail) Handle() error {
	return mail.To(j.Email).
		Subject("Reset your Aranya password").
		Body(fmt.Sprintf(
			`<p>Hi %s,</p><p>Click the link below to reset your password. It expires in one hour.</p><p><a href="%s">Reset password</a></p>`,
			j.Name, j.ResetURL)).
		Send()
}

// OrderConfirmationEmail sends the order summary after payment succeeds.
// The order is reloaded at run time so the worker mails current state.
type OrderConfirmationEmail struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderConfirmationEmail) Handle() error {
	var order models.Order
	if err := orm.DB().Model(&models.Order{}).
		Preload("Items").Preload("User").
		Where("id = ?", j.OrderID).First(&order); err != nil {
		return fmt.Errorf("jobs: load order %d: %w", j.OrderID, err)
	}
	if order.User == nil {
		return fmt.Errorf("jobs: order %d has no user", j.OrderID)
	}

	var lines strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&lines, "<tr><td>%s</td><td>%d</td><td>₹%.2f</td></tr>", it.ProductName, it.Quantity, it.TotalPrice)
	}

	body := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your order <b>%s</b> is confirmed.</p>
<table><tr><th>Item</th><th>Qty</th><th>Total</th></tr>%s</table>
<p>Subtotal: ₹%.2f<br>Shipping: ₹%.2f<br>Discount: -₹%.2f<br><b>Total: ₹%.2f</b></p>`,
		order.User.Name, order.OrderNumber, lines.String(),
		order.Subtotal, order.Shipping, order.Discount, order.Total)

	return mail.To(order.User.Email).
		Subject("Order confirmed: " + order.OrderNumber).
		Body(body).
		Send()
}

// AffiliateStatusEmail tells an applicant the outcome of review.
type AffiliateStatusEmail struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
	Code     string `json:"code,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (j *AffiliateStatusEmail) Handle() error {
	if j.Approved {
		return mail.To(j.Email).
			Subject("Welcome to the Aranya affiliate programme").
			Body(fmt.Sprintf(
				`<p>Hi %s,</p><p>Your application was approved. Your referral code is <b>%s</b>.</p>`,
				j.Name, j.Code)).
			Send()
	}
	return mail.To(j.Email).
		Subject("Your Aranya affiliate application").
		Body(fmt.Sprintf(
			`<p>Hi %s,</p><p>Unfortunately we could not approve your application at this time.</p><p>%s</p>`,
			j.Name, j.Reason)).
		Send()
}

// AbandonedCartReminder nudges a user whose cart went stale.
type AbandonedCartReminder struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Tier  int    `json:"tier"`
}

func (j *AbandonedCartReminder) Handle() error {
	return mail.To(j.Email).
		Subject("You left something in your cart").
		Body(fmt.Sprintf(
			`<p>Hi %s,</p><p>Your cart is waiting. Complete your order before your items sell out.</p>`,
			j.Name)).
		Send()
}
