package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. Admin status updates walk this chain; cancelled and
// refunded are terminal.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods.
const (
	MethodRazorpay = "razorpay"
	MethodCOD      = "cod"
)

// Order is a financial record: rows are never deleted. Address snapshots
// are stored as JSON so later address edits cannot rewrite history.
type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:32;uniqueIndex;not null" json:"order_number"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Shipping float64 `gorm:"not null" json:"shipping"`
	Tax      float64 `gorm:"not null" json:"tax"`
	Discount float64 `gorm:"not null" json:"discount"`
	Total    float64 `gorm:"not null" json:"total"`

	CouponID   *uint  `gorm:"index" json:"coupon_id,omitempty"`
	CouponCode string `gorm:"size:50" json:"coupon_code,omitempty"`

	Status        string `gorm:"size:20;default:pending;index" json:"status"`
	PaymentMethod string `gorm:"size:20;default:razorpay" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;default:pending;index" json:"payment_status"`

	RazorpayOrderID   string     `gorm:"size:64;index" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string     `gorm:"size:64" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string     `gorm:"size:128" json:"-"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`

	ShippingAddress string `gorm:"type:text" json:"shipping_address"` // JSON snapshot
	BillingAddress  string `gorm:"type:text" json:"billing_address"`  // JSON snapshot

	AffiliateID        *uint      `gorm:"index" json:"affiliate_id,omitempty"`
	CommissionCredited bool       `gorm:"default:false" json:"-"`
	TrackingNumber     string     `gorm:"size:100" json:"tracking_number,omitempty"`
	Carrier            string     `gorm:"size:100" json:"carrier,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
	User  *User       `json:"user,omitempty"`
}

// OrderItem snapshots the product at purchase time.
type OrderItem struct {
	gorm.Model
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	VariantID   *uint   `json:"variant_id,omitempty"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	VariantName string  `gorm:"size:120" json:"variant_name,omitempty"`
	ImageURL    string  `gorm:"size:500" json:"image_url,omitempty"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	TotalPrice  float64 `gorm:"not null" json:"total_price"`
}
