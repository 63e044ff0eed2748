package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles assigned to users. Affiliates keep the customer role; their
// affiliate standing lives on the Affiliate row.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the account model behind every authenticated request.
type User struct {
	gorm.Model
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role        string     `gorm:"size:50;default:customer" json:"role"`
	Phone       string     `gorm:"size:20" json:"phone"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Addresses []Address `json:"addresses,omitempty"`
}

// Address kinds.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
)

// Address is a saved shipping or billing address. Orders copy the chosen
// address into a JSON snapshot, so editing an address never rewrites
// historical orders.
type Address struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Kind      string `gorm:"size:20;default:shipping" json:"kind"`
	Name      string `gorm:"size:200;not null" json:"name"`
	Line1     string `gorm:"size:255;not null" json:"line1"`
	Line2     string `gorm:"size:255" json:"line2"`
	City      string `gorm:"size:100;not null" json:"city"`
	State     string `gorm:"size:100" json:"state"`
	Pincode   string `gorm:"size:20;not null" json:"pincode"`
	Country   string `gorm:"size:100;default:India" json:"country"`
	Phone     string `gorm:"size:20" json:"phone"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`
}

// PasswordResetToken is a single-use reset token. Consumed rows are
// deleted rather than flagged.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
