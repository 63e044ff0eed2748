package models

import "gorm.io/gorm"

// Affiliate statuses.
const (
	AffiliatePending  = "pending"
	AffiliateApproved = "approved"
	AffiliateRejected = "rejected"
)

// Affiliate is a user's membership in the referral programme. One row per
// user; Code is globally unique and appears in /r/{code} links.
type Affiliate struct {
	gorm.Model
	UserID          uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Code            string  `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Status          string  `gorm:"size:20;default:pending;index" json:"status"`
	CommissionRate  float64 `gorm:"default:10" json:"commission_rate"` // percent
	TotalEarnings   float64 `gorm:"default:0" json:"total_earnings"`
	PendingEarnings float64 `gorm:"default:0" json:"pending_earnings"`
	PaidEarnings    float64 `gorm:"default:0" json:"paid_earnings"`

	// Application details captured at apply time.
	Website         string `gorm:"size:255" json:"website,omitempty"`
	SocialHandle    string `gorm:"size:100" json:"social_handle,omitempty"`
	PromotionMethod string `gorm:"type:text" json:"promotion_method,omitempty"`
	RejectionReason string `gorm:"size:255" json:"rejection_reason,omitempty"`

	User *User `json:"user,omitempty"`
}

// AffiliateClick is one visit through a referral link. Traffic stats
// count these rows on read.
type AffiliateClick struct {
	gorm.Model
	AffiliateID uint   `gorm:"not null;index" json:"affiliate_id"`
	IP          string `gorm:"size:64" json:"-"` // sha256 of the client IP
	UserAgent   string `gorm:"size:500" json:"user_agent"`
	Referrer    string `gorm:"size:500" json:"referrer"`
	LandingPage string `gorm:"size:500" json:"landing_page"`
}
