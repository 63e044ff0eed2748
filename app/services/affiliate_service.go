package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/aranya-labs/aranya/app/jobs"
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/crypt"
	"github.com/aranya-labs/aranya/pkg/event"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/metrics"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/queue"
)

var (
	ErrAlreadyApplied    = errors.New("affiliate application already exists")
	ErrAffiliateNotFound = errors.New("affiliate not found")
	ErrNotPending        = errors.New("affiliate application is not pending")
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type AffiliateService struct {
	affiliates *repositories.AffiliateRepository
	users      *repositories.UserRepository
}

func NewAffiliateService() *AffiliateService {
	return &AffiliateService{
		affiliates: repositories.NewAffiliateRepository(),
		users:      repositories.NewUserRepository(),
	}
}

// ApplyInput is the affiliate application form.
type ApplyInput struct {
	Website         string `json:"website" validate:"nullable,url"`
	SocialHandle    string `json:"social_handle" validate:"max=100"`
	PromotionMethod string `json:"promotion_method" validate:"required,min=10,max=2000"`
}

// Apply files an application, one per user, with a fresh referral code.
func (s *AffiliateService) Apply(userID uint, in ApplyInput) (models.Affiliate, error) {
	if _, err := s.affiliates.FindByUser(userID); err == nil {
		return models.Affiliate{}, ErrAlreadyApplied
	} else if !orm.IsNotFound(err) {
		return models.Affiliate{}, err
	}

	code, err := s.newCode()
	if err != nil {
		return models.Affiliate{}, err
	}

	aff := models.Affiliate{
		UserID:          userID,
		Code:            code,
		Status:          models.AffiliatePending,
		Website:         in.Website,
		SocialHandle:    in.SocialHandle,
		PromotionMethod: in.PromotionMethod,
	}
	if err := s.affiliates.Create(&aff); err != nil {
		return models.Affiliate{}, err
	}
	event.FireAsync("affiliate.applied", aff)
	return aff, nil
}

// newCode draws referral codes until one is free. Collisions on an
// 8-char code over a 32-rune alphabet are rare enough that a few
// retries always suffice.
func (s *AffiliateService) newCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		var b strings.Builder
		for i := 0; i < 8; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			b.WriteByte(codeAlphabet[n.Int64()])
		}
		code := b.String()
		taken, err := s.affiliates.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("affiliate: could not allocate referral code")
}

// Me returns the caller's affiliate record.
func (s *AffiliateService) Me(userID uint) (models.Affiliate, error) {
	aff, err := s.affiliates.FindByUser(userID)
	if orm.IsNotFound(err) {
		return models.Affiliate{}, ErrAffiliateNotFound
	}
	return aff, err
}

// Stats is the affiliate's dashboard summary, computed on read.
type Stats struct {
	Clicks          int64   `json:"clicks"`
	Sales           int64   `json:"sales"`
	Revenue         float64 `json:"revenue"`
	ConversionRate  float64 `json:"conversion_rate"` // percent
	TotalEarnings   float64 `json:"total_earnings"`
	PendingEarnings float64 `json:"pending_earnings"`
	PaidEarnings    float64 `json:"paid_earnings"`
}

// StatsFor aggregates clicks and attributed paid orders.
func (s *AffiliateService) StatsFor(userID uint) (Stats, error) {
	aff, err := s.Me(userID)
	if err != nil {
		return Stats{}, err
	}

	clicks, err := s.affiliates.ClickCount(aff.ID)
	if err != nil {
		return Stats{}, err
	}
	sales, revenue, err := s.affiliates.PaidSales(aff.ID)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		Clicks:          clicks,
		Sales:           sales,
		Revenue:         revenue,
		TotalEarnings:   aff.TotalEarnings,
		PendingEarnings: aff.PendingEarnings,
		PaidEarnings:    aff.PaidEarnings,
	}
	if clicks > 0 {
		st.ConversionRate = float64(sales) / float64(clicks) * 100
	}
	return st, nil
}

// TrackClick records a referral visit for an approved affiliate. Unknown
// or unapproved codes are ignored so the redirect always works.
func (s *AffiliateService) TrackClick(code string, r *http.Request) {
	aff, err := s.affiliates.FindApprovedByCode(code)
	if err != nil {
		if !orm.IsNotFound(err) {
			logger.Error("affiliate: resolve code", "code", code, "error", err)
		}
		return
	}

	// IPs are stored hashed; raw addresses never hit the database.
	click := models.AffiliateClick{
		AffiliateID: aff.ID,
		IP:          crypt.Hash(clientIP(r)),
		UserAgent:   r.UserAgent(),
		Referrer:    r.Referer(),
		LandingPage: r.URL.Query().Get("to"),
	}
	if err := s.affiliates.RecordClick(&click); err != nil {
		logger.Error("affiliate: record click", "code", code, "error", err)
		return
	}
	metrics.AffiliateClicks.Inc()
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}

// Approve activates a pending application and emails the applicant.
func (s *AffiliateService) Approve(id uint, commissionRate float64) (models.Affiliate, error) {
	return s.review(id, func(aff *models.Affiliate) {
		aff.Status = models.AffiliateApproved
		if commissionRate > 0 {
			aff.CommissionRate = commissionRate
		}
	})
}

// Reject declines a pending application with a reason.
func (s *AffiliateService) Reject(id uint, reason string) (models.Affiliate, error) {
	return s.review(id, func(aff *models.Affiliate) {
		aff.Status = models.AffiliateRejected
		aff.RejectionReason = reason
	})
}

func (s *AffiliateService) review(id uint, mutate func(*models.Affiliate)) (models.Affiliate, error) {
	aff, err := s.affiliates.FindByID(id)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Affiliate{}, ErrAffiliateNotFound
		}
		return models.Affiliate{}, err
	}
	if aff.Status != models.AffiliatePending {
		return models.Affiliate{}, ErrNotPending
	}

	mutate(&aff)
	if err := s.affiliates.Update(&aff); err != nil {
		return models.Affiliate{}, err
	}

	if aff.User != nil {
		job := &jobs.AffiliateStatusEmail{
			Email:    aff.User.Email,
			Name:     aff.User.Name,
			Approved: aff.Status == models.AffiliateApproved,
			Code:     aff.Code,
			Reason:   aff.RejectionReason,
		}
		if err := queue.Dispatch(job); err != nil {
			logger.Error("affiliate: queue status email", "affiliate_id", aff.ID, "error", err)
		}
	}
	return aff, nil
}

// All lists affiliates for the admin screens.
func (s *AffiliateService) All(status string, page, limit int) ([]models.Affiliate, orm.Pagination, error) {
	return s.affiliates.All(status, page, limit)
}

// ReferralLink builds the public link for a code.
func ReferralLink(appURL, code string) string {
	return fmt.Sprintf("%s/r/%s", appURL, code)
}
