package services

import (
	"errors"
	"strings"
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/orm"
)

var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon is not yet valid")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
	ErrCouponMinAmount  = errors.New("order amount below coupon minimum")
)

// IsCouponError reports whether err is any coupon validation failure,
// so handlers can map the whole family to one status code.
func IsCouponError(err error) bool {
	for _, e := range []error{
		ErrCouponNotFound, ErrCouponInactive, ErrCouponNotStarted,
		ErrCouponExpired, ErrCouponExhausted, ErrCouponMinAmount,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

type CouponService struct {
	coupons *repositories.CouponRepository
}

func NewCouponService() *CouponService {
	return &CouponService{coupons: repositories.NewCouponRepository()}
}

// Validate checks a code against a subtotal and returns the coupon with
// the discount it would grant. It does not consume a use; redemption
// happens atomically inside checkout.
func (s *CouponService) Validate(code string, subtotal float64) (models.Coupon, float64, error) {
	c, err := s.coupons.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Coupon{}, 0, ErrCouponNotFound
		}
		return models.Coupon{}, 0, err
	}

	now := time.Now()
	switch {
	case !c.IsActive:
		return c, 0, ErrCouponInactive
	case c.StartsAt != nil && now.Before(*c.StartsAt):
		return c, 0, ErrCouponNotStarted
	case c.ExpiresAt != nil && now.After(*c.ExpiresAt):
		return c, 0, ErrCouponExpired
	case c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit:
		return c, 0, ErrCouponExhausted
	case subtotal < c.MinOrderAmount:
		return c, 0, ErrCouponMinAmount
	}

	return c, c.DiscountFor(subtotal), nil
}
