package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aranya-labs/aranya/app/jobs"
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/mail"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/queue"
	"github.com/aranya-labs/aranya/pkg/schedule"
	"github.com/aranya-labs/aranya/pkg/workerpool"
)

// abandonedAfter is how long a cart item must sit untouched before the
// hourly scan considers the cart abandoned.
const abandonedAfter = 24 * time.Hour

// MarketingService covers the admin-triggered discount blast and the
// scheduled abandoned-cart reminders.
type MarketingService struct {
	users  *repositories.UserRepository
	carts  *repositories.CartRepository
	orders *repositories.OrderRepository
	pool   *workerpool.Pool
}

func NewMarketingService() *MarketingService {
	return &MarketingService{
		users:  repositories.NewUserRepository(),
		carts:  repositories.NewCartRepository(),
		orders: repositories.NewOrderRepository(),
		pool:   workerpool.New(10),
	}
}

// BlastInput is the admin discount announcement.
type BlastInput struct {
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Body    string `json:"body" validate:"required,min=10"`
}

// SendDiscountBlast fans the announcement out to every customer through
// the bounded worker pool. Returns how many sends were accepted; the
// rest hit pool backpressure and are retried once inline.
func (s *MarketingService) SendDiscountBlast(in BlastInput) (int, error) {
	page, accepted := 1, 0
	for {
		users, pagination, err := s.users.All(page, 200)
		if err != nil {
			return accepted, err
		}
		for _, u := range users {
			if u.Role != models.RoleCustomer {
				continue
			}
			email := u.Email
			send := func() {
				if err := mail.To(email).Subject(in.Subject).Body(in.Body).Send(); err != nil {
					logger.Warn("marketing: blast send failed", "email", email, "error", err)
				}
			}
			if err := s.pool.Submit(send); err != nil {
				if errors.Is(err, workerpool.ErrPoolFull) {
					send()
				} else {
					return accepted, err
				}
			}
			accepted++
		}
		if page >= pagination.TotalPages {
			break
		}
		page++
	}
	return accepted, nil
}

// RegisterSchedules wires the recurring tasks. Called once at boot.
func (s *MarketingService) RegisterSchedules() {
	schedule.Hourly().Name("abandoned-cart-scan").WithoutOverlapping().Run(func() {
		if err := s.scanAbandonedCarts(); err != nil {
			logger.Error("marketing: abandoned cart scan", "error", err)
		}
	})
}

// scanAbandonedCarts queues one reminder per user whose cart went stale
// and who has not ordered since. The abandoned_cart_emails row makes
// each tier fire once.
func (s *MarketingService) scanAbandonedCarts() error {
	cutoff := time.Now().Add(-abandonedAfter)
	userIDs, err := s.carts.StaleCarts(cutoff)
	if err != nil {
		return err
	}

	for _, uid := range userIDs {
		latest, err := s.orders.LatestOrderAt(uid)
		if err != nil {
			return err
		}
		if latest.After(cutoff) {
			continue
		}

		var sent models.AbandonedCartEmail
		err = orm.DB().Model(&models.AbandonedCartEmail{}).
			Where("user_id = ? AND tier = ?", uid, 1).
			First(&sent)
		if err == nil {
			continue
		}
		if !orm.IsNotFound(err) {
			return err
		}

		user, err := s.users.FindByID(uid)
		if err != nil {
			return err
		}
		if err := orm.DB().Create(&models.AbandonedCartEmail{
			UserID: uid,
			Tier:   1,
			SentAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := queue.Dispatch(&jobs.AbandonedCartReminder{
			Email: user.Email,
			Name:  user.Name,
			Tier:  1,
		}); err != nil {
			return fmt.Errorf("marketing: queue reminder for user %d: %w", uid, err)
		}
	}
	return nil
}
