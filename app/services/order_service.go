package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/orm"
)

var ErrBadTransition = errors.New("invalid status transition")

// nextStatuses is the admin order state machine. Cancelled and refunded
// are terminal.
var nextStatuses = map[string][]string{
	models.OrderPending:    {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:  {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered},
	models.OrderDelivered:  {models.OrderRefunded},
}

// OrderService covers reads and the admin-side status walk.
type OrderService struct {
	orders     *repositories.OrderRepository
	affiliates *repositories.AffiliateRepository
	feed       OrderFeed
}

func NewOrderService(feed OrderFeed) *OrderService {
	return &OrderService{
		orders:     repositories.NewOrderRepository(),
		affiliates: repositories.NewAffiliateRepository(),
		feed:       feed,
	}
}

// List returns the caller's orders, or all orders when admin.
func (s *OrderService) List(f repositories.OrderFilter) ([]models.Order, orm.Pagination, error) {
	return s.orders.List(f)
}

// Get loads one order; non-admin callers only see their own.
func (s *OrderService) Get(userID uint, isAdmin bool, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	if !isAdmin && order.UserID != userID {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatusInput is the admin status mutation.
type UpdateStatusInput struct {
	Status         string `json:"status" validate:"required,in=confirmed,processing,shipped,delivered,cancelled,refunded"`
	TrackingNumber string `json:"tracking_number" validate:"max=100"`
	Carrier        string `json:"carrier" validate:"max=100"`
}

// UpdateStatus walks the order one step along the state machine.
// Reaching delivered credits the attributed affiliate exactly once.
func (s *OrderService) UpdateStatus(orderID uint, in UpdateStatusInput) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if !allowed(order.Status, in.Status) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, order.Status, in.Status)
	}

	order.Status = in.Status
	if in.TrackingNumber != "" {
		order.TrackingNumber = in.TrackingNumber
	}
	if in.Carrier != "" {
		order.Carrier = in.Carrier
	}
	if in.Status == models.OrderDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}

	if in.Status == models.OrderDelivered {
		if err := s.creditCommission(&order); err != nil {
			logger.Error("orders: credit commission", "order", order.OrderNumber, "error", err)
		}
	}

	if s.feed != nil {
		s.feed.BroadcastOrder("order."+in.Status, order)
	}
	return order, nil
}

func allowed(from, to string) bool {
	for _, n := range nextStatuses[from] {
		if n == to {
			return true
		}
	}
	return false
}

// creditCommission pays the attributed affiliate for a delivered, paid
// order. The commission_credited flag is flipped in the same conditional
// UPDATE that gates the credit, so a repeated delivered transition can
// never pay twice.
func (s *OrderService) creditCommission(order *models.Order) error {
	if order.AffiliateID == nil || order.PaymentStatus != models.PaymentPaid {
		return nil
	}

	affected, err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND commission_credited = ?", order.ID, false).
		UpdatesConditional(map[string]interface{}{"commission_credited": true})
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}

	aff, err := s.affiliates.FindByID(*order.AffiliateID)
	if err != nil {
		return err
	}
	rate := aff.CommissionRate
	amount := order.Total * rate / 100
	if err := s.affiliates.CreditCommission(aff.ID, amount); err != nil {
		return err
	}
	logger.Info("orders: commission credited",
		"order", order.OrderNumber, "affiliate_id", aff.ID, "amount", amount)
	return nil
}
