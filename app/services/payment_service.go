package services

import (
	"errors"
	"time"

	"github.com/aranya-labs/aranya/app/jobs"
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/event"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/metrics"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/queue"
	"github.com/aranya-labs/aranya/pkg/razorpay"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrAlreadyPaid    = errors.New("order is already paid")
	ErrBadSignature   = errors.New("payment signature verification failed")
	ErrBadWebhookSig  = errors.New("webhook signature verification failed")
	ErrNotYourOrder   = errors.New("order belongs to another user")
	ErrNoGatewayOrder = errors.New("order has no gateway order")
)

// PaymentService owns the pending → paid/failed transition. The client
// verify callback and the provider webhook both end in applyPaid, and
// the transition is a conditional UPDATE, so redelivery or a race
// between the two paths applies side effects exactly once.
type PaymentService struct {
	orders  *repositories.OrderRepository
	gateway *razorpay.Client
	feed    OrderFeed
}

// OrderFeed receives order lifecycle events for the admin dashboard.
// Satisfied by the websocket hub; nil-safe.
type OrderFeed interface {
	BroadcastOrder(event string, order models.Order)
}

func NewPaymentService(feed OrderFeed) *PaymentService {
	return &PaymentService{
		orders:  repositories.NewOrderRepository(),
		gateway: razorpay.FromConfig(),
		feed:    feed,
	}
}

// GatewayCheckout is what the storefront needs to open the payment
// widget.
type GatewayCheckout struct {
	KeyID           string  `json:"key_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          int64   `json:"amount"` // paise
	Currency        string  `json:"currency"`
	OrderNumber     string  `json:"order_number"`
	Total           float64 `json:"total"`
}

// CreateGatewayOrder (re)registers a pending order with the gateway.
// Re-submitting an already-paid order is rejected.
func (s *PaymentService) CreateGatewayOrder(userID, orderID uint) (GatewayCheckout, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if orm.IsNotFound(err) {
			return GatewayCheckout{}, ErrOrderNotFound
		}
		return GatewayCheckout{}, err
	}
	if order.UserID != userID {
		return GatewayCheckout{}, ErrNotYourOrder
	}
	if order.PaymentStatus == models.PaymentPaid {
		return GatewayCheckout{}, ErrAlreadyPaid
	}

	if order.RazorpayOrderID == "" {
		gw, err := s.gateway.CreateOrder(toPaise(order.Total), "INR", order.OrderNumber,
			map[string]string{"order_number": order.OrderNumber})
		if err != nil {
			return GatewayCheckout{}, err
		}
		order.RazorpayOrderID = gw.ID
		if err := s.orders.Update(&order); err != nil {
			return GatewayCheckout{}, err
		}
	}

	return GatewayCheckout{
		KeyID:           s.gateway.KeyID(),
		RazorpayOrderID: order.RazorpayOrderID,
		Amount:          toPaise(order.Total),
		Currency:        "INR",
		OrderNumber:     order.OrderNumber,
		Total:           order.Total,
	}, nil
}

// VerifyClient handles the checkout widget callback: the signature is an
// HMAC over "order_id|payment_id". A bad signature marks the payment
// failed and is reported as an error.
func (s *PaymentService) VerifyClient(userID uint, rzpOrderID, paymentID, signature string) (models.Order, error) {
	order, err := s.orders.FindByRazorpayOrderID(rzpOrderID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	if order.UserID != userID {
		return models.Order{}, ErrNotYourOrder
	}

	if !s.gateway.VerifyPaymentSignature(rzpOrderID, paymentID, signature) {
		metrics.PaymentsVerified.WithLabelValues("invalid_signature").Inc()
		if _, err := s.orders.MarkFailed(order.ID, paymentID); err != nil {
			logger.Error("payment: mark failed", "order", order.OrderNumber, "error", err)
		}
		return models.Order{}, ErrBadSignature
	}

	return s.applyPaid(order, paymentID, signature)
}

// HandleWebhook processes a provider webhook. rawBody must be the exact
// bytes received; the signature covers them.
func (s *PaymentService) HandleWebhook(rawBody []byte, signature string) error {
	if !razorpay.VerifyWebhookSignature(rawBody, signature, config.RazorpayWebhookSecret()) {
		metrics.PaymentsVerified.WithLabelValues("invalid_webhook_signature").Inc()
		return ErrBadWebhookSig
	}

	ev, err := razorpay.ParseWebhook(rawBody)
	if err != nil {
		return err
	}
	entity := ev.Payload.Payment.Entity

	switch ev.Event {
	case razorpay.EventPaymentCaptured:
		order, err := s.orders.FindByRazorpayOrderID(entity.OrderID)
		if err != nil {
			if orm.IsNotFound(err) {
				logger.Warn("payment: webhook for unknown order", "razorpay_order_id", entity.OrderID)
				return nil
			}
			return err
		}
		_, err = s.applyPaid(order, entity.ID, "")
		return err

	case razorpay.EventPaymentFailed:
		order, err := s.orders.FindByRazorpayOrderID(entity.OrderID)
		if err != nil {
			if orm.IsNotFound(err) {
				return nil
			}
			return err
		}
		applied, err := s.orders.MarkFailed(order.ID, entity.ID)
		if err != nil {
			return err
		}
		if applied {
			metrics.PaymentsVerified.WithLabelValues("failed").Inc()
			logger.Info("payment: marked failed",
				"order", order.OrderNumber, "reason", entity.ErrorDescription)
		}
		return nil

	default:
		// Acknowledge events we do not handle.
		return nil
	}
}

// applyPaid is the single pending → paid transition. The conditional
// UPDATE makes it idempotent: when another delivery already flipped the
// order, no side effect fires again.
func (s *PaymentService) applyPaid(order models.Order, paymentID, signature string) (models.Order, error) {
	applied, err := s.orders.MarkPaid(order.ID, paymentID, signature, time.Now())
	if err != nil {
		return models.Order{}, err
	}
	if !applied {
		// Already paid (or failed) through the other path.
		return s.orders.FindByID(order.ID)
	}

	metrics.PaymentsVerified.WithLabelValues("success").Inc()

	if err := queue.Dispatch(&jobs.OrderConfirmationEmail{OrderID: order.ID}); err != nil {
		logger.Error("payment: queue confirmation email", "order", order.OrderNumber, "error", err)
	}

	updated, err := s.orders.FindByID(order.ID)
	if err != nil {
		return models.Order{}, err
	}
	if s.feed != nil {
		s.feed.BroadcastOrder("order.paid", updated)
	}
	event.FireAsync("order.paid", updated)
	logger.Info("payment: order paid", "order", updated.OrderNumber, "payment_id", paymentID)
	return updated, nil
}
