package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

// webhookBodyLimit caps how much of a webhook body is read before
// signature verification.
const webhookBodyLimit = 1 << 20

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(feed services.OrderFeed) *PaymentController {
	return &PaymentController{service: services.NewPaymentService(feed)}
}

type createOrderInput struct {
	OrderID uint `json:"order_id" validate:"required"`
}

// CreateOrder registers a pending order with the gateway and returns
// what the checkout widget needs.
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in createOrderInput
	if !bindJSON(w, r, &in) {
		return
	}

	checkout, err := c.service.CreateGatewayOrder(middleware.UserIDFromCtx(r.Context()), in.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrNotYourOrder):
			response.NotFound(w)
		case errors.Is(err, services.ErrAlreadyPaid):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "could not create payment order")
		}
		return
	}
	response.Success(w, checkout)
}

type verifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// Verify handles the widget callback after the shopper pays.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	var in verifyInput
	if !bindJSON(w, r, &in) {
		return
	}

	order, err := c.service.VerifyClient(
		middleware.UserIDFromCtx(r.Context()),
		in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrNotYourOrder):
			response.NotFound(w)
		case errors.Is(err, services.ErrBadSignature):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "payment verification failed")
		}
		return
	}
	response.Success(w, order)
}

// Webhook receives provider callbacks. The raw body is passed through
// untouched because the signature covers the exact bytes.
func (c *PaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read webhook body")
		return
	}

	err = c.service.HandleWebhook(body, r.Header.Get("X-Razorpay-Signature"))
	if err != nil {
		if errors.Is(err, services.ErrBadWebhookSig) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("payments: webhook processing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "webhook processing failed")
		return
	}
	response.Message(w, "ok")
}
