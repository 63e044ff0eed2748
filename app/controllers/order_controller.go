package controllers

import (
	"errors"
	"net/http"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type OrderController struct {
	orders   *services.OrderService
	checkout *services.CheckoutService
}

func NewOrderController(feed services.OrderFeed) *OrderController {
	return &OrderController{
		orders:   services.NewOrderService(feed),
		checkout: services.NewCheckoutService(),
	}
}

// Index lists the caller's orders; admins see everyone's and may filter
// by status and payment_status.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	filter := repositories.OrderFilter{
		UserID:  middleware.UserIDFromCtx(r.Context()),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}
	if middleware.RoleFromCtx(r.Context()) == models.RoleAdmin {
		filter.UserID = uint(queryInt(r, "user_id", 0))
		filter.Status = r.URL.Query().Get("status")
		filter.PaymentStatus = r.URL.Query().Get("payment_status")
	}

	orders, pagination, err := c.orders.List(filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := c.orders.Get(
		middleware.UserIDFromCtx(r.Context()),
		middleware.RoleFromCtx(r.Context()) == models.RoleAdmin,
		id,
	)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load order")
		return
	}
	response.Success(w, order)
}

// Store runs checkout on the caller's cart.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.PlaceOrderInput
	if !bindJSON(w, r, &in) {
		return
	}

	order, err := c.checkout.PlaceOrder(middleware.UserIDFromCtx(r.Context()), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInsufficientStock),
			services.IsCouponError(err):
			response.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAddressNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "could not place order")
		}
		return
	}
	response.Created(w, order)
}

// UpdateStatus is the admin state-machine walk.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in services.UpdateStatusInput
	if !bindJSON(w, r, &in) {
		return
	}

	order, err := c.orders.UpdateStatus(id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			response.NotFound(w)
		case errors.Is(err, services.ErrBadTransition):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "could not update order")
		}
		return
	}
	response.Success(w, order)
}
