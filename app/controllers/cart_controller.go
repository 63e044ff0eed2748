package controllers

import (
	"errors"
	"net/http"

	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

func (c *CartController) Index(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.View(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load cart")
		return
	}
	response.Success(w, view)
}

func (c *CartController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.AddInput
	if !bindJSON(w, r, &in) {
		return
	}

	item, err := c.service.Add(middleware.UserIDFromCtx(r.Context()), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrVariantNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "could not add to cart")
		}
		return
	}
	response.Created(w, item)
}

type quantityInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	var in quantityInput
	if !bindJSON(w, r, &in) {
		return
	}

	item, err := c.service.UpdateQuantity(middleware.UserIDFromCtx(r.Context()), itemID, in.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not update cart")
		return
	}
	response.Success(w, item)
}

func (c *CartController) Destroy(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	if err := c.service.Remove(middleware.UserIDFromCtx(r.Context()), itemID); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not remove item")
		return
	}
	response.Message(w, "item removed")
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Clear(middleware.UserIDFromCtx(r.Context())); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not clear cart")
		return
	}
	response.Message(w, "cart cleared")
}
