package controllers

import (
	"net/http"

	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type WishlistController struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewWishlistController() *WishlistController {
	return &WishlistController{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

func (c *WishlistController) Index(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromCtx(r.Context())
	items, err := c.carts.Wishlist(userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load wishlist")
		return
	}
	response.Success(w, items)
}

type wishlistInput struct {
	ProductID uint `json:"product_id" validate:"required"`
}

func (c *WishlistController) Store(w http.ResponseWriter, r *http.Request) {
	var in wishlistInput
	if !bindJSON(w, r, &in) {
		return
	}
	if _, err := c.products.FindByID(in.ProductID); err != nil {
		response.NotFound(w)
		return
	}

	userID := middleware.UserIDFromCtx(r.Context())
	if err := c.carts.AddToWishlist(userID, in.ProductID); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update wishlist")
		return
	}
	response.Message(w, "added to wishlist")
}

func (c *WishlistController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	userID := middleware.UserIDFromCtx(r.Context())
	if err := c.carts.RemoveFromWishlist(userID, id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update wishlist")
		return
	}
	response.Message(w, "removed from wishlist")
}
