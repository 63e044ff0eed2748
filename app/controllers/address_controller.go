package controllers

import (
	"net/http"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type AddressController struct {
	addresses *repositories.AddressRepository
}

func NewAddressController() *AddressController {
	return &AddressController{addresses: repositories.NewAddressRepository()}
}

func (c *AddressController) Index(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromCtx(r.Context())
	out, err := c.addresses.ForUser(userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load addresses")
		return
	}
	response.Success(w, out)
}

type addressInput struct {
	Kind      string `json:"kind" validate:"required,in=shipping,billing"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Phone     string `json:"phone" validate:"required,min=10,max=15"`
	Line1     string `json:"line1" validate:"required,max=255"`
	Line2     string `json:"line2" validate:"max=255"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Pincode   string `json:"pincode" validate:"required,min=6,max=6"`
	Country   string `json:"country" validate:"max=100"`
	IsDefault bool   `json:"is_default" validate:"boolean"`
}

func (in *addressInput) apply(a *models.Address) {
	a.Kind = in.Kind
	a.Name = in.Name
	a.Phone = in.Phone
	a.Line1 = in.Line1
	a.Line2 = in.Line2
	a.City = in.City
	a.State = in.State
	a.Pincode = in.Pincode
	if in.Country != "" {
		a.Country = in.Country
	}
	a.IsDefault = in.IsDefault
}

func (c *AddressController) Store(w http.ResponseWriter, r *http.Request) {
	var in addressInput
	if !bindJSON(w, r, &in) {
		return
	}

	var addr models.Address
	in.apply(&addr)
	addr.UserID = middleware.UserIDFromCtx(r.Context())
	if err := c.addresses.Create(&addr); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not save address")
		return
	}
	if addr.IsDefault {
		if err := c.addresses.SetDefault(addr.UserID, addr.ID); err != nil {
			response.Error(w, http.StatusInternalServerError, "could not save address")
			return
		}
	}
	response.Created(w, addr)
}

func (c *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.UserIDFromCtx(r.Context())
	addr, err := c.addresses.Find(userID, id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in addressInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&addr)
	if err := c.addresses.Update(&addr); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not save address")
		return
	}
	response.Success(w, addr)
}

func (c *AddressController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.UserIDFromCtx(r.Context())
	if err := c.addresses.Delete(userID, id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete address")
		return
	}
	response.Message(w, "address deleted")
}

func (c *AddressController) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.UserIDFromCtx(r.Context())
	if _, err := c.addresses.Find(userID, id); err != nil {
		response.NotFound(w)
		return
	}
	if err := c.addresses.SetDefault(userID, id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not set default")
		return
	}
	response.Message(w, "default address updated")
}
