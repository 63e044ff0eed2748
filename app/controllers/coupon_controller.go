package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/response"
)

type CouponController struct {
	service *services.CouponService
	coupons *repositories.CouponRepository
}

func NewCouponController() *CouponController {
	return &CouponController{
		service: services.NewCouponService(),
		coupons: repositories.NewCouponRepository(),
	}
}

type validateInput struct {
	Code     string  `json:"code" validate:"required,alpha_dash,max=50"`
	Subtotal float64 `json:"subtotal" validate:"required,gte=0"`
}

// Validate quotes the discount a code would grant on a subtotal.
func (c *CouponController) Validate(w http.ResponseWriter, r *http.Request) {
	var in validateInput
	if !bindJSON(w, r, &in) {
		return
	}

	coupon, discount, err := c.service.Validate(in.Code, in.Subtotal)
	if err != nil {
		if services.IsCouponError(err) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not validate coupon")
		return
	}
	response.Success(w, map[string]interface{}{
		"coupon":   coupon,
		"discount": discount,
	})
}

func (c *CouponController) Index(w http.ResponseWriter, r *http.Request) {
	coupons, pagination, err := c.coupons.All(queryInt(r, "page", 1), queryInt(r, "per_page", 20))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load coupons")
		return
	}
	response.Paginated(w, coupons, pagination)
}

type couponInput struct {
	Code           string     `json:"code" validate:"required,alpha_dash,min=3,max=50"`
	Description    string     `json:"description" validate:"max=255"`
	DiscountType   string     `json:"discount_type" validate:"required,in=percentage,fixed"`
	DiscountValue  float64    `json:"discount_value" validate:"required,gte=0"`
	MinOrderAmount float64    `json:"min_order_amount" validate:"gte=0"`
	MaxDiscount    float64    `json:"max_discount" validate:"gte=0"`
	UsageLimit     int        `json:"usage_limit" validate:"gte=0"`
	StartsAt       *time.Time `json:"starts_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsActive       bool       `json:"is_active" validate:"boolean"`
}

func (in *couponInput) apply(c *models.Coupon) {
	c.Code = strings.ToUpper(in.Code)
	c.Description = in.Description
	c.DiscountType = in.DiscountType
	c.DiscountValue = in.DiscountValue
	c.MinOrderAmount = in.MinOrderAmount
	c.MaxDiscount = in.MaxDiscount
	c.UsageLimit = in.UsageLimit
	c.StartsAt = in.StartsAt
	c.ExpiresAt = in.ExpiresAt
	c.IsActive = in.IsActive
}

func (c *CouponController) Store(w http.ResponseWriter, r *http.Request) {
	var in couponInput
	if !bindJSON(w, r, &in) {
		return
	}

	var coupon models.Coupon
	in.apply(&coupon)
	if err := c.coupons.Create(&coupon); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create coupon")
		return
	}
	response.Created(w, coupon)
}

func (c *CouponController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var coupon models.Coupon
	if err := orm.DB().Model(&models.Coupon{}).Where("id = ?", id).First(&coupon); err != nil {
		response.NotFound(w)
		return
	}

	var in couponInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&coupon)
	if err := c.coupons.Update(&coupon); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update coupon")
		return
	}
	response.Success(w, coupon)
}

func (c *CouponController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.coupons.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete coupon")
		return
	}
	response.Message(w, "coupon deleted")
}
