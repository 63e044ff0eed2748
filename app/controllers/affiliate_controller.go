package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type AffiliateController struct {
	service *services.AffiliateService
}

func NewAffiliateController() *AffiliateController {
	return &AffiliateController{service: services.NewAffiliateService()}
}

func (c *AffiliateController) Apply(w http.ResponseWriter, r *http.Request) {
	var in services.ApplyInput
	if !bindJSON(w, r, &in) {
		return
	}

	aff, err := c.service.Apply(middleware.UserIDFromCtx(r.Context()), in)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyApplied) {
			response.Error(w, http.StatusConflict, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not submit application")
		return
	}
	response.Created(w, aff)
}

func (c *AffiliateController) Me(w http.ResponseWriter, r *http.Request) {
	aff, err := c.service.Me(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		if errors.Is(err, services.ErrAffiliateNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load affiliate")
		return
	}
	response.Success(w, map[string]interface{}{
		"affiliate":     aff,
		"referral_link": services.ReferralLink(config.AppURL(), aff.Code),
	})
}

func (c *AffiliateController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.StatsFor(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		if errors.Is(err, services.ErrAffiliateNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	response.Success(w, stats)
}

// Redirect is the public /r/{code} entry: record the click, bounce to
// the storefront.
func (c *AffiliateController) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code != "" {
		c.service.TrackClick(code, r)
	}

	target := config.AppURL()
	if to := r.URL.Query().Get("to"); to != "" && to[0] == '/' {
		target += to
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (c *AffiliateController) Index(w http.ResponseWriter, r *http.Request) {
	affiliates, pagination, err := c.service.All(
		r.URL.Query().Get("status"),
		queryInt(r, "page", 1), queryInt(r, "per_page", 20))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load affiliates")
		return
	}
	response.Paginated(w, affiliates, pagination)
}

type approveInput struct {
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

func (c *AffiliateController) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in approveInput
	if !bindJSON(w, r, &in) {
		return
	}

	aff, err := c.service.Approve(id, in.CommissionRate)
	if err != nil {
		c.writeReviewError(w, err)
		return
	}
	response.Success(w, aff)
}

type rejectInput struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

func (c *AffiliateController) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in rejectInput
	if !bindJSON(w, r, &in) {
		return
	}

	aff, err := c.service.Reject(id, in.Reason)
	if err != nil {
		c.writeReviewError(w, err)
		return
	}
	response.Success(w, aff)
}

func (c *AffiliateController) writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAffiliateNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrNotPending):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "could not update application")
	}
}
