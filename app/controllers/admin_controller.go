package controllers

import (
	"net/http"

	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/response"
	"github.com/aranya-labs/aranya/pkg/ws"
)

// AdminController serves the dashboard surface: analytics, campaign
// blasts and the live order feed.
type AdminController struct {
	analytics *services.AnalyticsService
	marketing *services.MarketingService
}

func NewAdminController() *AdminController {
	return &AdminController{
		analytics: services.NewAnalyticsService(),
		marketing: services.NewMarketingService(),
	}
}

func (c *AdminController) Analytics(w http.ResponseWriter, r *http.Request) {
	dash, err := c.analytics.Dashboard()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	response.Success(w, dash)
}

func (c *AdminController) SendDiscount(w http.ResponseWriter, r *http.Request) {
	var in services.BlastInput
	if !bindJSON(w, r, &in) {
		return
	}
	queued, err := c.marketing.SendDiscountBlast(in)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not queue campaign")
		return
	}
	response.Success(w, map[string]int{"queued": queued})
}

// OrderFeed upgrades the connection and streams paid and status-change
// events to the dashboard.
func (c *AdminController) OrderFeed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, services.OrdersHub)
}
