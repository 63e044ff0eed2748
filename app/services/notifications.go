package services

import (
	"fmt"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/event"
	"github.com/aranya-labs/aranya/pkg/notification"
)

// OrderPaidNote pings the ops Slack channel when an order is paid.
type OrderPaidNote struct {
	Order models.Order
}

func (n *OrderPaidNote) Via() []string { return []string{"slack"} }

func (n *OrderPaidNote) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("Order %s paid", n.Order.OrderNumber),
		Attachments: []notification.SlackAttachment{{
			Color: "good",
			Title: n.Order.OrderNumber,
			Text:  fmt.Sprintf("₹%.2f via %s", n.Order.Total, n.Order.PaymentMethod),
		}},
	}
}

// AffiliateAppliedNote announces a new affiliate application for review.
type AffiliateAppliedNote struct {
	Affiliate models.Affiliate
}

func (n *AffiliateAppliedNote) Via() []string { return []string{"slack"} }

func (n *AffiliateAppliedNote) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: "New affiliate application",
		Attachments: []notification.SlackAttachment{{
			Color: "warning",
			Title: fmt.Sprintf("Application #%d", n.Affiliate.ID),
			Text:  n.Affiliate.PromotionMethod,
		}},
	}
}

// RegisterNotifications hooks the domain events emitted by the services
// into the admin Slack channel. No-ops cleanly when the webhook is not
// configured.
func RegisterNotifications() {
	notification.SetSlackWebhook(config.SlackWebhookURL())

	event.Listen("order.paid", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		notification.SendAsync("", &OrderPaidNote{Order: order})
	})

	event.Listen("affiliate.applied", func(payload interface{}) {
		aff, ok := payload.(models.Affiliate)
		if !ok {
			return
		}
		notification.SendAsync("", &AffiliateAppliedNote{Affiliate: aff})
	})
}
