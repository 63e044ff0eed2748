package services

import (
	"encoding/json"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/ws"
)

// OrdersHub is the shared websocket hub behind the admin live order
// feed. internal/server starts its Run loop at boot.
var OrdersHub = ws.NewHub()

// HubFeed adapts the websocket hub to the OrderFeed interface.
type HubFeed struct {
	Hub *ws.Hub
}

func NewHubFeed() *HubFeed {
	return &HubFeed{Hub: OrdersHub}
}

// BroadcastOrder pushes an order lifecycle event to every connected
// admin dashboard.
func (f *HubFeed) BroadcastOrder(event string, order models.Order) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"order": order,
	})
	if err != nil {
		logger.Error("feed: marshal order event", "event", event, "error", err)
		return
	}
	f.Hub.Broadcast <- payload
}
