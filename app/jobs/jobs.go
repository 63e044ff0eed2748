// Package jobs defines the queued background jobs: transactional email
// that must never fail the request that triggered it.
package jobs

import (
	"fmt"

	"github.com/aranya-labs/aranya/pkg/queue"
)

// RegisterAll makes every job type known to the queue so workers can
// deserialize payloads. Call once at boot.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &PasswordResetEmail{}), func() queue.Job { return &PasswordResetEmail{} })
	queue.Register(fmt.Sprintf("%T", &OrderConfirmationEmail{}), func() queue.Job { return &OrderConfirmationEmail{} })
	queue.Register(fmt.Sprintf("%T", &AffiliateStatusEmail{}), func() queue.Job { return &AffiliateStatusEmail{} })
	queue.Register(fmt.Sprintf("%T", &AbandonedCartReminder{}), func() queue.Job { return &AbandonedCartReminder{} })
}
