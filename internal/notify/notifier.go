// Package notify delivers alert messages to the configured phone number.
package notify

import "context"

// Notifier sends one text message to one phone. Delivery is best-effort:
// failures are returned to the caller and never retried here.
type Notifier interface {
	Deliver(ctx context.Context, phone, message string) error
}
