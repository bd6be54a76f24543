// Package notify carries the best-effort branch order broadcast. Delivery
// is at-most-once with no replay: a subscriber that joins after an event
// was published never receives it, and a failed publish never fails the
// operation that triggered it.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderCreatedEvent is the payload broadcast to a branch's channel when
// an order is recorded against it.
type OrderCreatedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	BranchID   uuid.UUID `json:"branch_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher emits advisory order events. Implementations must not block
// order creation on delivery.
type Publisher interface {
	OrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) OrderCreated(context.Context, OrderCreatedEvent) error {
	return nil
}
