package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publishes order events over Redis Pub/Sub, one channel
// per branch. Redis Pub/Sub natively matches the advertised semantics:
// at-most-once, no queueing, no replay.
type RedisBroadcaster struct {
	client *redis.Client
	prefix string
}

// NewRedisBroadcaster wires a broadcaster onto an existing client.
func NewRedisBroadcaster(client *redis.Client, prefix string) (*RedisBroadcaster, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if prefix == "" {
		prefix = "orders.branch"
	}
	return &RedisBroadcaster{client: client, prefix: prefix}, nil
}

// Channel returns the Pub/Sub channel name for a branch.
func (b *RedisBroadcaster) Channel(branchID uuid.UUID) string {
	return fmt.Sprintf("%s.%s", b.prefix, branchID)
}

// OrderCreated publishes the event to the branch channel.
func (b *RedisBroadcaster) OrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}
	return b.client.Publish(ctx, b.Channel(event.BranchID), payload).Err()
}

// Subscribe registers for a branch's events. Events published before the
// subscription was established are gone; close stops delivery.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, branchID uuid.UUID) (<-chan OrderCreatedEvent, func() error, error) {
	sub := b.client.Subscribe(ctx, b.Channel(branchID))
	// Force the SUBSCRIBE round trip so callers observe registration
	// before any publish they trigger afterwards.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribing to branch channel: %w", err)
	}

	events := make(chan OrderCreatedEvent)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event OrderCreatedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, sub.Close, nil
}
