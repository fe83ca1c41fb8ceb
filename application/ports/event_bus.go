package ports

import (
	"context"

	"product-service/domain/events"
)

// EventBus publishes domain events to external subscribers
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
