package events

import (
	"time"

	"product-service/domain/catalog"
)

// SourceProductService is the event source name used on the event bus
const SourceProductService = "product-service"

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// ProductCreated is raised once a product and its stock entry are committed
type ProductCreated struct {
	BaseEvent
	Product catalog.Product `json:"product"`
	Count   int             `json:"count"`
}

// NewProductCreated creates a ProductCreated event
func NewProductCreated(created catalog.CreatedProduct, timestamp time.Time) ProductCreated {
	return ProductCreated{
		BaseEvent: BaseEvent{
			AggregateID: created.ID,
			EventType:   "product.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		Product: created.Product,
		Count:   created.Count,
	}
}
