package di

import (
	"context"

	"go.uber.org/zap"

	"product-service/application/commands/bus"
	"product-service/application/ports"
	querybus "product-service/application/queries/bus"
	"product-service/infrastructure/config"
	"product-service/infrastructure/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Collections ports.CatalogCollections
	RecordStore ports.RecordStore
	EventBus    ports.EventBus
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
	Metrics     *observability.Collector
	Tracing     *observability.TracerProvider
}

// Shutdown flushes spans and syncs the logger
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(ctx); err != nil {
			c.Logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}
	return c.Logger.Sync()
}
