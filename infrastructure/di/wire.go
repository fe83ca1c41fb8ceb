//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"product-service/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideMetrics,
	ProvideTracerProvider,
	ProvideTracer,
	ProvideCatalogCollections,
	ProvideRecordStore,
	ProvideEventBus,
	ProvideCreateProductHandler,
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
