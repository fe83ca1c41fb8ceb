package di

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/application/commands"
	"product-service/application/queries"
	"product-service/domain/catalog"
	"product-service/infrastructure/config"
	apperrors "product-service/pkg/errors"
	"product-service/tests/fixtures"
)

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.LogLevel = "error"
	cfg.EventBusName = ""
	return cfg
}

func TestInitializeContainer_MemoryStoreEndToEnd(t *testing.T) {
	ctx := context.Background()

	container, err := InitializeContainer(ctx, memoryConfig())
	require.NoError(t, err)
	defer container.Shutdown(ctx)

	result, err := container.CommandBus.Send(ctx, commands.CreateProductCommand{
		Submission: fixtures.NewSubmission("Widget", 9.99, 4),
	})
	require.NoError(t, err)
	created := result.(*catalog.CreatedProduct)

	result, err = container.QueryBus.Ask(ctx, queries.GetProductQuery{ProductID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.Product, *result.(*catalog.Product))

	result, err = container.QueryBus.Ask(ctx, queries.ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []catalog.ProductWithStock{{Product: created.Product, Stock: 4}}, result)

	require.NotNil(t, container.Metrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(container.Metrics.ProductsCreated))
}

func TestInitializeContainer_InvalidCommandWritesNothing(t *testing.T) {
	ctx := context.Background()

	container, err := InitializeContainer(ctx, memoryConfig())
	require.NoError(t, err)

	_, err = container.CommandBus.Send(ctx, commands.CreateProductCommand{
		Submission: fixtures.NewSubmission("Widget", 9.99, -1),
	})
	assert.True(t, apperrors.IsInvalidInput(err))

	result, err := container.QueryBus.Ask(ctx, queries.ListProductsQuery{})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestInitializeContainer_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.EnableMetrics = false

	container, err := InitializeContainer(context.Background(), cfg)

	require.NoError(t, err)
	assert.Nil(t, container.Metrics)
	assert.Nil(t, container.Tracing)
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	cfg := memoryConfig()
	cfg.LogLevel = "loud"

	_, err := ProvideLogger(cfg)

	assert.Error(t, err)
}
