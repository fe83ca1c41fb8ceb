package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"product-service/application/commands"
	"product-service/application/commands/bus"
	commandhandlers "product-service/application/commands/handlers"
	"product-service/application/ports"
	"product-service/application/queries"
	querybus "product-service/application/queries/bus"
	queryhandlers "product-service/application/queries/handlers"
	"product-service/infrastructure/config"
	"product-service/infrastructure/messaging/eventbridge"
	"product-service/infrastructure/observability"
	"product-service/infrastructure/persistence/decorators"
	"product-service/infrastructure/persistence/dynamodb"
	"product-service/infrastructure/persistence/memory"
)

const serviceName = "product-service"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at DYNAMODB_ENDPOINT
// when one is configured.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideMetrics returns nil when metrics are disabled
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("product_service")
}

// ProvideTracerProvider returns nil when tracing is disabled
func ProvideTracerProvider(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
}

// ProvideTracer falls back to the global no-op tracer when tracing is off
func ProvideTracer(tp *observability.TracerProvider) trace.Tracer {
	if tp == nil {
		return otel.Tracer(serviceName)
	}
	return tp.Tracer()
}

// ProvideCatalogCollections maps the configured table names to collections
func ProvideCatalogCollections(cfg *config.Config) ports.CatalogCollections {
	return cfg.Catalog()
}

// ProvideRecordStore builds the configured store and wraps it with the
// breaker, metrics and tracing decorators, innermost first.
func ProvideRecordStore(
	cfg *config.Config,
	client *awsdynamodb.Client,
	metrics *observability.Collector,
	tracer trace.Tracer,
	logger *zap.Logger,
) ports.RecordStore {
	var store ports.RecordStore
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Info("Using in-memory record store")
		store = memory.NewRecordStore()
	default:
		store = dynamodb.NewRecordStore(client, logger)
	}

	if cfg.EnableCircuitBreaker {
		store = decorators.NewBreakerStore(store, decorators.DefaultCircuitBreakerConfig("record-store"), logger)
	}
	if metrics != nil {
		store = decorators.NewMeteredStore(store, metrics)
	}
	return decorators.NewTracedStore(store, tracer)
}

// ProvideEventBus publishes to EventBridge, or drops events when no bus is named
func ProvideEventBus(
	cfg *config.Config,
	client *awseventbridge.Client,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopPublisher(logger)
	}

	var recorder eventbridge.PublishRecorder
	if metrics != nil {
		recorder = metrics
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, recorder, logger)
}

// ProvideCreateProductHandler creates the create product command handler
func ProvideCreateProductHandler(
	store ports.RecordStore,
	collections ports.CatalogCollections,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *commandhandlers.CreateProductHandler {
	return commandhandlers.NewCreateProductHandler(store, collections, eventBus, logger)
}

// ProvideGetProductHandler creates the get product query handler
func ProvideGetProductHandler(
	store ports.RecordStore,
	collections ports.CatalogCollections,
	logger *zap.Logger,
) *queryhandlers.GetProductHandler {
	return queryhandlers.NewGetProductHandler(store, collections, logger)
}

// ProvideListProductsHandler creates the list products query handler
func ProvideListProductsHandler(
	store ports.RecordStore,
	collections ports.CatalogCollections,
	logger *zap.Logger,
) *queryhandlers.ListProductsHandler {
	return queryhandlers.NewListProductsHandler(store, collections, logger)
}

// ProvideCommandBus creates the command bus and registers every command handler
func ProvideCommandBus(
	createProduct *commandhandlers.CreateProductHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	middlewares := []bus.Middleware{bus.LoggingMiddleware(logger)}
	if metrics != nil {
		middlewares = append(middlewares, bus.MetricsMiddleware(metrics))
	}

	commandBus := bus.NewCommandBus(middlewares...)
	if err := commandBus.Register(commands.CreateProductCommand{}, createProduct); err != nil {
		return nil, fmt.Errorf("failed to register CreateProductCommand: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus and registers every query handler
func ProvideQueryBus(
	getProduct *queryhandlers.GetProductHandler,
	listProducts *queryhandlers.ListProductsHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	middlewares := []querybus.Middleware{querybus.LoggingMiddleware(logger)}
	if metrics != nil {
		middlewares = append(middlewares, querybus.MetricsMiddleware(metrics))
	}

	queryBus := querybus.NewQueryBus(middlewares...)
	if err := queryBus.Register(queries.GetProductQuery{}, getProduct); err != nil {
		return nil, fmt.Errorf("failed to register GetProductQuery: %w", err)
	}
	if err := queryBus.Register(queries.ListProductsQuery{}, listProducts); err != nil {
		return nil, fmt.Errorf("failed to register ListProductsQuery: %w", err)
	}
	return queryBus, nil
}
