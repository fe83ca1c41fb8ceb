package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"product-service/application/commands"
	"product-service/application/commands/bus"
	"product-service/application/ports"
	"product-service/domain/catalog"
	"product-service/domain/events"
	apperrors "product-service/pkg/errors"
)

const operationCreateProduct = "create_product"

// CreateProductHandler writes a product and its stock entry in one atomic
// operation.
type CreateProductHandler struct {
	store       ports.RecordStore
	collections ports.CatalogCollections
	eventBus    ports.EventBus
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time
}

// NewCreateProductHandler creates a new handler instance
func NewCreateProductHandler(
	store ports.RecordStore,
	collections ports.CatalogCollections,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreateProductHandler {
	return &CreateProductHandler{
		store:       store,
		collections: collections,
		eventBus:    eventBus,
		logger:      logger,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Handle implements bus.CommandHandler
func (h *CreateProductHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreateProductCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.CreateProduct(ctx, c)
}

// CreateProduct validates the submission, then commits the product and stock
// records. Either both records exist afterwards or neither does.
func (h *CreateProductHandler) CreateProduct(ctx context.Context, cmd commands.CreateProductCommand) (*catalog.CreatedProduct, error) {
	submission, err := catalog.ValidateSubmission(cmd.Submission)
	if err != nil {
		return nil, err
	}

	id := h.newID()
	product, stock := submission.Records(id)

	productItem, err := attributevalue.MarshalMap(product)
	if err != nil {
		return nil, apperrors.NewWriteFailedError(operationCreateProduct, fmt.Errorf("marshal product: %w", err))
	}
	stockItem, err := attributevalue.MarshalMap(stock)
	if err != nil {
		return nil, apperrors.NewWriteFailedError(operationCreateProduct, fmt.Errorf("marshal stock: %w", err))
	}

	puts := []ports.Put{
		{Collection: h.collections.Products, Record: productItem, IfAbsent: true},
		{Collection: h.collections.Stock, Record: stockItem, IfAbsent: true},
	}
	if err := h.store.AtomicMultiPut(ctx, puts); err != nil {
		h.logger.Error("Failed to create product",
			zap.String("productID", id),
			zap.Error(err),
		)
		return nil, apperrors.NewWriteFailedError(operationCreateProduct, err)
	}

	created := &catalog.CreatedProduct{Product: product, Count: stock.Count}

	h.logger.Info("Product created",
		zap.String("productID", id),
		zap.Int("count", stock.Count),
	)

	h.publishCreated(ctx, *created)

	return created, nil
}

// publishCreated never fails the create; the records are already committed.
func (h *CreateProductHandler) publishCreated(ctx context.Context, created catalog.CreatedProduct) {
	if h.eventBus == nil {
		return
	}
	event := events.NewProductCreated(created, h.now())
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish product created event",
			zap.String("productID", created.ID),
			zap.Error(err),
		)
	}
}
