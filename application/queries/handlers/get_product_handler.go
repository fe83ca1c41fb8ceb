package handlers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"go.uber.org/zap"

	"product-service/application/ports"
	"product-service/application/queries"
	"product-service/application/queries/bus"
	"product-service/domain/catalog"
	apperrors "product-service/pkg/errors"
)

const operationGetProduct = "get_product"

// GetProductHandler looks up one product. The result is not joined with stock.
type GetProductHandler struct {
	store       ports.RecordStore
	collections ports.CatalogCollections
	logger      *zap.Logger
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(store ports.RecordStore, collections ports.CatalogCollections, logger *zap.Logger) *GetProductHandler {
	return &GetProductHandler{
		store:       store,
		collections: collections,
		logger:      logger,
	}
}

// Handle implements bus.QueryHandler
func (h *GetProductHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetProductQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.GetProduct(ctx, q)
}

// GetProduct returns the stored product for q.ProductID
func (h *GetProductHandler) GetProduct(ctx context.Context, q queries.GetProductQuery) (*catalog.Product, error) {
	if q.ProductID == "" {
		return nil, apperrors.NewMissingIdentifierError()
	}

	record, found, err := h.store.Get(ctx, h.collections.Products, q.ProductID)
	if err != nil {
		h.logger.Error("Failed to get product",
			zap.String("productID", q.ProductID),
			zap.Error(err),
		)
		return nil, apperrors.NewReadFailedError(operationGetProduct, err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError()
	}

	var product catalog.Product
	if err := attributevalue.UnmarshalMap(record, &product); err != nil {
		return nil, apperrors.NewReadFailedError(operationGetProduct, fmt.Errorf("decode product: %w", err))
	}

	return &product, nil
}
