package handlers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"product-service/application/ports"
	"product-service/application/queries"
	"product-service/application/queries/bus"
	"product-service/domain/catalog"
	apperrors "product-service/pkg/errors"
)

const operationListProducts = "list_products"

// ListProductsHandler scans products and stock and joins them in memory
type ListProductsHandler struct {
	store       ports.RecordStore
	collections ports.CatalogCollections
	logger      *zap.Logger
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(store ports.RecordStore, collections ports.CatalogCollections, logger *zap.Logger) *ListProductsHandler {
	return &ListProductsHandler{
		store:       store,
		collections: collections,
		logger:      logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ListProductsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListProductsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.ListProducts(ctx, q)
}

// ListProducts returns every product with its stock count, in product scan
// order. Any failure in either scan fails the whole listing.
func (h *ListProductsHandler) ListProducts(ctx context.Context, _ queries.ListProductsQuery) ([]catalog.ProductWithStock, error) {
	var (
		products []catalog.Product
		entries  []catalog.StockEntry
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := h.store.ScanAll(gctx, h.collections.Products)
		if err != nil {
			return fmt.Errorf("scan products: %w", err)
		}
		if err := attributevalue.UnmarshalListOfMaps(records, &products); err != nil {
			return fmt.Errorf("decode products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		records, err := h.store.ScanAll(gctx, h.collections.Stock)
		if err != nil {
			return fmt.Errorf("scan stock: %w", err)
		}
		if err := attributevalue.UnmarshalListOfMaps(records, &entries); err != nil {
			return fmt.Errorf("decode stock: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperrors.NewReadFailedError(operationListProducts, err)
	}

	return catalog.JoinStock(products, entries), nil
}
