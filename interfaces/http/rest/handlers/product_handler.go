package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"product-service/application/commands"
	"product-service/application/commands/bus"
	"product-service/application/queries"
	querybus "product-service/application/queries/bus"
	"product-service/domain/catalog"
	apperrors "product-service/pkg/errors"
)

// maxBodyBytes caps the create request body
const maxBodyBytes = 1 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListProductsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	products, ok := result.([]catalog.ProductWithStock)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	query := queries.GetProductQuery{ProductID: chi.URLParam(r, "productId")}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	product, ok := result.(*catalog.Product)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var submission catalog.Submission
	if err := decodeBody(r, &submission); err != nil {
		h.errors.Handle(w, r, apperrors.NewInvalidInputError(err.Error()))
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateProductCommand{Submission: submission})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	created, ok := result.(*catalog.CreatedProduct)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func unexpectedResult(result interface{}) error {
	return apperrors.NewInternalError(apperrors.MessageReadFailed).
		WithCause(fmt.Errorf("unexpected handler result %T", result))
}

func (h *ProductHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
