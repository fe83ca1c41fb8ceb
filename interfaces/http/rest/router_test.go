package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"product-service/infrastructure/config"
	"product-service/infrastructure/di"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.LogLevel = "error"

	container, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)

	router := NewRouter(container.CommandBus, container.QueryBus, container.Metrics, RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout(),
	}, zap.NewNop())
	return router.Setup()
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CreateThenRead(t *testing.T) {
	server := newTestServer(t)

	rec := serve(server, http.MethodPost, "/products", `{"title":"Widget","price":9.99,"count":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, map[string]interface{}{
		"id":          id,
		"title":       "Widget",
		"description": "",
		"price":       9.99,
		"count":       float64(4),
	}, created)

	rec = serve(server, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var product map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, map[string]interface{}{
		"id":          id,
		"title":       "Widget",
		"description": "",
		"price":       9.99,
	}, product)

	rec = serve(server, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, float64(4), list[0]["stock"])
	assert.Equal(t, id, list[0]["id"])
}

func TestRouter_NumericStringsAreAccepted(t *testing.T) {
	server := newTestServer(t)

	rec := serve(server, http.MethodPost, "/products", `{"title":"Phone","description":"d","price":"549","count":"7"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, float64(549), created["price"])
	assert.Equal(t, float64(7), created["count"])
}

func TestRouter_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		errType string
		message string
	}{
		{"negative count", http.MethodPost, "/products", `{"title":"Widget","price":9.99,"count":-1}`, 400, "INVALID_INPUT", "Invalid product data"},
		{"missing title", http.MethodPost, "/products", `{"price":9.99,"count":1}`, 400, "INVALID_INPUT", "Invalid product data"},
		{"zero price", http.MethodPost, "/products", `{"title":"Widget","price":0,"count":1}`, 400, "INVALID_INPUT", "Invalid product data"},
		{"malformed json", http.MethodPost, "/products", `{"title":`, 400, "INVALID_INPUT", "Invalid product data"},
		{"empty body", http.MethodPost, "/products", "", 400, "INVALID_INPUT", "Invalid product data"},
		{"unknown id", http.MethodGet, "/products/does-not-exist", "", 404, "NOT_FOUND", "Product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			rec := serve(server, tt.method, tt.path, tt.body)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, true, body["error"])
			assert.Equal(t, tt.errType, body["type"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestRouter_RejectedCreateLeavesCatalogUnchanged(t *testing.T) {
	server := newTestServer(t)

	rec := serve(server, http.MethodPost, "/products", `{"title":"Widget","price":9.99,"count":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(server, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_CORSHeadersOnEveryResponse(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/products", "/products/missing", "/health"} {
		rec := serve(server, http.MethodGet, path, "")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"), path)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	server := newTestServer(t)

	rec := serve(server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	serve(server, http.MethodGet, "/products", "")

	rec = serve(server, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `product_service_http_requests_total{method="GET",route="/products`)
}
