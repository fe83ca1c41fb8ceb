package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"product-service/application/ports"
)

// Collector holds all Prometheus metrics for the service. Each collector owns
// its registry, so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	ProductsCreated prometheus.Counter
	EventsPublished *prometheus.CounterVec

	// Dispatch metrics
	Dispatches       *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	productsCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Total number of products created",
		},
	)

	eventsPublished := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events sent to the event bus",
		},
		[]string{"event_type", "status"},
	)

	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Total number of commands and queries dispatched",
		},
		[]string{"kind", "name", "status"},
	)

	dispatchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Command and query handling duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind", "name"},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of record store operations",
		},
		[]string{"operation", "collection", "status"},
	)

	storeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Record store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		productsCreated,
		eventsPublished,
		dispatches,
		dispatchDuration,
		storeOperations,
		storeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		registry:         registry,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		ProductsCreated:  productsCreated,
		EventsPublished:  eventsPublished,
		Dispatches:       dispatches,
		DispatchDuration: dispatchDuration,
		StoreOperations:  storeOperations,
		StoreDuration:    storeDuration,
	}
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDispatch records a handled command or query. A successful
// CreateProductCommand also counts as a created product.
func (c *Collector) RecordDispatch(kind, name string, duration time.Duration, err error) {
	c.Dispatches.WithLabelValues(kind, name, statusLabel(err)).Inc()
	c.DispatchDuration.WithLabelValues(kind, name).Observe(duration.Seconds())
	if err == nil && name == "CreateProductCommand" {
		c.ProductsCreated.Inc()
	}
}

// RecordStoreOperation records one record store call
func (c *Collector) RecordStoreOperation(operation, collection string, duration time.Duration, err error) {
	c.StoreOperations.WithLabelValues(operation, collection, storeStatusLabel(err)).Inc()
	c.StoreDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}

// RecordEventPublished records one event handed to the event bus
func (c *Collector) RecordEventPublished(eventType string, err error) {
	c.EventsPublished.WithLabelValues(eventType, statusLabel(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func storeStatusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ports.ErrTransactionAborted):
		return "aborted"
	default:
		return "error"
	}
}
