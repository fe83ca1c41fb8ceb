// Package decorators wraps a ports.RecordStore with cross-cutting behaviour:
// tracing, metrics and a circuit breaker.
package decorators

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"product-service/application/ports"
)

// TracedStore starts a span around every store call
type TracedStore struct {
	inner  ports.RecordStore
	tracer trace.Tracer
}

// NewTracedStore wraps a store with tracing
func NewTracedStore(inner ports.RecordStore, tracer trace.Tracer) *TracedStore {
	return &TracedStore{inner: inner, tracer: tracer}
}

func (s *TracedStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	ctx, span := s.tracer.Start(ctx, "store.Get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.collection", collection.Name),
			attribute.String("db.key", key),
		),
	)
	defer span.End()

	record, found, err := s.inner.Get(ctx, collection, key)
	span.SetAttributes(attribute.Bool("db.found", found))
	recordError(span, err)
	return record, found, err
}

func (s *TracedStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	ctx, span := s.tracer.Start(ctx, "store.ScanAll",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.collection", collection.Name)),
	)
	defer span.End()

	records, err := s.inner.ScanAll(ctx, collection)
	span.SetAttributes(attribute.Int("db.items", len(records)))
	recordError(span, err)
	return records, err
}

func (s *TracedStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	names := make([]string, 0, len(puts))
	for _, put := range puts {
		names = append(names, put.Collection.Name)
	}

	ctx, span := s.tracer.Start(ctx, "store.AtomicMultiPut",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.StringSlice("db.collections", names),
			attribute.Int("db.items", len(puts)),
		),
	)
	defer span.End()

	err := s.inner.AtomicMultiPut(ctx, puts)
	recordError(span, err)
	return err
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
