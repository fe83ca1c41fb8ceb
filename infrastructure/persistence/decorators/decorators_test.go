package decorators

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"product-service/application/ports"
	"product-service/infrastructure/persistence/memory"
	"product-service/tests/fixtures"
	"product-service/tests/mocks"
)

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) RecordStoreOperation(operation, collection string, duration time.Duration, err error) {
	m.Called(operation, collection, err)
}

func TestTracedStore_RecordsSpans(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	cols := fixtures.Collections()

	store := NewTracedStore(memory.NewRecordStore(), provider.Tracer("test"))

	require.NoError(t, store.AtomicMultiPut(ctx, []ports.Put{
		{Collection: cols.Products, Record: fixtures.NewProductBuilder().WithID("p1").BuildRecord()},
	}))
	_, found, err := store.Get(ctx, cols.Products, "p1")
	require.NoError(t, err)
	require.True(t, found)
	require.Error(t, store.AtomicMultiPut(ctx, nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "store.AtomicMultiPut", spans[0].Name)
	assert.Equal(t, "store.Get", spans[1].Name)
	assert.Equal(t, codes.Unset, spans[1].Status.Code)
	assert.Equal(t, codes.Error, spans[2].Status.Code)
}

func TestMeteredStore_ReportsEveryCall(t *testing.T) {
	ctx := context.Background()
	recorder := new(recorderMock)
	cols := fixtures.Collections()

	recorder.On("RecordStoreOperation", "atomic_multi_put", "products", nil).Once()
	recorder.On("RecordStoreOperation", "get", "products", nil).Once()
	recorder.On("RecordStoreOperation", "scan_all", "stock", nil).Once()

	store := NewMeteredStore(memory.NewRecordStore(), recorder)

	require.NoError(t, store.AtomicMultiPut(ctx, []ports.Put{
		{Collection: cols.Products, Record: fixtures.NewProductBuilder().WithID("p1").BuildRecord()},
	}))
	_, _, err := store.Get(ctx, cols.Products, "p1")
	require.NoError(t, err)
	_, err = store.ScanAll(ctx, cols.Stock)
	require.NoError(t, err)

	recorder.AssertExpectations(t)
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockRecordStore)
	cols := fixtures.Collections()
	storeErr := errors.New("connection refused")

	inner.On("ScanAll", ctx, cols.Products).Return(nil, storeErr).Times(5)

	config := DefaultCircuitBreakerConfig("test")
	store := NewBreakerStore(inner, config, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := store.ScanAll(ctx, cols.Products)
		require.ErrorIs(t, err, storeErr)
	}

	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.ScanAll(ctx, cols.Products)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	inner.AssertExpectations(t)
}

func TestBreakerStore_AbortsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockRecordStore)
	aborted := fmt.Errorf("%w: condition failed", ports.ErrTransactionAborted)

	inner.On("AtomicMultiPut", ctx, mock.Anything).Return(aborted)

	store := NewBreakerStore(inner, DefaultCircuitBreakerConfig("test"), zap.NewNop())

	for i := 0; i < 10; i++ {
		err := store.AtomicMultiPut(ctx, []ports.Put{})
		require.ErrorIs(t, err, ports.ErrTransactionAborted)
	}

	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestBreakerStore_PassesResultsThrough(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockRecordStore)
	cols := fixtures.Collections()
	record := fixtures.NewProductBuilder().WithID("p1").BuildRecord()

	inner.On("Get", ctx, cols.Products, "p1").Return(record, true, nil)
	inner.On("Get", ctx, cols.Products, "p2").Return(nil, false, nil)

	store := NewBreakerStore(inner, DefaultCircuitBreakerConfig("test"), zap.NewNop())

	got, found, err := store.Get(ctx, cols.Products, "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, record, got)

	got, found, err = store.Get(ctx, cols.Products, "p2")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}
