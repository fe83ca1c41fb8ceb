package decorators

import (
	"context"
	"time"

	"product-service/application/ports"
)

// StoreRecorder receives one observation per store call
type StoreRecorder interface {
	RecordStoreOperation(operation, collection string, duration time.Duration, err error)
}

// MeteredStore reports the outcome and latency of every store call
type MeteredStore struct {
	inner    ports.RecordStore
	recorder StoreRecorder
}

// NewMeteredStore wraps a store with metrics
func NewMeteredStore(inner ports.RecordStore, recorder StoreRecorder) *MeteredStore {
	return &MeteredStore{inner: inner, recorder: recorder}
}

func (s *MeteredStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	start := time.Now()
	record, found, err := s.inner.Get(ctx, collection, key)
	s.recorder.RecordStoreOperation("get", collection.Name, time.Since(start), err)
	return record, found, err
}

func (s *MeteredStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	start := time.Now()
	records, err := s.inner.ScanAll(ctx, collection)
	s.recorder.RecordStoreOperation("scan_all", collection.Name, time.Since(start), err)
	return records, err
}

// AtomicMultiPut labels the observation with the first collection written
func (s *MeteredStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	start := time.Now()
	err := s.inner.AtomicMultiPut(ctx, puts)
	collection := ""
	if len(puts) > 0 {
		collection = puts[0].Collection.Name
	}
	s.recorder.RecordStoreOperation("atomic_multi_put", collection, time.Since(start), err)
	return err
}
