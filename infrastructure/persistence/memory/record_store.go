// Package memory provides an in-process RecordStore for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"product-service/application/ports"
)

type table struct {
	records map[string]ports.Record
	order   []string
}

// RecordStore keeps records in maps guarded by a single RWMutex. Scans return
// records in insertion order.
type RecordStore struct {
	mu     sync.RWMutex
	tables map[string]*table
}

var _ ports.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates an empty store
func NewRecordStore() *RecordStore {
	return &RecordStore{tables: make(map[string]*table)}
}

// Get implements ports.RecordStore
func (s *RecordStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[collection.Name]
	if !ok {
		return nil, false, nil
	}
	record, ok := t.records[key]
	if !ok {
		return nil, false, nil
	}
	return copyRecord(record), true, nil
}

// ScanAll implements ports.RecordStore
func (s *RecordStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[collection.Name]
	if !ok {
		return []ports.Record{}, nil
	}
	records := make([]ports.Record, 0, len(t.order))
	for _, key := range t.order {
		records = append(records, copyRecord(t.records[key]))
	}
	return records, nil
}

// AtomicMultiPut implements ports.RecordStore. Every write is checked before
// any is applied, all under one write lock.
func (s *RecordStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(puts) == 0 {
		return fmt.Errorf("%w: empty batch", ports.ErrTransactionAborted)
	}
	if len(puts) > ports.MaxTransactionItems {
		return fmt.Errorf("%w: %d items exceeds limit of %d", ports.ErrTransactionAborted, len(puts), ports.MaxTransactionItems)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, len(puts))
	seen := make(map[string]bool, len(puts))
	for i, put := range puts {
		key, ok := ports.RecordKey(put.Collection, put.Record)
		if !ok {
			return fmt.Errorf("%w: write %d has no %q key", ports.ErrTransactionAborted, i, put.Collection.KeyAttribute)
		}
		id := put.Collection.Name + "\x00" + key
		if seen[id] {
			return fmt.Errorf("%w: duplicate key %q in %s", ports.ErrTransactionAborted, key, put.Collection.Name)
		}
		seen[id] = true

		if put.IfAbsent {
			if t, ok := s.tables[put.Collection.Name]; ok {
				if _, exists := t.records[key]; exists {
					return fmt.Errorf("%w: key %q already exists in %s", ports.ErrTransactionAborted, key, put.Collection.Name)
				}
			}
		}
		keys[i] = key
	}

	for i, put := range puts {
		t, ok := s.tables[put.Collection.Name]
		if !ok {
			t = &table{records: make(map[string]ports.Record)}
			s.tables[put.Collection.Name] = t
		}
		if _, exists := t.records[keys[i]]; !exists {
			t.order = append(t.order, keys[i])
		}
		t.records[keys[i]] = copyRecord(put.Record)
	}
	return nil
}

func copyRecord(record ports.Record) ports.Record {
	out := make(ports.Record, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}
