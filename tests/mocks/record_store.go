// Package mocks provides testify mocks for the service ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"product-service/application/ports"
	"product-service/domain/events"
)

// MockRecordStore is a mock of ports.RecordStore
type MockRecordStore struct {
	mock.Mock
}

var _ ports.RecordStore = (*MockRecordStore)(nil)

func (m *MockRecordStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	args := m.Called(ctx, collection, key)
	var record ports.Record
	if r := args.Get(0); r != nil {
		record = r.(ports.Record)
	}
	return record, args.Bool(1), args.Error(2)
}

func (m *MockRecordStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	args := m.Called(ctx, collection)
	if r := args.Get(0); r != nil {
		return r.([]ports.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	args := m.Called(ctx, puts)
	return args.Error(0)
}

// MockEventBus is a mock of ports.EventBus
type MockEventBus struct {
	mock.Mock
}

var _ ports.EventBus = (*MockEventBus)(nil)

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
