package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"product-service/domain/catalog"
	"product-service/domain/events"
	"product-service/tests/fixtures"
)

type mockPutEvents struct {
	mock.Mock
}

func (m *mockPutEvents) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*eventbridge.PutEventsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func productCreated(id string) events.DomainEvent {
	product := fixtures.NewProductBuilder().WithID(id).Build()
	return events.NewProductCreated(catalog.CreatedProduct{Product: product, Count: 3}, time.Unix(1700000000, 0).UTC())
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)

	var input *eventbridge.PutEventsInput
	client.On("PutEvents", ctx, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*eventbridge.PutEventsInput) }).
		Return(&eventbridge.PutEventsOutput{}, nil)

	publisher := NewPublisher(client, "catalog-bus", nil, zap.NewNop())

	err := publisher.Publish(ctx, productCreated("p1"))

	require.NoError(t, err)
	require.Len(t, input.Entries, 1)
	entry := input.Entries[0]
	assert.Equal(t, "catalog-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, events.SourceProductService, aws.ToString(entry.Source))
	assert.Equal(t, "product.created", aws.ToString(entry.DetailType))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "p1", detail["aggregate_id"])
	assert.Equal(t, float64(3), detail["count"])
}

func TestPublisher_PublishBatchChunks(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)

	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 10
	})).Return(&eventbridge.PutEventsOutput{}, nil).Twice()
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 3
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	batch := make([]events.DomainEvent, 23)
	for i := range batch {
		batch[i] = productCreated(fixtures.NewProductBuilder().Build().ID)
	}

	err := NewPublisher(client, "catalog-bus", nil, zap.NewNop()).PublishBatch(ctx, batch)

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPublisher_FailedEntries(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)

	client.On("PutEvents", ctx, mock.Anything).Return(&eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries: []types.PutEventsResultEntry{
			{ErrorCode: aws.String("InternalFailure"), ErrorMessage: aws.String("try again")},
		},
	}, nil)

	err := NewPublisher(client, "catalog-bus", nil, zap.NewNop()).Publish(ctx, productCreated("p1"))

	assert.EqualError(t, err, "1 events failed to publish")
}

func TestPublisher_ClientError(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)
	apiErr := errors.New("access denied")
	client.On("PutEvents", ctx, mock.Anything).Return(nil, apiErr)

	err := NewPublisher(client, "catalog-bus", nil, zap.NewNop()).Publish(ctx, productCreated("p1"))

	assert.ErrorIs(t, err, apiErr)
}

func TestPublisher_EmptyBatch(t *testing.T) {
	client := new(mockPutEvents)

	err := NewPublisher(client, "catalog-bus", nil, zap.NewNop()).PublishBatch(context.Background(), nil)

	require.NoError(t, err)
	client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(zap.NewNop())

	assert.NoError(t, p.Publish(context.Background(), productCreated("p1")))
	assert.NoError(t, p.PublishBatch(context.Background(), []events.DomainEvent{productCreated("p2")}))
}
