package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"product-service/application/ports"
)

// RecordStore implements ports.RecordStore with one DynamoDB table per
// collection.
type RecordStore struct {
	client DynamoDBAPI
	logger *zap.Logger
}

var _ ports.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a new DynamoDB-backed store
func NewRecordStore(client DynamoDBAPI, logger *zap.Logger) *RecordStore {
	return &RecordStore{
		client: client,
		logger: logger,
	}
}

// Get retrieves a record by its key
func (s *RecordStore) Get(ctx context.Context, collection ports.Collection, key string) (ports.Record, bool, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(collection.Name),
		Key: map[string]types.AttributeValue{
			collection.KeyAttribute: &types.AttributeValueMemberS{Value: key},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		s.logAPIError("GetItem", collection.Name, err)
		return nil, false, fmt.Errorf("failed to get item from %s: %w", collection.Name, err)
	}

	if result.Item == nil {
		return nil, false, nil
	}
	return result.Item, true, nil
}

// ScanAll reads every page of a table
func (s *RecordStore) ScanAll(ctx context.Context, collection ports.Collection) ([]ports.Record, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(collection.Name),
	})

	records := make([]ports.Record, 0)
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.logAPIError("Scan", collection.Name, err)
			return nil, fmt.Errorf("failed to scan %s: %w", collection.Name, err)
		}
		records = append(records, page.Items...)
		pages++
	}

	s.logger.Debug("Scanned collection",
		zap.String("table", collection.Name),
		zap.Int("items", len(records)),
		zap.Int("pages", pages),
	)

	return records, nil
}

// AtomicMultiPut writes every record in one DynamoDB transaction
func (s *RecordStore) AtomicMultiPut(ctx context.Context, puts []ports.Put) error {
	uow := newUnitOfWork(s.client)
	for _, put := range puts {
		if err := uow.registerPut(put); err != nil {
			return err
		}
	}

	if err := uow.commit(ctx); err != nil {
		s.logger.Warn("Transaction not committed",
			zap.Int("items", len(puts)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// logAPIError records the DynamoDB error code, when the SDK reports one
func (s *RecordStore) logAPIError(operation, table string, err error) {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return
	}
	s.logger.Warn("DynamoDB request failed",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.String("error_code", ae.ErrorCode()),
		zap.String("fault", ae.ErrorFault().String()),
	)
}
