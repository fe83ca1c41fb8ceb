package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"product-service/application/ports"
)

// unitOfWork collects the writes of one atomic multi-put and commits them as a
// single TransactWriteItems call.
type unitOfWork struct {
	client        DynamoDBAPI
	transactItems []types.TransactWriteItem
	keys          map[string]struct{}
}

func newUnitOfWork(client DynamoDBAPI) *unitOfWork {
	return &unitOfWork{
		client:        client,
		transactItems: make([]types.TransactWriteItem, 0),
		keys:          make(map[string]struct{}),
	}
}

// registerPut adds a put, conditional on the key being absent when requested.
// A transaction may touch each item once, so a repeated key aborts the batch.
func (uow *unitOfWork) registerPut(put ports.Put) error {
	key, ok := ports.RecordKey(put.Collection, put.Record)
	if !ok {
		return fmt.Errorf("%w: write %d has no %q key", ports.ErrTransactionAborted, len(uow.transactItems), put.Collection.KeyAttribute)
	}
	id := put.Collection.Name + "\x00" + key
	if _, dup := uow.keys[id]; dup {
		return fmt.Errorf("%w: duplicate key %q in %s", ports.ErrTransactionAborted, key, put.Collection.Name)
	}
	uow.keys[id] = struct{}{}

	item := &types.Put{
		TableName: aws.String(put.Collection.Name),
		Item:      put.Record,
	}

	if put.IfAbsent {
		condition := expression.Name(put.Collection.KeyAttribute).AttributeNotExists()
		expr, err := expression.NewBuilder().WithCondition(condition).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}
		item.ConditionExpression = expr.Condition()
		item.ExpressionAttributeNames = expr.Names()
		item.ExpressionAttributeValues = expr.Values()
	}

	uow.transactItems = append(uow.transactItems, types.TransactWriteItem{Put: item})
	return nil
}

// commit executes all registered writes atomically
func (uow *unitOfWork) commit(ctx context.Context) error {
	if len(uow.transactItems) == 0 {
		return fmt.Errorf("%w: empty batch", ports.ErrTransactionAborted)
	}
	if len(uow.transactItems) > ports.MaxTransactionItems {
		return fmt.Errorf("%w: %d items exceeds limit of %d", ports.ErrTransactionAborted, len(uow.transactItems), ports.MaxTransactionItems)
	}

	_, err := uow.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: uow.transactItems,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return fmt.Errorf("%w: %s: %w", ports.ErrTransactionAborted, cancellationReasons(canceled), err)
		}
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %w", ports.ErrTransactionAborted, err)
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func cancellationReasons(e *types.TransactionCanceledException) string {
	codes := make([]string, 0, len(e.CancellationReasons))
	for _, reason := range e.CancellationReasons {
		codes = append(codes, aws.ToString(reason.Code))
	}
	return "cancellation reasons [" + strings.Join(codes, ", ") + "]"
}
