package ports

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MaxTransactionItems is the largest multi-put a store accepts, matching the
// DynamoDB TransactWriteItems limit.
const MaxTransactionItems = 100

// ErrTransactionAborted is returned by AtomicMultiPut when any write in the
// batch is rejected. Nothing from the batch is visible afterwards.
var ErrTransactionAborted = errors.New("transaction aborted")

// Record is a single stored item, in DynamoDB attribute form
type Record = map[string]types.AttributeValue

// Collection names a logical table and the attribute that holds its key
type Collection struct {
	Name         string
	KeyAttribute string
}

// Put is one write of an atomic multi-put
type Put struct {
	Collection Collection
	Record     Record

	// IfAbsent fails the whole batch when the key already exists
	IfAbsent bool
}

// RecordStore defines the key-value persistence used by the catalog
// This is a port in hexagonal architecture - the catalog doesn't know about the implementation
type RecordStore interface {
	// Get returns the record stored under key. found is false when there is
	// no such record; absence is never an error.
	Get(ctx context.Context, collection Collection, key string) (record Record, found bool, err error)

	// ScanAll returns every record in a collection, in no particular order
	ScanAll(ctx context.Context, collection Collection) ([]Record, error)

	// AtomicMultiPut commits all writes or none of them
	AtomicMultiPut(ctx context.Context, puts []Put) error
}

// CatalogCollections is the pair of collections the catalog reads and writes
type CatalogCollections struct {
	Products Collection
	Stock    Collection
}

// NewCatalogCollections builds the collection pair from table names
func NewCatalogCollections(productsTable, stockTable string) CatalogCollections {
	return CatalogCollections{
		Products: Collection{Name: productsTable, KeyAttribute: "id"},
		Stock:    Collection{Name: stockTable, KeyAttribute: "product_id"},
	}
}

// RecordKey extracts the string key of a record, reporting whether the key
// attribute is present, a string, and non-empty.
func RecordKey(collection Collection, record Record) (string, bool) {
	attr, ok := record[collection.KeyAttribute]
	if !ok {
		return "", false
	}
	s, ok := attr.(*types.AttributeValueMemberS)
	if !ok || s.Value == "" {
		return "", false
	}
	return s.Value, true
}
