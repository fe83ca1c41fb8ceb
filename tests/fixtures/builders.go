package fixtures

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"

	"product-service/application/ports"
	"product-service/domain/catalog"
)

// ProductBuilder helps create test products with default values
type ProductBuilder struct {
	id          string
	title       string
	description string
	price       float64
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		id:          uuid.NewString(),
		title:       "Test Product",
		description: "Test description",
		price:       10,
	}
}

func (b *ProductBuilder) WithID(id string) *ProductBuilder {
	b.id = id
	return b
}

func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.title = title
	return b
}

func (b *ProductBuilder) WithDescription(description string) *ProductBuilder {
	b.description = description
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

func (b *ProductBuilder) Build() catalog.Product {
	return catalog.Product{
		ID:          b.id,
		Title:       b.title,
		Description: b.description,
		Price:       b.price,
	}
}

// BuildRecord returns the product in stored form
func (b *ProductBuilder) BuildRecord() ports.Record {
	return MustRecord(b.Build())
}

// StockRecord returns a stored stock entry
func StockRecord(productID string, count int) ports.Record {
	return MustRecord(catalog.StockEntry{ProductID: productID, Count: count})
}

// MustRecord marshals v into a record and panics on failure
func MustRecord(v interface{}) ports.Record {
	record, err := attributevalue.MarshalMap(v)
	if err != nil {
		panic(err)
	}
	return record
}

// Collections is the collection pair used across tests
func Collections() ports.CatalogCollections {
	return ports.NewCatalogCollections("products", "stock")
}

// NewSubmission builds a valid submission
func NewSubmission(title string, price float64, count float64) catalog.Submission {
	c := catalog.Number(count)
	return catalog.Submission{
		Title: title,
		Price: catalog.Number(price),
		Count: &c,
	}
}
