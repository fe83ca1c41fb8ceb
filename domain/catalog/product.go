// Package catalog holds the product catalog model: products, their stock
// entries, the submission accepted on create and the views returned to callers.
package catalog

// Product is the record stored in the products collection, keyed by ID.
type Product struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Title       string  `json:"title" dynamodbav:"title"`
	Description string  `json:"description" dynamodbav:"description"`
	Price       float64 `json:"price" dynamodbav:"price"`
}

// StockEntry is the record stored in the stock collection, keyed by ProductID.
type StockEntry struct {
	ProductID string `json:"product_id" dynamodbav:"product_id"`
	Count     int    `json:"count" dynamodbav:"count"`
}

// CreatedProduct is the response view of a create: the product plus the
// count that was written to the stock collection.
type CreatedProduct struct {
	Product
	Count int `json:"count"`
}

// ProductWithStock is a product joined with its stock count.
type ProductWithStock struct {
	Product
	Stock int `json:"stock"`
}
