package queries

// GetProductQuery fetches a single product by id
type GetProductQuery struct {
	ProductID string
}

// Validate is a no-op; the handler reports a missing id as its own error type.
func (q GetProductQuery) Validate() error {
	return nil
}
