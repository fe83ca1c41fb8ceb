package queries

// ListProductsQuery lists every product joined with its stock count
type ListProductsQuery struct{}

// Validate validates the ListProductsQuery
func (q ListProductsQuery) Validate() error {
	return nil
}
