package commands

import (
	"product-service/domain/catalog"
)

// CreateProductCommand asks the catalog to create a product together with its
// stock entry.
type CreateProductCommand struct {
	catalog.Submission
}

// Validate validates the CreateProductCommand
func (c CreateProductCommand) Validate() error {
	_, err := catalog.ValidateSubmission(c.Submission)
	return err
}
