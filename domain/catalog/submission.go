package catalog

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "product-service/pkg/errors"
	"product-service/pkg/utils"
)

// Number is a JSON number that also accepts numeric strings, so "9.99" and
// 9.99 decode to the same value. An empty string decodes to zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", raw, err)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %q", raw)
	}

	*n = Number(f)
	return nil
}

// Submission is the payload accepted when creating a product.
//
// Price uses "required", which rejects a zero price the same way a missing
// one is rejected. Count is a pointer so that an explicit 0 is accepted.
type Submission struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Price       Number  `json:"price" validate:"required,gte=0"`
	Count       *Number `json:"count" validate:"required,gte=0"`
}

// ValidatedSubmission is a Submission that passed ValidateSubmission.
type ValidatedSubmission struct {
	Title       string
	Description string
	Price       float64
	Count       int
}

// ValidateSubmission checks a submission and normalises it. Every rejection is
// an INVALID_INPUT AppError.
func ValidateSubmission(s Submission) (ValidatedSubmission, error) {
	if err := utils.ValidateStruct(s); err != nil {
		return ValidatedSubmission{}, apperrors.NewInvalidInputError(err.Error())
	}

	count := float64(*s.Count)
	if count != math.Trunc(count) || count > math.MaxInt32 {
		return ValidatedSubmission{}, apperrors.NewInvalidInputError("count must be a whole number")
	}

	description := ""
	if s.Description != nil {
		description = *s.Description
	}

	return ValidatedSubmission{
		Title:       s.Title,
		Description: description,
		Price:       float64(s.Price),
		Count:       int(count),
	}, nil
}

// Records builds the product and stock records written for a new product id.
func (v ValidatedSubmission) Records(id string) (Product, StockEntry) {
	product := Product{
		ID:          id,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
	}
	stock := StockEntry{
		ProductID: id,
		Count:     v.Count,
	}
	return product, stock
}
