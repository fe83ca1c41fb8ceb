package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required"`
	Price int    `validate:"gte=0"`
	Code  string `validate:"omitempty,uuid"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantErr string
	}{
		{"valid", sample{Name: "abc"}, ""},
		{"required", sample{}, "name is required"},
		{"negative", sample{Name: "abc", Price: -1}, "price must be greater than or equal to 0"},
		{"other tag", sample{Name: "abc", Code: "nope"}, "code is invalid"},
		{"joined", sample{Price: -1}, "name is required; price must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
