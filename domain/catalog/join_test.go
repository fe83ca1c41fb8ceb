package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinStock(t *testing.T) {
	p1 := Product{ID: "P1", Title: "One", Price: 1}
	p2 := Product{ID: "P2", Title: "Two", Price: 2}
	p3 := Product{ID: "P3", Title: "Three", Price: 3}

	tests := []struct {
		name     string
		products []Product
		entries  []StockEntry
		want     []ProductWithStock
	}{
		{
			name:     "matched and unmatched",
			products: []Product{p1, p2},
			entries:  []StockEntry{{ProductID: "P1", Count: 10}},
			want:     []ProductWithStock{{Product: p1, Stock: 10}, {Product: p2, Stock: 0}},
		},
		{
			name:     "first duplicate wins",
			products: []Product{p1},
			entries:  []StockEntry{{ProductID: "P1", Count: 3}, {ProductID: "P1", Count: 9}},
			want:     []ProductWithStock{{Product: p1, Stock: 3}},
		},
		{
			name:     "orphan stock ignored",
			products: []Product{p3},
			entries:  []StockEntry{{ProductID: "gone", Count: 5}},
			want:     []ProductWithStock{{Product: p3, Stock: 0}},
		},
		{
			name:     "product order kept",
			products: []Product{p3, p1, p2},
			entries:  []StockEntry{{ProductID: "P2", Count: 2}, {ProductID: "P3", Count: 3}, {ProductID: "P1", Count: 1}},
			want:     []ProductWithStock{{Product: p3, Stock: 3}, {Product: p1, Stock: 1}, {Product: p2, Stock: 2}},
		},
		{
			name:     "no products",
			products: nil,
			entries:  []StockEntry{{ProductID: "P1", Count: 1}},
			want:     []ProductWithStock{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinStock(tt.products, tt.entries))
		})
	}
}
