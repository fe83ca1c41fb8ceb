package catalog

// JoinStock attaches stock counts to products by product id. Products keep
// their input order. When several entries share a product id the first one
// wins; a product with no entry gets a stock of 0.
func JoinStock(products []Product, entries []StockEntry) []ProductWithStock {
	counts := make(map[string]int, len(entries))
	for _, entry := range entries {
		if _, seen := counts[entry.ProductID]; seen {
			continue
		}
		counts[entry.ProductID] = entry.Count
	}

	joined := make([]ProductWithStock, 0, len(products))
	for _, product := range products {
		joined = append(joined, ProductWithStock{
			Product: product,
			Stock:   counts[product.ID],
		})
	}
	return joined
}
