package repository

import (
	"fmt"

	"github.com/nikolayk812/neon-eshop/internal/domain"
)

// validateItems enforces the line item invariants on both read and write paths.
func validateItems(items []domain.LineItem) error {
	seen := make(map[string]struct{}, len(items))

	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item[%d]: id is empty", i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("item[%s]: duplicated", item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.Quantity < 1 {
			return fmt.Errorf("item[%s]: quantity %d is not positive", item.ID, item.Quantity)
		}
		if item.Price.Amount.IsNegative() {
			return fmt.Errorf("item[%s]: price is negative", item.ID)
		}
	}

	return nil
}
