package cart

import (
	"github.com/nikolayk812/neon-eshop/internal/domain"
)

// State is an immutable copy of a cart with pricing computed at read time.
type State struct {
	OwnerID   string
	Items     []domain.LineItem
	PromoCode string
	Pricing   domain.PricingSnapshot
}

func (s State) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// PromoLocked reports whether the promo input must be disabled.
func (s State) PromoLocked() bool {
	return s.PromoCode != ""
}

func (s State) Item(id string) (domain.LineItem, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// Update is handed to observers after every change.
type Update struct {
	State   State
	Added   []string
	Version uint64
}
