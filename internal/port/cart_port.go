package port

import (
	"context"

	"github.com/nikolayk812/neon-eshop/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// SaveCart replaces the persisted items of cart.OwnerID with cart.Items, keeping their order.
	SaveCart(ctx context.Context, cart domain.Cart) error
}
