package cart_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/events"
)

// memRepository is an in-memory port.CartRepository with failure injection.
type memRepository struct {
	mu      sync.Mutex
	carts   map[string][]domain.LineItem
	saves   int
	getErr  error
	saveErr error
}

func newMemRepository() *memRepository {
	return &memRepository{carts: make(map[string][]domain.LineItem)}
}

func (r *memRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return domain.Cart{}, r.getErr
	}
	return domain.Cart{OwnerID: ownerID, Items: slices.Clone(r.carts[ownerID])}, nil
}

func (r *memRepository) SaveCart(_ context.Context, cart domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.carts[cart.OwnerID] = slices.Clone(cart.Items)
	return nil
}

func (r *memRepository) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves
}

var errQuotaExceeded = errors.New("quota exceeded")

type recordingPublisher struct {
	events []events.CartUpdated
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.CartUpdated) {
	p.events = append(p.events, ev)
}
