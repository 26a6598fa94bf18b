// Package events broadcasts cart changes to observers that are not part of the
// cart itself, such as the entry animation tracker or the access log.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"go.uber.org/zap"
)

type CartUpdated struct {
	OwnerID string
	Items   []domain.LineItem
	Total   domain.Money
	// Added lists ids of line items appended by the mutation.
	Added []string
}

type Handler func(ctx context.Context, ev CartUpdated)

// Bus delivers synchronously, in subscription order. Delivery is best effort:
// a panicking handler is logged and skipped.
type Bus struct {
	mu       sync.RWMutex
	handlers map[uint64]Handler
	order    []uint64
	nextID   uint64
	logger   *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bus{
		handlers: make(map[uint64]Handler),
		logger:   logger,
	}
}

// Subscribe registers h and returns a function removing it. Calling the
// returned function more than once is safe.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Bus) Publish(ctx context.Context, ev CartUpdated) {
	for _, h := range b.snapshot() {
		b.deliver(ctx, h, ev)
	}
}

func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.order)
}

func (b *Bus) snapshot() []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	return hs
}

func (b *Bus) deliver(ctx context.Context, h Handler, ev CartUpdated) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("cart event handler panicked",
				zap.String("owner_id", ev.OwnerID),
				zap.Error(fmt.Errorf("panic: %v", r)))
		}
	}()

	h(ctx, ev)
}

// LogHandler writes every cart update to logger at debug level.
func LogHandler(logger *zap.Logger) Handler {
	return func(_ context.Context, ev CartUpdated) {
		logger.Debug("cart updated",
			zap.String("owner_id", ev.OwnerID),
			zap.Int("lines", len(ev.Items)),
			zap.String("total", ev.Total.Amount.StringFixed(2)),
			zap.Strings("added", ev.Added))
	}
}
