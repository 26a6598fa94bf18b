// Package cart owns shopping cart state. A Store is the only writer of one
// owner's line items and promo code; everything else reads through State or
// observes Updates.
package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/events"
	"github.com/nikolayk812/neon-eshop/internal/port"
	"github.com/nikolayk812/neon-eshop/internal/pricing"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, ev events.CartUpdated)
}

type Observer func(Update)

type Option func(*Store)

func WithEngine(engine *pricing.Engine) Option {
	return func(s *Store) { s.engine = engine }
}

func WithPromoBook(book *pricing.PromoBook) Option {
	return func(s *Store) { s.promos = book }
}

func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store serializes all operations on one cart. Observers and the publisher run
// while the store is locked and must not call back into it.
type Store struct {
	mu sync.Mutex

	ownerID   string
	repo      port.CartRepository
	engine    *pricing.Engine
	promos    *pricing.PromoBook
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time

	items   []domain.LineItem
	promo   *domain.PromoRule
	version uint64
	notices []Notice

	observers    map[uint64]Observer
	observerIDs  []uint64
	nextObserver uint64
}

func NewStore(ownerID string, repo port.CartRepository, opts ...Option) (*Store, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}

	s := &Store{
		ownerID:   ownerID,
		repo:      repo,
		engine:    pricing.DefaultEngine(),
		promos:    pricing.DefaultPromoBook(),
		logger:    zap.NewNop(),
		now:       time.Now,
		observers: make(map[uint64]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(zap.String("owner_id", ownerID))

	return s, nil
}

func (s *Store) OwnerID() string {
	return s.ownerID
}

// Load replaces in-memory items with the persisted ones. Unreadable data
// yields an empty cart; the problem is only logged.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.GetCart(ctx, s.ownerID)
	if err != nil {
		s.logger.Warn("persisted cart is unreadable, starting empty", zap.Error(err))
		cart = domain.Cart{OwnerID: s.ownerID}
	}

	s.items = slices.Clone(cart.Items)
	s.promo = nil
	s.version++

	s.notifyObservers(nil)
}

func (s *Store) AddItem(ctx context.Context, p domain.ProductRef) error {
	if p.ID == "" {
		return ErrEmptyProductID
	}
	if p.Price.Amount.IsNegative() {
		return ErrNegativePrice
	}
	if p.Price.Currency != s.engine.Currency() {
		return fmt.Errorf("%w: %s", ErrCurrencyMismatch, p.Price.Currency)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		platform := p.Platform
		if platform == "" {
			platform = domain.DefaultPlatform
		}

		s.items = append(s.items, domain.LineItem{
			ID:        p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Image:     p.Image,
			Platform:  platform,
			Quantity:  1,
			CreatedAt: s.now().UTC(),
		})
		added = []string{p.ID}
	}

	s.notice(NoticeSuccess, msgAdded)
	s.commit(ctx, true, added)

	return nil
}

// RemoveItem drops the line item with id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(ctx, id)
}

// UpdateQuantity sets the quantity of id; a quantity of zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setQuantityLocked(ctx, id, quantity)
}

func (s *Store) IncreaseQuantity(ctx context.Context, id string) {
	s.adjustQuantity(ctx, id, 1)
}

func (s *Store) DecreaseQuantity(ctx context.Context, id string) {
	s.adjustQuantity(ctx, id, -1)
}

// Clear empties the cart and drops the applied promo code.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.promo = nil

	s.notice(NoticeInfo, msgCleared)
	s.commit(ctx, true, nil)
}

// ApplyPromoCode activates a known promo code. Codes are matched after trimming
// and upper-casing. Once applied the code cannot be replaced until Clear.
func (s *Store) ApplyPromoCode(ctx context.Context, code string) error {
	normalized := pricing.NormalizeCode(code)
	if normalized == "" {
		return ErrEmptyPromoCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.promo != nil {
		s.notice(NoticeInfo, msgPromoLocked)
		return ErrPromoAlreadyApplied
	}

	rule, ok := s.promos.Lookup(normalized)
	if !ok {
		s.notice(NoticeError, msgPromoInvalid)
		return fmt.Errorf("%w: %s", ErrInvalidPromoCode, normalized)
	}

	s.promo = &rule

	total := s.engine.Calculate(s.items, s.promo).Total
	s.notice(NoticeSuccess, fmt.Sprintf("🎉 Promo code applied! Total is now %s!", total.Format()))

	// promo codes live only in memory
	s.commit(ctx, false, nil)

	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

func (s *Store) ItemCount() int {
	return s.State().ItemCount()
}

// TakeNotices returns and forgets the notices queued since the last call.
func (s *Store) TakeNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	notices := s.notices
	s.notices = nil
	return notices
}

// Subscribe registers an observer called after every change with the new state.
// The returned function removes it.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = o
	s.observerIDs = append(s.observerIDs, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.observers, id)
			s.observerIDs = slices.DeleteFunc(s.observerIDs, func(v uint64) bool { return v == id })
		})
	}
}

func (s *Store) adjustQuantity(ctx context.Context, id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.setQuantityLocked(ctx, id, s.items[i].Quantity+delta)
}

func (s *Store) setQuantityLocked(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.removeLocked(ctx, id)
		return
	}

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.items[i].Quantity = quantity
	s.commit(ctx, true, nil)
}

func (s *Store) removeLocked(ctx context.Context, id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.items = slices.Delete(s.items, i, i+1)

	s.notice(NoticeInfo, msgRemoved)
	s.commit(ctx, true, nil)
}

// commit runs the side effects of a mutation: persist, re-render, broadcast.
func (s *Store) commit(ctx context.Context, persist bool, added []string) {
	s.version++

	saved := true
	if persist {
		if err := s.repo.SaveCart(ctx, domain.Cart{OwnerID: s.ownerID, Items: slices.Clone(s.items)}); err != nil {
			saved = false
			s.logger.Warn("cart not persisted", zap.Error(err))
			s.notice(NoticeWarning, msgSaveFailed)
		}
	}

	state := s.notifyObservers(added)

	if s.publisher != nil && saved {
		s.publisher.Publish(ctx, events.CartUpdated{
			OwnerID: s.ownerID,
			Items:   state.Items,
			Total:   state.Pricing.Total,
			Added:   added,
		})
	}
}

func (s *Store) notifyObservers(added []string) State {
	state := s.stateLocked()

	update := Update{State: state, Added: added, Version: s.version}
	for _, id := range s.observerIDs {
		s.observers[id](update)
	}

	return state
}

func (s *Store) stateLocked() State {
	promoCode := ""
	if s.promo != nil {
		promoCode = s.promo.Code
	}

	items := slices.Clone(s.items)

	return State{
		OwnerID:   s.ownerID,
		Items:     items,
		PromoCode: promoCode,
		Pricing:   s.engine.Calculate(items, s.promo),
	}
}

func (s *Store) notice(level NoticeLevel, message string) {
	s.notices = append(s.notices, Notice{Level: level, Message: message})
	if len(s.notices) > maxNotices {
		s.notices = slices.Clone(s.notices[len(s.notices)-maxNotices:])
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item domain.LineItem) bool { return item.ID == id })
}
