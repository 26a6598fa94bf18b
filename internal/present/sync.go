package present

import (
	"bytes"
	"html/template"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/neon-eshop/internal/cart"
	"go.uber.org/zap"
)

// Frame is the output of one render cycle: every surface rendered from the same View.
type Frame struct {
	Version   uint64
	View      View
	Fragments map[string]template.HTML
}

func (f *Frame) Fragment(name string) template.HTML {
	if f == nil {
		return ""
	}
	return f.Fragments[name]
}

// WithRejectedPromo returns a copy of f whose promo surface shows the
// invalid code message. f itself is shared and left untouched.
func (f *Frame) WithRejectedPromo() (*Frame, error) {
	if f == nil {
		return nil, nil
	}
	if _, ok := f.Fragments[SurfacePromo]; !ok {
		return f, nil
	}

	view := RejectPromo(f.View)

	var buf bytes.Buffer
	if err := promoSurface.Render(&buf, view); err != nil {
		return nil, err
	}

	fragments := maps.Clone(f.Fragments)
	fragments[SurfacePromo] = template.HTML(buf.String())

	return &Frame{Version: f.Version, View: view, Fragments: fragments}, nil
}

// Sync re-renders all surfaces of one cart on every update. A frame replaces
// the previous one only when every surface rendered.
type Sync struct {
	surfaces []Surface
	frame    atomic.Pointer[Frame]
	logger   *zap.Logger
}

func NewSync(logger *zap.Logger, surfaces ...Surface) *Sync {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(surfaces) == 0 {
		surfaces = DefaultSurfaces()
	}

	return &Sync{
		surfaces: surfaces,
		logger:   logger,
	}
}

func (s *Sync) Handle(u cart.Update) {
	view := Project(u.State, u.Added)

	fragments := make(map[string]template.HTML, len(s.surfaces))
	for _, surface := range s.surfaces {
		var buf bytes.Buffer
		if err := surface.Render(&buf, view); err != nil {
			s.logger.Error("surface render failed, keeping previous frame",
				zap.String("owner_id", u.State.OwnerID),
				zap.String("surface", surface.Name()),
				zap.Uint64("version", u.Version),
				zap.Error(err))
			return
		}
		// rendered by html/template, already escaped
		fragments[surface.Name()] = template.HTML(buf.String())
	}

	next := &Frame{Version: u.Version, View: view, Fragments: fragments}
	for {
		current := s.frame.Load()
		if current != nil && current.Version >= next.Version {
			return
		}
		if s.frame.CompareAndSwap(current, next) {
			return
		}
	}
}

// Frame returns the latest complete frame, or nil before the first render.
func (s *Sync) Frame() *Frame {
	return s.frame.Load()
}

// Hub keeps one Sync per cart owner.
type Hub struct {
	mu       sync.RWMutex
	syncs    map[string]hubEntry
	surfaces []Surface
	logger   *zap.Logger
}

type hubEntry struct {
	sync        *Sync
	unsubscribe func()
}

func NewHub(logger *zap.Logger, surfaces ...Surface) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(surfaces) == 0 {
		surfaces = DefaultSurfaces()
	}

	return &Hub{
		syncs:    make(map[string]hubEntry),
		surfaces: surfaces,
		logger:   logger,
	}
}

// Attach subscribes a new Sync to store. Use as a cart.OnCreate hook.
func (h *Hub) Attach(store *cart.Store) {
	s := NewSync(h.logger, h.surfaces...)
	unsubscribe := store.Subscribe(s.Handle)

	h.mu.Lock()
	previous, ok := h.syncs[store.OwnerID()]
	h.syncs[store.OwnerID()] = hubEntry{sync: s, unsubscribe: unsubscribe}
	h.mu.Unlock()

	if ok {
		previous.unsubscribe()
	}
}

// Detach drops the Sync of ownerID. Use as a cart.OnEvict hook.
func (h *Hub) Detach(ownerID string) {
	h.mu.Lock()
	entry, ok := h.syncs[ownerID]
	delete(h.syncs, ownerID)
	h.mu.Unlock()

	if ok {
		entry.unsubscribe()
	}
}

func (h *Hub) Frame(ownerID string) *Frame {
	h.mu.RLock()
	entry, ok := h.syncs[ownerID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}
	return entry.sync.Frame()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.syncs)
}
