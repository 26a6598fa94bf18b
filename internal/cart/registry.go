package cart

import (
	"context"
	"sync"
	"time"
)

type Factory func(ownerID string) (*Store, error)

type RegistryOption func(*Registry)

// OnCreate hooks run once per store, before its first Load.
func OnCreate(hook func(*Store)) RegistryOption {
	return func(r *Registry) { r.onCreate = append(r.onCreate, hook) }
}

// OnEvict hooks run after a store was forgotten or swept.
func OnEvict(hook func(ownerID string)) RegistryOption {
	return func(r *Registry) { r.onEvict = append(r.onEvict, hook) }
}

type registryEntry struct {
	once     sync.Once
	store    *Store
	err      error
	lastSeen time.Time
}

// Registry holds one Store per browser session. Stores are created and loaded
// on first access.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*registryEntry
	factory  Factory
	onCreate []func(*Store)
	onEvict  []func(ownerID string)
	now      func() time.Time
}

func NewRegistry(factory Factory, opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]*registryEntry),
		factory: factory,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the store of ownerID, creating and loading it on first access.
// A store evicted while it was being created is never handed out; a fresh one
// replaces it.
func (r *Registry) Get(ctx context.Context, ownerID string) (*Store, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	for {
		entry := r.touch(ownerID)

		entry.once.Do(func() {
			entry.store, entry.err = r.factory(ownerID)
			if entry.err != nil {
				return
			}

			for _, hook := range r.onCreate {
				hook(entry.store)
			}
			entry.store.Load(ctx)
		})

		r.mu.Lock()
		current := r.entries[ownerID] == entry
		if current {
			if entry.err != nil {
				delete(r.entries, ownerID)
			} else {
				entry.lastSeen = r.now()
			}
		}
		r.mu.Unlock()

		if entry.err != nil {
			return nil, entry.err
		}
		if current {
			return entry.store, nil
		}
	}
}

func (r *Registry) touch(ownerID string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[ownerID]
	if !ok {
		entry = &registryEntry{}
		r.entries[ownerID] = entry
	}
	entry.lastSeen = r.now()
	return entry
}

func (r *Registry) Forget(ownerID string) {
	r.mu.Lock()
	_, ok := r.entries[ownerID]
	delete(r.entries, ownerID)
	r.mu.Unlock()

	if ok {
		r.evicted([]string{ownerID})
	}
}

// Sweep forgets stores not accessed within idle and returns how many were dropped.
// Their persisted items survive and are reloaded on the next access.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	cutoff := r.now().Add(-idle)
	var dropped []string
	for ownerID, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, ownerID)
			dropped = append(dropped, ownerID)
		}
	}
	r.mu.Unlock()

	r.evicted(dropped)

	return len(dropped)
}

func (r *Registry) evicted(ownerIDs []string) {
	for _, ownerID := range ownerIDs {
		for _, hook := range r.onEvict {
			hook(ownerID)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
