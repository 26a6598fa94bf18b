package events

import (
	"context"
	"slices"
	"sync"
)

// AddedTracker remembers which line items were appended per owner until the
// client has played their entry animation.
type AddedTracker struct {
	mu    sync.Mutex
	added map[string][]string
}

func NewAddedTracker() *AddedTracker {
	return &AddedTracker{added: make(map[string][]string)}
}

func (t *AddedTracker) Handle(_ context.Context, ev CartUpdated) {
	if len(ev.Added) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ev.Added {
		if !slices.Contains(t.added[ev.OwnerID], id) {
			t.added[ev.OwnerID] = append(t.added[ev.OwnerID], id)
		}
	}
}

// Take returns and forgets the ids recorded for ownerID.
func (t *AddedTracker) Take(ownerID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := t.added[ownerID]
	delete(t.added, ownerID)
	return ids
}

func (t *AddedTracker) Forget(ownerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.added, ownerID)
}
