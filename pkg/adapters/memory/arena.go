package memory

import (
	"context"
	"sync"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/ports"
)

// Arena implements ports.StateArena in memory.
// Safe for concurrent use. States are immutable, so entries are stored as is.
type Arena struct {
	data  map[domain.StateID]ports.Entry
	order []domain.StateID
	mu    sync.RWMutex
}

var _ ports.StateArena = (*Arena)(nil)

// NewArena creates an empty in-memory arena.
func NewArena() *Arena {
	return &Arena{
		data: make(map[domain.StateID]ports.Entry),
	}
}

// Put stores the entry unless its state is already known.
func (a *Arena) Put(ctx context.Context, entry ports.Entry) (bool, error) {
	id := entry.ID()

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data[id]; ok {
		return false, nil
	}
	a.data[id] = entry
	a.order = append(a.order, id)
	return true, nil
}

// Get retrieves an entry by state ID.
func (a *Arena) Get(ctx context.Context, id domain.StateID) (ports.Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.data[id]
	if !ok {
		return ports.Entry{}, domain.ErrStateNotFound
	}
	return entry, nil
}

// Entries returns every entry in insertion order.
func (a *Arena) Entries(ctx context.Context) ([]ports.Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]ports.Entry, len(a.order))
	for i, id := range a.order {
		out[i] = a.data[id]
	}
	return out, nil
}

// Len returns the number of stored states.
func (a *Arena) Len(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data), nil
}

// Reset drops every entry.
func (a *Arena) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.data)
	a.order = nil
	return nil
}
