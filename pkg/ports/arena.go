package ports

import (
	"context"

	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// Entry is one node of the explored state graph. Edges are kept as parent
// IDs rather than pointers, so entries can be stored and shared freely.
type Entry struct {
	State *domain.State

	// Parent is the ID of the state this one was reached from.
	// It is the zero ID for roots.
	Parent domain.StateID

	// Transfer is the move applied to Parent to reach State.
	Transfer domain.Transfer
}

// ID is shorthand for Entry.State.ID().
func (e Entry) ID() domain.StateID { return e.State.ID() }

// IsRoot reports whether the entry has no parent.
func (e Entry) IsRoot() bool { return e.Parent.IsZero() }

// StateArena owns the states discovered by a search, indexed by content identity.
type StateArena interface {
	// Put records an entry. If a state with the same ID is already present
	// the existing entry is kept and inserted is false.
	Put(ctx context.Context, entry Entry) (inserted bool, err error)

	// Get returns the entry for id.
	// Returns domain.ErrStateNotFound if the ID is unknown.
	Get(ctx context.Context, id domain.StateID) (Entry, error)

	// Entries returns every stored entry in insertion order.
	Entries(ctx context.Context) ([]Entry, error)

	// Len is the number of stored states.
	Len(ctx context.Context) (int, error)

	// Reset drops every entry.
	Reset(ctx context.Context) error
}
