package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateExpanded    EventType = "state_expanded"
	EventTransferApplied  EventType = "transfer_applied"
	EventStateDuplicate   EventType = "state_duplicate"
	EventExplorationLimit EventType = "exploration_limit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	StateID   StateID   `json:"state_id"`
	Depth     int       `json:"depth"`
}

// ExpansionEvent is emitted once a state's successors have all been generated.
type ExpansionEvent struct {
	EventBase
	Successors int `json:"successors"`
}

// TransferEvent is emitted for every successor produced by a transfer.
// Duplicate is set when the successor had already been seen.
type TransferEvent struct {
	EventBase
	Transfer  Transfer `json:"transfer"`
	NextID    StateID  `json:"next_id"`
	Duplicate bool     `json:"duplicate,omitempty"`
}

// LimitEvent is emitted when an exploration stops before exhausting the graph.
type LimitEvent struct {
	EventBase
	Reason string `json:"reason"`
}

// LifecycleHooks defines callbacks for exploration observability.
type LifecycleHooks struct {
	OnStateExpanded   func(context.Context, *ExpansionEvent)
	OnTransferApplied func(context.Context, *TransferEvent)
	OnLimitReached    func(context.Context, *LimitEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateExpanded:   chain(h.OnStateExpanded, other.OnStateExpanded),
		OnTransferApplied: chain(h.OnTransferApplied, other.OnTransferApplied),
		OnLimitReached:    chain(h.OnLimitReached, other.OnLimitReached),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
