package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Victor-Leroy/winemix/internal/logging"
	"github.com/Victor-Leroy/winemix/pkg/adapters/memory"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/ports"
)

// Reasons an exploration stopped before exhausting the state graph.
const (
	LimitMaxDepth  = "max_depth"
	LimitMaxStates = "max_states"
	LimitGoal      = "goal"
	LimitCancelled = "cancelled"
)

// Explorer is a breadth-first driver over State.NextSteps.
// It never looks inside a state beyond the public domain API; every
// discovered state is recorded once in the arena, keyed by content identity.
type Explorer struct {
	arena     ports.StateArena
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxDepth  int
	maxStates int
	goal      func(*domain.State) bool
	now       func() time.Time
}

// ExplorerOption configures an Explorer.
type ExplorerOption func(*Explorer)

// WithArena sets where discovered states are stored (default: in memory).
func WithArena(arena ports.StateArena) ExplorerOption {
	return func(e *Explorer) {
		e.arena = arena
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ExplorerOption {
	return func(e *Explorer) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) ExplorerOption {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithMaxDepth stops expanding states at the given depth. Zero means unbounded.
func WithMaxDepth(depth int) ExplorerOption {
	return func(e *Explorer) {
		e.maxDepth = depth
	}
}

// WithMaxStates stops once the arena holds this many states. Zero means unbounded.
func WithMaxStates(n int) ExplorerOption {
	return func(e *Explorer) {
		e.maxStates = n
	}
}

// WithGoal stops the exploration at the first discovered state satisfying goal.
func WithGoal(goal func(*domain.State) bool) ExplorerOption {
	return func(e *Explorer) {
		e.goal = goal
	}
}

// NewExplorer creates an explorer. Without options it explores the whole
// reachable graph in memory.
func NewExplorer(opts ...ExplorerOption) *Explorer {
	e := &Explorer{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.arena == nil {
		e.arena = memory.NewArena()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Arena returns the arena the explorer writes to.
func (e *Explorer) Arena() ports.StateArena { return e.arena }

// Result summarises one exploration.
type Result struct {
	Root       domain.StateID
	Visited    int // distinct states recorded, root included
	Expanded   int // states whose successors were generated
	Duplicates int // successors already present in the arena
	MaxDepth   int // deepest state recorded

	// Best is the recorded state holding the mix closest to a full bank.
	Best *domain.State

	// Goal is the first state satisfying WithGoal, if any.
	Goal *domain.State

	// Limit names why the search stopped early; empty when the graph was exhausted.
	Limit string
}

// BestMix is the best mix of the best state, or nil.
func (r *Result) BestMix() *domain.Mix {
	if r.Best == nil {
		return nil
	}
	return r.Best.BestMix()
}

// Explore walks the graph reachable from root breadth first.
// On cancellation it returns the partial result together with ctx.Err().
func (e *Explorer) Explore(ctx context.Context, root *domain.State) (*Result, error) {
	if root == nil {
		return nil, errors.New("explore: nil root state")
	}

	res := &Result{Root: root.ID(), MaxDepth: root.Depth()}
	if _, err := e.arena.Put(ctx, ports.Entry{State: root}); err != nil {
		return nil, fmt.Errorf("failed to record root state: %w", err)
	}
	res.Visited = 1
	e.consider(res, root)
	if e.goal != nil && e.goal(root) {
		res.Goal = root
		e.stop(ctx, res, root, LimitGoal)
		return res, nil
	}
	if e.maxStates > 0 && res.Visited >= e.maxStates && e.hasSuccessor(root) {
		e.stop(ctx, res, root, LimitMaxStates)
		return res, nil
	}

	queue := []*domain.State{root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			e.stop(ctx, res, queue[0], LimitCancelled)
			return res, err
		}

		current := queue[0]
		queue = queue[1:]

		if e.maxDepth > 0 && current.Depth() >= e.maxDepth {
			if res.Limit == "" && e.hasSuccessor(current) {
				e.stop(ctx, res, current, LimitMaxDepth)
			}
			continue
		}

		successors, stop, err := e.expand(ctx, res, current, &queue)
		if err != nil {
			return res, err
		}
		res.Expanded++
		e.emitExpanded(ctx, current, successors)
		e.logger.Debug("state expanded",
			"state", current.ID().Short(),
			"depth", current.Depth(),
			"successors", successors,
			"queue", len(queue),
		)
		if stop != "" {
			e.stop(ctx, res, current, stop)
			return res, nil
		}
	}

	e.logger.Info("exploration finished",
		"root", res.Root.Short(),
		"visited", res.Visited,
		"expanded", res.Expanded,
		"duplicates", res.Duplicates,
		"max_depth", res.MaxDepth,
		"limit", res.Limit,
	)
	return res, nil
}

// expand records every successor of current and reports whether a limit
// was hit while doing so.
func (e *Explorer) expand(ctx context.Context, res *Result, current *domain.State, queue *[]*domain.State) (int, string, error) {
	successors := 0
	for step := range current.NextSteps() {
		successors++
		next := step.State

		inserted, err := e.arena.Put(ctx, ports.Entry{
			State:    next,
			Parent:   current.ID(),
			Transfer: step.Transfer,
		})
		if err != nil {
			return successors, "", fmt.Errorf("failed to record state %s: %w", next.ID().Short(), err)
		}
		e.emitTransfer(ctx, current, step, !inserted)
		if !inserted {
			res.Duplicates++
			continue
		}

		res.Visited++
		res.MaxDepth = max(res.MaxDepth, next.Depth())
		e.consider(res, next)
		*queue = append(*queue, next)

		if e.goal != nil && e.goal(next) {
			res.Goal = next
			return successors, LimitGoal, nil
		}
		if e.maxStates > 0 && res.Visited >= e.maxStates {
			return successors, LimitMaxStates, nil
		}
	}
	return successors, "", nil
}

func (e *Explorer) hasSuccessor(s *domain.State) bool {
	for range s.GetNextStates() {
		return true
	}
	return false
}

// consider keeps the state whose best mix is closest to a full bank.
// Earlier states win ties, so shallower answers are preferred.
func (e *Explorer) consider(res *Result, s *domain.State) {
	m := s.BestMix()
	if m == nil {
		return
	}
	if res.Best == nil || domain.TargetDistance(m) < domain.TargetDistance(res.Best.BestMix()) {
		res.Best = s
	}
}

func (e *Explorer) stop(ctx context.Context, res *Result, at *domain.State, reason string) {
	res.Limit = reason
	e.logger.Info("exploration stopped", "reason", reason, "state", at.ID().Short(), "visited", res.Visited)
	if e.hooks.OnLimitReached != nil {
		e.hooks.OnLimitReached(ctx, &domain.LimitEvent{
			EventBase: e.base(domain.EventExplorationLimit, at),
			Reason:    reason,
		})
	}
}

func (e *Explorer) emitExpanded(ctx context.Context, s *domain.State, successors int) {
	if e.hooks.OnStateExpanded == nil {
		return
	}
	e.hooks.OnStateExpanded(ctx, &domain.ExpansionEvent{
		EventBase:  e.base(domain.EventStateExpanded, s),
		Successors: successors,
	})
}

func (e *Explorer) emitTransfer(ctx context.Context, from *domain.State, step domain.Step, duplicate bool) {
	if e.hooks.OnTransferApplied == nil {
		return
	}
	typ := domain.EventTransferApplied
	if duplicate {
		typ = domain.EventStateDuplicate
	}
	e.hooks.OnTransferApplied(ctx, &domain.TransferEvent{
		EventBase: e.base(typ, from),
		Transfer:  step.Transfer,
		NextID:    step.State.ID(),
		Duplicate: duplicate,
	})
}

func (e *Explorer) base(typ domain.EventType, s *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      typ,
		StateID:   s.ID(),
		Depth:     s.Depth(),
	}
}

// Path returns the entries from the root of the arena down to id.
func Path(ctx context.Context, arena ports.StateArena, id domain.StateID) ([]ports.Entry, error) {
	var path []ports.Entry
	for {
		entry, err := arena.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to walk path at %s: %w", id.Short(), err)
		}
		path = append(path, entry)
		if entry.IsRoot() {
			break
		}
		id = entry.Parent
	}
	slices.Reverse(path)
	return path, nil
}
