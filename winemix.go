package winemix

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Victor-Leroy/winemix/internal/config"
	"github.com/Victor-Leroy/winemix/internal/logging"
	"github.com/Victor-Leroy/winemix/internal/runtime"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/ports"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Result summarises one exploration; see Engine.Explore.
type Result = runtime.Result

// Explorer is the breadth-first driver behind Engine.Explore. Its Arena holds
// every state recorded during the run.
type Explorer = runtime.Explorer

// Reasons an exploration stopped early, as reported in Result.Limit.
const (
	LimitMaxDepth  = runtime.LimitMaxDepth
	LimitMaxStates = runtime.LimitMaxStates
	LimitGoal      = runtime.LimitGoal
	LimitCancelled = runtime.LimitCancelled
)

// Engine is the high-level entry point for the winemix library.
// It binds a tank bank configuration to an exploration driver.
type Engine struct {
	config    domain.Configuration
	arena     ports.StateArena
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxDepth  int
	maxStates int
	goal      func(*domain.State) bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks used during exploration.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithArena injects the store for explored states (default: in memory, per exploration).
func WithArena(arena ports.StateArena) Option {
	return func(e *Engine) {
		e.arena = arena
	}
}

// WithLimits bounds explorations by depth and number of states. Zero means unbounded.
func WithLimits(maxDepth, maxStates int) Option {
	return func(e *Engine) {
		e.maxDepth = maxDepth
		e.maxStates = maxStates
	}
}

// WithGoal stops explorations at the first state satisfying goal.
func WithGoal(goal func(*domain.State) bool) Option {
	return func(e *Engine) {
		e.goal = goal
	}
}

// New initializes an Engine for the given tank bank.
func New(cfg domain.Configuration, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eng := &Engine{config: cfg}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng, nil
}

// Load reads a YAML configuration (see internal/config) and returns an
// engine together with the seeded initial state.
func Load(path string, overrides map[string]any, opts ...Option) (*Engine, *domain.State, error) {
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, nil, err
	}
	dc, err := cfg.Domain()
	if err != nil {
		return nil, nil, err
	}
	root, err := cfg.InitialState()
	if err != nil {
		return nil, nil, err
	}
	opts = slices.Insert(opts, 0, WithLimits(cfg.MaxDepth, cfg.MaxStates))
	eng, err := New(dc, opts...)
	if err != nil {
		return nil, nil, err
	}
	return eng, root, nil
}

// Configuration returns the tank bank the engine works on.
func (e *Engine) Configuration() domain.Configuration { return e.config }

// Start builds a depth-0 state with the given tanks filled.
func (e *Engine) Start(seeds map[int]*domain.Mix) (*domain.State, error) {
	state, err := domain.NewState(e.config)
	if err != nil {
		return nil, err
	}
	tanks := make([]int, 0, len(seeds))
	for i := range seeds {
		tanks = append(tanks, i)
	}
	slices.Sort(tanks)
	for _, i := range tanks {
		if state, err = state.WithMix(i, seeds[i]); err != nil {
			return nil, fmt.Errorf("failed to seed tank %d: %w", i, err)
		}
	}
	return state, nil
}

// Next returns every successor of s, in generation order.
func (e *Engine) Next(s *domain.State) []domain.Step {
	return slices.Collect(s.NextSteps())
}

// Apply applies a transfer, logging refusals.
func (e *Engine) Apply(s *domain.State, t domain.Transfer) (*domain.State, error) {
	next, err := s.Apply(t)
	if err != nil {
		e.logger.Warn("transfer refused", "state", s.ID().Short(), "transfer", t.String(), "error", err)
		return nil, err
	}
	return next, nil
}

// Explore runs a breadth-first exploration from root.
// The returned explorer gives access to the arena for path reconstruction.
func (e *Engine) Explore(ctx context.Context, root *domain.State) (*Result, *Explorer, error) {
	opts := []runtime.ExplorerOption{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithMaxDepth(e.maxDepth),
		runtime.WithMaxStates(e.maxStates),
	}
	if e.arena != nil {
		opts = append(opts, runtime.WithArena(e.arena))
	}
	if e.goal != nil {
		opts = append(opts, runtime.WithGoal(e.goal))
	}
	explorer := runtime.NewExplorer(opts...)
	res, err := explorer.Explore(ctx, root)
	return res, explorer, err
}

// Path reconstructs the transfers leading from the exploration root to id.
func (e *Engine) Path(ctx context.Context, explorer *Explorer, id domain.StateID) ([]ports.Entry, error) {
	return runtime.Path(ctx, explorer.Arena(), id)
}
