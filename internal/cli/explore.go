package cli

import (
	"context"
	"fmt"

	"github.com/Victor-Leroy/winemix"
	"github.com/Victor-Leroy/winemix/internal/presentation/graph"
	"github.com/Victor-Leroy/winemix/internal/presentation/tui"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/observability"
)

// ExploreOptions controls the 'explore' command.
type ExploreOptions struct {
	Options
	// Mermaid prints the explored graph instead of the summary.
	Mermaid bool
	// Full drains the arena and pairs the best state with its path. Ignored by Mermaid.
	Full bool
	// Goal stops at the first state holding a mix within this distance of a
	// full bank. Zero disables it.
	Goal float64
	// Metrics, when set, receives the exploration counters.
	Metrics *observability.Metrics
}

// RunExplore runs a breadth-first exploration from the configured initial state.
func RunExplore(ctx context.Context, opts ExploreOptions) error {
	var extra []winemix.Option
	if opts.Metrics != nil {
		extra = append(extra, winemix.WithLifecycleHooks(opts.Metrics.Hooks()))
	}
	if opts.Goal > 0 {
		extra = append(extra, winemix.WithGoal(func(s *domain.State) bool {
			best := s.BestMix()
			return best != nil && domain.TargetDistance(best) <= opts.Goal
		}))
	}
	engine, root, logger, err := createEngine(opts.Options, extra...)
	if err != nil {
		return err
	}

	res, explorer, err := engine.Explore(ctx, root)
	if err != nil && res == nil {
		return err
	}
	if err != nil {
		logger.Warn("Exploration interrupted", "err", err, "visited", res.Visited)
	}

	w := opts.out()
	if opts.Mermaid {
		entries, lerr := explorer.Arena().Entries(ctx)
		if lerr != nil {
			return lerr
		}
		var overlay *graph.GraphOverlay
		if res.Best != nil {
			overlay = &graph.GraphOverlay{Current: res.Best.ID()}
			path, perr := engine.Path(ctx, explorer, res.Best.ID())
			if perr == nil {
				for _, e := range path {
					overlay.Path = append(overlay.Path, e.ID())
				}
			}
		}
		fmt.Fprint(w, graph.GenerateMermaid(entries, overlay))
		return handleExecutionError(err)
	}

	fmt.Fprintln(w, tui.Banner(colorProfile(w), "explore"))
	fmt.Fprintf(w, "Visited: %d\n", res.Visited)
	fmt.Fprintf(w, "Expanded: %d\n", res.Expanded)
	fmt.Fprintf(w, "Duplicates: %d\n", res.Duplicates)
	fmt.Fprintf(w, "Max Depth: %d\n", res.MaxDepth)
	if res.Limit != "" {
		fmt.Fprintf(w, "Stopped: %s\n", res.Limit)
	}
	if best := res.BestMix(); best != nil {
		fmt.Fprintf(w, "Best Mix: %s (target distance %.3g)\n", best, domain.TargetDistance(best))
	}

	if opts.Full && res.Best != nil {
		path, perr := engine.Path(ctx, explorer, res.Best.ID())
		if perr != nil {
			return perr
		}
		fmt.Fprintln(w, "Path:")
		for _, e := range path {
			if e.IsRoot() {
				fmt.Fprintf(w, "  start %s\n", e.ID().Short())
				continue
			}
			fmt.Fprintf(w, "  %s => %s\n", e.Transfer, e.ID().Short())
		}
		fmt.Fprint(w, tui.Report(res.Best, true))
	}
	if res.Goal != nil {
		printSystemMessage(w, "Goal reached at depth %d.", res.Goal.Depth())
	}
	return handleExecutionError(err)
}
