package cli

import (
	"fmt"

	"github.com/Victor-Leroy/winemix"
	"github.com/Victor-Leroy/winemix/internal/presentation/tui"
	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// StepOptions controls the interactive 'step' command.
type StepOptions struct {
	Options
	Headless bool
}

// RunStep lets the user walk the state space one transfer at a time.
func RunStep(ctx *SignalContext, opts StepOptions) error {
	engine, root, logger, err := createEngine(opts.Options)
	if err != nil {
		return err
	}
	w := opts.out()

	r := winemix.NewRunner()
	r.Input = NewInterruptibleReader(opts.in(), ctx.Done())
	r.Output = w
	r.Headless = opts.Headless
	r.Describe = func(s *domain.State) string { return tui.Report(s, true) }
	if !opts.Headless && isTerminal(w) {
		fmt.Fprintln(w, tui.Banner(colorProfile(w), winemix.Version))
		r.Describe = tui.Markdown
		r.Renderer = winemix.ContentRenderer(tui.NewRenderer(100))
	}

	last, err := r.Run(engine, root)
	if last != nil {
		logger.Info("Stepper finished", "state", last.ID().Short(), "depth", last.Depth())
		if !opts.Headless {
			if ctx.Signal() != nil {
				fmt.Fprintln(w)
				printSystemMessage(w, "Interrupted at depth %d.", last.Depth())
			} else {
				printSystemMessage(w, "Finished at depth %d.", last.Depth())
			}
		}
	}
	return handleExecutionError(err)
}
