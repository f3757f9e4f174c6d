package cli

import (
	"fmt"

	"github.com/Victor-Leroy/winemix/internal/presentation/tui"
	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// ExpandOptions controls the 'expand' command.
type ExpandOptions struct {
	Options
	// Markdown renders the state and successors as markdown (through glamour on a terminal).
	Markdown bool
	// Contents includes the per-tank listing in the plain report.
	Contents bool
}

// RunExpand prints the initial state and each of its successors.
func RunExpand(opts ExpandOptions) error {
	engine, root, _, err := createEngine(opts.Options)
	if err != nil {
		return err
	}
	w := opts.out()
	steps := engine.Next(root)

	if opts.Markdown {
		doc := tui.Markdown(root) + "\n" + successorsMarkdown(steps)
		if isTerminal(w) {
			doc, _ = tui.NewRenderer(100)(doc)
		}
		fmt.Fprint(w, doc)
		return nil
	}

	fmt.Fprintln(w, tui.Banner(colorProfile(w), "expand"))
	fmt.Fprint(w, tui.Report(root, opts.Contents))
	fmt.Fprintf(w, "Successors: %d\n", len(steps))
	for i, step := range steps {
		fmt.Fprintf(w, "%d) %s => %s\n", i+1, step.Transfer, step.State)
	}
	return nil
}

func successorsMarkdown(steps []domain.Step) string {
	if len(steps) == 0 {
		return "_No transfer possible._\n"
	}
	out := "### Successors\n\n| # | Transfer | State | Best Mix |\n|---:|:---|:---|:---|\n"
	for i, step := range steps {
		out += fmt.Sprintf("| %d | `%s` | `%s` | %s |\n", i+1, step.Transfer, step.State.ID().Short(), step.State.BestMix())
	}
	return out
}
