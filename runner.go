package winemix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// Runner walks the state space interactively: it lists the successors of the
// current state, reads a choice and applies it.
// IO is injected so the loop can be driven from tests or other frontends.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	// Describe renders a state before its successors are listed (default: String).
	Describe func(*domain.State) string
}

// ContentRenderer transforms content before it is written, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run steps from start until the user quits, input ends or a state has no
// successor. It returns the last state reached.
func (r *Runner) Run(engine *Engine, start *domain.State) (*domain.State, error) {
	if r.Input == nil {
		return nil, errors.New("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, errors.New("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)
	describe := r.Describe
	if describe == nil {
		describe = (*domain.State).String
	}

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- winemix stepper ---")
	}

	state := start
	for {
		r.write(describe(state))

		steps := engine.Next(state)
		if len(steps) == 0 {
			fmt.Fprintln(r.Output, "No transfer possible.")
			return state, nil
		}
		for i, step := range steps {
			fmt.Fprintf(r.Output, "%d) %s\n", i+1, step.Transfer)
		}

		choice, ok, err := r.prompt(lines, len(steps))
		if err != nil {
			return state, err
		}
		if !ok {
			return state, nil
		}
		state = steps[choice].State
	}
}

// prompt reads until it gets a valid 1-based choice. ok is false on quit or EOF.
func (r *Runner) prompt(lines *bufio.Reader, n int) (int, bool, error) {
	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lines.ReadString('\n')
		input := strings.TrimSpace(text)
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("input error: %w", err)
		}

		if input == "exit" || input == "quit" {
			fmt.Fprintln(r.Output, "Bye!")
			return 0, false, nil
		}
		choice, convErr := strconv.Atoi(input)
		if convErr == nil && choice >= 1 && choice <= n {
			return choice - 1, true, nil
		}
		fmt.Fprintf(r.Output, "Pick a transfer between 1 and %d.\n", n)
		if err != nil {
			return 0, false, nil
		}
	}
}

func (r *Runner) write(content string) {
	if r.Renderer != nil {
		if rendered, err := r.Renderer(content); err == nil {
			content = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(content))
}
