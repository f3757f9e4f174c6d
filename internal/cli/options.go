package cli

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/Victor-Leroy/winemix"
	"github.com/Victor-Leroy/winemix/internal/config"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Options are shared by every command.
type Options struct {
	// ConfigPath is the YAML configuration; empty uses defaults and overrides only.
	ConfigPath string
	// Overrides take precedence over the configuration file. Keys use the YAML names.
	Overrides map[string]any
	// LogLevel overrides the configured log level when set.
	LogLevel string

	Out io.Writer
	In  io.Reader
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) in() io.Reader {
	if o.In == nil {
		return os.Stdin
	}
	return o.In
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile is Ascii unless w is a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// createEngine loads the configuration and builds an engine with the
// standard CLI logger and hooks.
func createEngine(opts Options, extra ...winemix.Option) (*winemix.Engine, *domain.State, *slog.Logger, error) {
	overrides := maps.Clone(opts.Overrides)
	if opts.LogLevel != "" {
		if overrides == nil {
			overrides = map[string]any{}
		}
		overrides["log_level"] = opts.LogLevel
	}

	cfg, err := config.Load(opts.ConfigPath, overrides)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	bank, err := cfg.Domain()
	if err != nil {
		return nil, nil, nil, err
	}
	root, err := cfg.InitialState()
	if err != nil {
		return nil, nil, nil, err
	}

	engineOpts := []winemix.Option{
		winemix.WithLogger(logger),
		winemix.WithLifecycleHooks(createDebugHooks(logger)),
		winemix.WithLimits(cfg.MaxDepth, cfg.MaxStates),
	}
	engine, err := winemix.New(bank, append(engineOpts, extra...)...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	logger.Debug("Engine Ready", "tanks", bank.NumTanks, "used", root.UsedTanks(), "root", root.ID().Short())
	return engine, root, logger, nil
}
