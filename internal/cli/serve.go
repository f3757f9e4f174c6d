package cli

import (
	"context"

	httpAdapter "github.com/Victor-Leroy/winemix/pkg/adapters/http"
	"github.com/Victor-Leroy/winemix/pkg/observability"
)

// ServeOptions controls the 'serve' command.
type ServeOptions struct {
	Options
	Addr string
}

// RunServe starts the stateless HTTP API and blocks until ctx is cancelled.
func RunServe(ctx context.Context, opts ServeOptions) error {
	level := opts.LogLevel
	if level == "" {
		level = "info"
	}
	logger, err := createLogger(level)
	if err != nil {
		return err
	}
	handler := httpAdapter.NewHandler(
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(observability.NewMetrics()),
	)
	printSystemMessage(opts.out(), "Serving winemix API on %s", opts.Addr)
	return handleExecutionError(httpAdapter.ListenAndServe(ctx, opts.Addr, handler, logger))
}
