package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies; states are small.
const maxBodyBytes = 1 << 20

// Defaults for the work a single request may ask for.
const (
	DefaultMaxTanks = 64
	DefaultMaxSteps = 1024
)

// Server exposes the transition engine over HTTP.
type Server struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	maxTanks int
	maxSteps int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records expansions and serves them on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMaxTanks caps the bank size accepted in requests (default DefaultMaxTanks).
func WithMaxTanks(n int) Option {
	return func(s *Server) {
		s.maxTanks = n
	}
}

// WithMaxSteps caps the successors returned by /next (default DefaultMaxSteps).
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{maxTanks: DefaultMaxTanks, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics != nil {
		s.hooks = s.metrics.Hooks()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	r.Route("/v1/states", func(r chi.Router) {
		r.Post("/next", s.Next)
		r.Post("/apply", s.Apply)
		r.Post("/best", s.Best)
		r.Post("/validate", s.Validate)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Next handles POST /v1/states/next.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	var body StateRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := body.toDomain(s.maxTanks)
	if err != nil {
		s.fail(w, "Next", err)
		return
	}

	resp := NextResponse{Steps: []StepDTO{}}
	for step := range state.NextSteps() {
		if len(resp.Steps) >= s.maxSteps {
			resp.Truncated = true
			break
		}
		resp.Steps = append(resp.Steps, StepDTO{
			Transfer: transferFromDomain(step.Transfer),
			State:    stateFromDomain(step.State),
		})
		if s.hooks.OnTransferApplied != nil {
			s.hooks.OnTransferApplied(r.Context(), &domain.TransferEvent{
				EventBase: s.event(domain.EventTransferApplied, state),
				Transfer:  step.Transfer,
				NextID:    step.State.ID(),
			})
		}
	}
	if s.hooks.OnStateExpanded != nil {
		s.hooks.OnStateExpanded(r.Context(), &domain.ExpansionEvent{
			EventBase:  s.event(domain.EventStateExpanded, state),
			Successors: len(resp.Steps),
		})
	}
	s.logger.Debug("Next: expanded", "state", state.ID().Short(), "successors", len(resp.Steps), "truncated", resp.Truncated)
	s.respond(w, "Next", resp)
}

// Apply handles POST /v1/states/apply.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := body.State.toDomain(s.maxTanks)
	if err != nil {
		s.fail(w, "Apply", err)
		return
	}
	transfer, err := body.Transfer.toDomain()
	if err != nil {
		s.fail(w, "Apply", err)
		return
	}
	next, err := state.Apply(transfer)
	if err != nil {
		s.fail(w, "Apply", err)
		return
	}
	s.respond(w, "Apply", stateFromDomain(next))
}

// Best handles POST /v1/states/best.
func (s *Server) Best(w http.ResponseWriter, r *http.Request) {
	var body StateRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := body.toDomain(s.maxTanks)
	if err != nil {
		s.fail(w, "Best", err)
		return
	}

	resp := BestResponse{Tank: -1}
	best := state.BestMix()
	if best != nil {
		d := domain.TargetDistance(best)
		resp.Mix = best.Values()
		resp.TargetDistance = &d
		for i, m := range state.Mixes() {
			if m == best {
				resp.Tank = i
				break
			}
		}
	}
	s.respond(w, "Best", resp)
}

// Validate handles POST /v1/states/validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body StateRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := body.toDomain(s.maxTanks)
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}

	resp := ValidateResponse{Valid: true}
	for _, check := range []func() error{state.CheckTotalWine, state.CheckTankAmounts} {
		if err := check(); err != nil {
			resp.Valid = false
			resp.Errors = append(resp.Errors, err.Error())
		}
	}
	s.respond(w, "Validate", resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrMalformedTankGroup),
		errors.Is(err, domain.ErrDimensionMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransfer):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
	s.logger.Warn(op+" failed", "status", status, "error", err)
}

func (s *Server) respond(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(op+" response encode failed", "error", err)
	}
}

func (s *Server) event(typ domain.EventType, state *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		StateID:   state.ID(),
		Depth:     state.Depth(),
	}
}

// ListenAndServe runs handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
