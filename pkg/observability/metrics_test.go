package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Victor-Leroy/winemix/internal/runtime"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStateExpanded(ctx, &domain.ExpansionEvent{Successors: 3})
	hooks.OnTransferApplied(ctx, &domain.TransferEvent{})
	hooks.OnTransferApplied(ctx, &domain.TransferEvent{Duplicate: true})
	hooks.OnLimitReached(ctx, &domain.LimitEvent{Reason: runtime.LimitMaxDepth})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatesExpanded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransfersApplied))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatesDuplicated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Limits.WithLabelValues(runtime.LimitMaxDepth)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SuccessorsPerStep))
}

func TestMetrics_WithExplorer(t *testing.T) {
	m := observability.NewMetrics()
	root, err := domain.NewStateWithContents(domain.NewConfiguration(3),
		[]*domain.Mix{domain.NewMix(1), nil, nil}, 0)
	require.NoError(t, err)

	_, err = runtime.NewExplorer(runtime.WithLifecycleHooks(m.Hooks())).Explore(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.StatesExpanded))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.TransfersApplied))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatesDuplicated))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.StatesExpanded.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "winemix_states_expanded_total 1")
}
