package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Victor-Leroy/winemix/internal/config"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", map[string]any{"tanks": 4})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Tanks)
	assert.Equal(t, domain.AdjacencyContiguous, cfg.Adjacency)
	assert.Equal(t, 1, cfg.Reach)
	assert.Equal(t, "replicate", cfg.Distribution)
	assert.Equal(t, domain.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, "info", cfg.LogLevel)

	dc, err := cfg.Domain()
	require.NoError(t, err)
	assert.Equal(t, 4, dc.NumTanks)
	assert.Equal(t, domain.Contiguous(), dc.Adjacency)
}

func TestLoad_YAMLAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cabernet.txt", "0.2\n0.05\n")
	path := writeFile(t, dir, "bank.yaml", `
tanks: 4
adjacency: window
reach: 2
distribution: split
max_depth: 3
seeds:
  - tank: 0
    mix: [0.25, 0]
  - tank: 2
    file: cabernet.txt
  - tank: 3
    pure: 1
    wines: 2
`)

	cfg, err := config.Load(path, map[string]any{"max_depth": "5", "log_level": "debug"})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxDepth, "overrides win and are weakly typed")
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Seeds, 3)

	dc, err := cfg.Domain()
	require.NoError(t, err)
	assert.Equal(t, domain.WindowAdjacency{Reach: 2}, dc.Adjacency)
	assert.Equal(t, domain.DistributeSplit, dc.Distribution)

	state, err := cfg.InitialState()
	require.NoError(t, err)
	assert.Equal(t, 3, state.UsedTanks())
	assert.Equal(t, []float64{0.25, 0}, state.Mix(0).Values())
	assert.Equal(t, []float64{0.2, 0.05}, state.Mix(2).Values())
	assert.Equal(t, []float64{0, 0.25}, state.Mix(3).Values())
	assert.InDelta(t, 0.75, state.TotalWine(), 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"missing tanks", map[string]any{}},
		{"zero tanks", map[string]any{"tanks": 0}},
		{"unknown adjacency", map[string]any{"tanks": 2, "adjacency": "teleport"}},
		{"unknown distribution", map[string]any{"tanks": 2, "distribution": "pour"}},
		{"unknown key", map[string]any{"tanks": 2, "colour": "red"}},
		{"seed out of range", map[string]any{"tanks": 2, "seeds": []any{map[string]any{"tank": 2, "mix": []any{1}}}}},
		{"seed without source", map[string]any{"tanks": 2, "seeds": []any{map[string]any{"tank": 0}}}},
		{"seed with two sources", map[string]any{"tanks": 2, "seeds": []any{map[string]any{"tank": 0, "mix": []any{1}, "file": "x"}}}},
		{"tank seeded twice", map[string]any{"tanks": 2, "seeds": []any{
			map[string]any{"tank": 1, "mix": []any{0.5}},
			map[string]any{"tank": 1, "mix": []any{0.25}},
		}}},
		{"pure without wines", map[string]any{"tanks": 2, "seeds": []any{map[string]any{"tank": 0, "pure": 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load("", tt.overrides)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		})
	}
}

func TestLoad_DuplicateSeedNamesBothSeeds(t *testing.T) {
	_, err := config.Load("", map[string]any{"tanks": 3, "seeds": []any{
		map[string]any{"tank": 0, "mix": []any{0.5}},
		map[string]any{"tank": 2, "mix": []any{0.5}},
		map[string]any{"tank": 2, "mix": []any{0.25}},
	}})
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "seed 2: tank 2 already seeded by seed 1")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestInitialState_MissingSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bank.yaml", "tanks: 2\nseeds:\n  - tank: 0\n    file: gone.txt\n")
	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	_, err = cfg.InitialState()
	assert.Error(t, err)
}
