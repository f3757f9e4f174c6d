package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Victor-Leroy/winemix/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBank writes a 4-tank configuration with two half-filled end tanks.
func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	doc := `tanks: 4
log_level: error
seeds:
  - tank: 0
    mix: [0.25, 0]
  - tank: 3
    mix: [0, 0.25]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRunExpand(t *testing.T) {
	var out bytes.Buffer
	err := RunExpand(ExpandOptions{
		Options:  Options{ConfigPath: writeBank(t), Out: &out},
		Contents: true,
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "winemix expand")
	assert.Contains(t, got, "Used Tanks: 2")
	assert.Contains(t, got, "Tank 4: 0.25 (0, 0.25)")
	assert.Contains(t, got, "Successors: 2")
	assert.Contains(t, got, "1) {0} -> {1} =>")
	assert.Contains(t, got, "2) {3} -> {2} =>")
}

func TestRunExpand_Markdown(t *testing.T) {
	var out bytes.Buffer
	err := RunExpand(ExpandOptions{
		Options:  Options{ConfigPath: writeBank(t), Out: &out},
		Markdown: true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "### Successors")
	assert.Contains(t, out.String(), "| 1 | `{0} -> {1}` |")
}

func TestRunExpand_BadConfig(t *testing.T) {
	err := RunExpand(ExpandOptions{Options: Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading configuration")

	err = RunExpand(ExpandOptions{Options: Options{Overrides: map[string]any{"tanks": 2}, LogLevel: "loud"}})
	assert.Error(t, err)
}

func TestRunExplore(t *testing.T) {
	var out bytes.Buffer
	metrics := observability.NewMetrics()
	err := RunExplore(context.Background(), ExploreOptions{
		Options: Options{
			ConfigPath: writeBank(t),
			Overrides:  map[string]any{"max_depth": 2},
			Out:        &out,
		},
		Full:    true,
		Metrics: metrics,
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Visited:")
	assert.Contains(t, got, "Max Depth: 2")
	assert.Contains(t, got, "Stopped: max_depth")
	assert.Contains(t, got, "Best Mix: (0.25, 0)")
	assert.Contains(t, got, "Path:")
	assert.Contains(t, got, "Tank Contents:")
	assert.Positive(t, testutil.ToFloat64(metrics.StatesExpanded))
}

func TestRunExplore_Mermaid(t *testing.T) {
	var out bytes.Buffer
	err := RunExplore(context.Background(), ExploreOptions{
		Options: Options{ConfigPath: writeBank(t), Overrides: map[string]any{"max_depth": 1}, Out: &out},
		Mermaid: true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
	assert.Contains(t, out.String(), `-- "{0} -> {1}" -->`)
	assert.Contains(t, out.String(), "class ")
}

func TestRunExplore_Goal(t *testing.T) {
	var out bytes.Buffer
	err := RunExplore(context.Background(), ExploreOptions{
		Options: Options{ConfigPath: writeBank(t), Out: &out},
		Goal:    0.8,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Stopped: goal")
	assert.Contains(t, out.String(), ">>> Goal reached at depth 0.")
}

func TestRunStep(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	var out bytes.Buffer
	err := RunStep(sc, StepOptions{
		Options: Options{ConfigPath: writeBank(t), In: strings.NewReader("2\nquit\n"), Out: &out},
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "1) {0} -> {1}")
	assert.Contains(t, got, "Depth: 1")
	assert.Contains(t, got, "Bye!")
	assert.Contains(t, got, ">>> Finished at depth 1.")
	assert.Nil(t, sc.Signal())
}

func TestRunStep_Cancelled(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()

	var out bytes.Buffer
	err := RunStep(sc, StepOptions{
		Options:  Options{ConfigPath: writeBank(t), In: strings.NewReader("1\n"), Out: &out},
		Headless: true,
	})
	assert.NoError(t, err, "interruptions exit cleanly")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(fmt.Errorf("input error: %w", errInterrupted)))

	boom := errors.New("boom")
	assert.ErrorIs(t, handleExecutionError(boom), boom)
}

func TestInterruptibleReader(t *testing.T) {
	cancel := make(chan struct{})
	r := NewInterruptibleReader(strings.NewReader("abc"), cancel)

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	close(cancel)
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, errInterrupted)
}
