package winemix_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Victor-Leroy/winemix"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTankEngine(t *testing.T) (*winemix.Engine, *domain.State) {
	t.Helper()
	eng, err := winemix.New(domain.NewConfiguration(2))
	require.NoError(t, err)
	root, err := eng.Start(map[int]*domain.Mix{0: domain.NewMix(0.5)})
	require.NoError(t, err)
	return eng, root
}

func TestRunner_StepsUntilQuit(t *testing.T) {
	eng, root := twoTankEngine(t)
	var out bytes.Buffer
	r := winemix.NewRunner()
	r.Input = strings.NewReader("1\n1\nquit\n")
	r.Output = &out

	last, err := r.Run(eng, root)
	require.NoError(t, err)

	assert.Equal(t, 2, last.Depth())
	assert.Equal(t, root.ID(), last.ID(), "wine moved back to where it started")
	assert.Contains(t, out.String(), "--- winemix stepper ---")
	assert.Contains(t, out.String(), "1) {0} -> {1}")
	assert.Contains(t, out.String(), "1) {1} -> {0}")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunner_RepromptsOnBadChoice(t *testing.T) {
	eng, root := twoTankEngine(t)
	var out bytes.Buffer
	r := &winemix.Runner{
		Input:    strings.NewReader("9\nabc\n1"),
		Output:   &out,
		Headless: true,
	}

	last, err := r.Run(eng, root)
	require.NoError(t, err)
	assert.Equal(t, 1, last.Depth())
	assert.Equal(t, 2, strings.Count(out.String(), "Pick a transfer between 1 and 1."))
	assert.NotContains(t, out.String(), "\n> ")
}

func TestRunner_StopsWithoutSuccessors(t *testing.T) {
	eng, err := winemix.New(domain.NewConfiguration(1))
	require.NoError(t, err)
	root, err := eng.Start(map[int]*domain.Mix{0: domain.NewMix(1)})
	require.NoError(t, err)

	var out bytes.Buffer
	r := &winemix.Runner{Input: strings.NewReader(""), Output: &out, Headless: true}
	last, err := r.Run(eng, root)
	require.NoError(t, err)
	assert.Same(t, root, last)
	assert.Contains(t, out.String(), "No transfer possible.")
}

func TestRunner_RendererAndDescribe(t *testing.T) {
	eng, root := twoTankEngine(t)
	var out bytes.Buffer
	r := &winemix.Runner{
		Input:    strings.NewReader(""),
		Output:   &out,
		Headless: true,
		Describe: func(s *domain.State) string { return "tanks in use: " + s.Mix(0).String() },
		Renderer: func(s string) (string, error) { return strings.ToUpper(s), nil },
	}

	_, err := r.Run(eng, root)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "TANKS IN USE: (0.5)")
}

func TestRunner_RequiresIO(t *testing.T) {
	eng, root := twoTankEngine(t)
	_, err := winemix.NewRunner().Run(eng, root)
	assert.Error(t, err)
}
