package tui

import (
	"strings"
	"testing"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(t *testing.T) *domain.State {
	t.Helper()
	s, err := domain.NewStateWithContents(domain.NewConfiguration(2),
		[]*domain.Mix{domain.NewMix(0.5, 0.5), nil}, 0)
	require.NoError(t, err)
	return s
}

func TestReport(t *testing.T) {
	s := sampleState(t)
	out := Report(s, true)

	assert.True(t, strings.HasPrefix(out, "State ID: "+s.ID().String()+"\n"))
	assert.Contains(t, out, "Depth: 0\n")
	assert.Contains(t, out, "Volume: 1\n")
	assert.Contains(t, out, "Used Tanks: 1\n")
	assert.Contains(t, out, "Total Wine: 1\n")
	assert.Contains(t, out, "Tank 1: 1 (0.5, 0.5)\n")
	assert.Contains(t, out, "Tank 2: 0 ()\n")

	assert.NotContains(t, Report(s, false), "Tank Contents")
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleState(t))
	assert.Contains(t, out, "- **Used Tanks:** 1 / 2")
	assert.Contains(t, out, "- **Best Mix:** (0.5, 0.5)")
	assert.Contains(t, out, "| 1 | 1 | 2 | (0.5, 0.5) |")
	assert.Contains(t, out, "| 2 | - | - | empty |")
}

func TestBanner_Ascii(t *testing.T) {
	assert.Equal(t, "▌ winemix explore", Banner(termenv.Ascii, "explore"))
	assert.Equal(t, "▌ winemix", Banner(termenv.Ascii, ""))
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(80)
	out, err := render("# Title\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
