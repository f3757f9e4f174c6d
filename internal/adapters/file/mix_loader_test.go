package file_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Victor-Leroy/winemix/internal/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMix(t *testing.T) {
	m, err := file.LoadMix(strings.NewReader("0.5\n\n# merlot\n0.25\n  0.25  \n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25, 0.25}, m.Values())
	assert.InDelta(t, 1.0, m.Sum(), 1e-9)
}

func TestLoadMix_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not a number", "0.5\nabc\n", "line 2"},
		{"negative", "-1\n", "negative"},
		{"empty", "\n# nothing\n", "no amounts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.LoadMix(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMixFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blend.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n0\n"), 0o644))

	m, err := file.LoadMixFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, m.Values())

	_, err = file.LoadMixFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
