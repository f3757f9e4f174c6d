package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "winemix version ")
}

func TestExpandCommand_EmptyBank(t *testing.T) {
	got := execute(t, "expand", "--tanks", "3", "--log-level", "error")
	assert.Contains(t, got, "Used Tanks: 0")
	assert.Contains(t, got, "Successors: 0")
}
