package tests

import (
	"context"
	"testing"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateArenaContract runs a suite of tests to verify that a StateArena implementation
// adheres to the defined interface contract. The arena must start empty.
func RunStateArenaContract(t *testing.T, arena ports.StateArena) {
	t.Helper()
	ctx := context.Background()
	cfg := domain.NewConfiguration(3)

	root, err := domain.NewStateWithContents(cfg, []*domain.Mix{domain.NewMix(1), nil, nil}, 0)
	require.NoError(t, err)
	move := domain.Transfer{From: domain.MustTankGroup(0), To: domain.MustTankGroup(1)}
	child, err := root.Apply(move)
	require.NoError(t, err)

	t.Run("Put and Get", func(t *testing.T) {
		inserted, err := arena.Put(ctx, ports.Entry{State: root})
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = arena.Put(ctx, ports.Entry{State: child, Parent: root.ID(), Transfer: move})
		require.NoError(t, err)
		assert.True(t, inserted)

		got, err := arena.Get(ctx, child.ID())
		require.NoError(t, err)
		assert.Equal(t, child.ID(), got.ID())
		assert.Equal(t, root.ID(), got.Parent)
		assert.Equal(t, move.String(), got.Transfer.String())
		assert.False(t, got.IsRoot())

		got, err = arena.Get(ctx, root.ID())
		require.NoError(t, err)
		assert.True(t, got.IsRoot())
	})

	t.Run("Duplicate Keeps First", func(t *testing.T) {
		again, err := domain.NewStateWithContents(cfg, child.Contents(), 7)
		require.NoError(t, err)

		inserted, err := arena.Put(ctx, ports.Entry{State: again})
		require.NoError(t, err)
		assert.False(t, inserted)

		got, err := arena.Get(ctx, child.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, got.State.Depth())
	})

	t.Run("Len", func(t *testing.T) {
		n, err := arena.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Entries In Insertion Order", func(t *testing.T) {
		entries, err := arena.Entries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, root.ID(), entries[0].ID())
		assert.Equal(t, child.ID(), entries[1].ID())
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := arena.Get(ctx, domain.StateID{1})
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, arena.Reset(ctx))
		n, err := arena.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		entries, err := arena.Entries(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
		_, err = arena.Get(ctx, root.ID())
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})
}
