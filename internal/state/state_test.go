package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penniesfromkevin/goturtle/turtle"
)

func TestSnapshotReflectsPose(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Apply(func(tt *turtle.Turtle) error {
		if err := tt.Turn(90); err != nil {
			return err
		}
		return tt.Move(10)
	}))

	snap := store.Snapshot()
	assert.InDelta(t, 90, snap.Heading, 1e-9)
	assert.InDelta(t, 10, snap.Position.Y, 1e-9)
	assert.Equal(t, 1, snap.TrailLen)
	assert.True(t, snap.PenDown)
	assert.Equal(t, turtle.DefaultColorName, snap.ColorName)
}

func TestApplyPropagatesError(t *testing.T) {
	store := NewStore()
	err := store.Apply(func(tt *turtle.Turtle) error { return tt.SetColorName("nope") })
	assert.ErrorIs(t, err, turtle.ErrUnknownColor)
	assert.Equal(t, turtle.DefaultColorName, store.Snapshot().ColorName)
}

func TestTrailSinceReturnsTail(t *testing.T) {
	store := NewStore()
	for i := 0; i < 4; i++ {
		require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(1) }))
	}
	assert.Len(t, store.Trail(), 4)
	assert.Len(t, store.TrailSince(1), 3)
	assert.Empty(t, store.TrailSince(4))
}

func TestConcurrentCommands(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.Apply(func(tt *turtle.Turtle) error { return tt.Move(1) })
				_ = store.Snapshot()
				_ = store.TrailSince(0)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, store.Snapshot().TrailLen)
}
