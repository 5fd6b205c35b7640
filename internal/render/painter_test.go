package render

import (
	"context"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// recordingSurface counts primitive calls so tests can pin the
// incremental-vs-full contract.
type recordingSurface struct {
	segments int
	clears   int
	presents int
	failNext bool
}

func (r *recordingSurface) Start(ctx context.Context) error { return nil }
func (r *recordingSurface) Stop() error                     { return nil }
func (r *recordingSurface) Size() (int, int)                { return 100, 100 }
func (r *recordingSurface) Clear(bg color.RGBA)             { r.clears++ }
func (r *recordingSurface) DrawSegment(seg turtle.Segment)  { r.segments++ }
func (r *recordingSurface) DrawHUD(snap state.Snapshot)     {}

func (r *recordingSurface) Present() error {
	if r.failNext {
		return turtle.ErrSurfaceUnavailable
	}
	r.presents++
	return nil
}

func TestPainterIncrementalDrawsEachSegmentOnce(t *testing.T) {
	surface := &recordingSurface{}
	painter := NewPainter(surface)
	store := state.NewStore()

	const moves = 10
	for i := 0; i < moves; i++ {
		require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(5) }))
		require.NoError(t, painter.Incremental(store))
	}
	assert.Equal(t, moves, surface.segments, "each segment drawn exactly once")
	assert.Equal(t, 0, surface.clears, "incremental path never clears")
	assert.Equal(t, moves, painter.Drawn())
}

func TestPainterIncrementalCatchesUp(t *testing.T) {
	surface := &recordingSurface{}
	painter := NewPainter(surface)
	store := state.NewStore()

	// Several commands land before one draw; the tail is flushed in one go.
	for i := 0; i < 4; i++ {
		require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(5) }))
	}
	require.NoError(t, painter.Incremental(store))
	assert.Equal(t, 4, surface.segments)

	// Nothing new to draw: no segment calls, still a present.
	require.NoError(t, painter.Incremental(store))
	assert.Equal(t, 4, surface.segments)
	assert.Equal(t, 2, surface.presents)
}

func TestPainterFullReplaysWholeTrail(t *testing.T) {
	surface := &recordingSurface{}
	painter := NewPainter(surface)
	store := state.NewStore()

	for i := 0; i < 6; i++ {
		require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(5) }))
	}
	require.NoError(t, painter.Incremental(store))
	surface.segments = 0

	require.NoError(t, painter.Full(store))
	assert.Equal(t, 6, surface.segments, "full redraw replays len(trail) segments")
	assert.Equal(t, 1, surface.clears)
}

func TestPainterDetectsTrailShrink(t *testing.T) {
	surface := &recordingSurface{}
	painter := NewPainter(surface)
	store := state.NewStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(5) }))
	}
	require.NoError(t, painter.Incremental(store))

	// Reset shrinks the trail under the painter; the next incremental
	// draw must recover with a full redraw instead of missing segments.
	require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { tt.Reset(); return nil }))
	require.NoError(t, store.Apply(func(tt *turtle.Turtle) error { return tt.Move(5) }))
	require.NoError(t, painter.Incremental(store))

	assert.Equal(t, 1, surface.clears)
	assert.Equal(t, 1, painter.Drawn())
}

func TestPainterPropagatesSurfaceFailure(t *testing.T) {
	surface := &recordingSurface{failNext: true}
	painter := NewPainter(surface)
	store := state.NewStore()

	err := painter.Refresh(store)
	assert.ErrorIs(t, err, turtle.ErrSurfaceUnavailable)
}
