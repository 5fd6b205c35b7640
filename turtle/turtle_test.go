package turtle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPose(t *testing.T) {
	tt := New()
	assert.Equal(t, Point{}, tt.Position())
	assert.Equal(t, 0.0, tt.Heading())
	assert.True(t, tt.Pen())
	assert.Equal(t, DefaultColorName, tt.ColorName())
	assert.Equal(t, DefaultBackgroundName, tt.BackgroundName())
	assert.Equal(t, DefaultThickness, tt.Thickness())
	assert.Equal(t, 0, tt.TrailLen())
}

func TestMoveAlongHeading(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Move(10))
	assert.InDelta(t, 10, tt.Position().X, 1e-9)
	assert.InDelta(t, 0, tt.Position().Y, 1e-9)

	// +Y is north and positive turns are counter-clockwise: after a
	// left turn of 90 the turtle moves straight up.
	require.NoError(t, tt.Turn(90))
	require.NoError(t, tt.Move(10))
	assert.InDelta(t, 10, tt.Position().X, 1e-9)
	assert.InDelta(t, 10, tt.Position().Y, 1e-9)
}

func TestMoveBackward(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Move(-5))
	assert.InDelta(t, -5, tt.Position().X, 1e-9)
	assert.Equal(t, 0.0, tt.Heading(), "backward movement must not turn")
}

func TestHeadingStaysNormalized(t *testing.T) {
	tt := New()
	for _, delta := range []float64{720, -45, -720, 359.5, 0.5, -0.25, 123456.78, -98765.4} {
		require.NoError(t, tt.Turn(delta))
		h := tt.Heading()
		assert.GreaterOrEqual(t, h, 0.0, "turn(%v)", delta)
		assert.Less(t, h, 360.0, "turn(%v)", delta)
	}
}

func TestTurnRoundTrip(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Turn(37.5))
	before := tt.Heading()
	require.NoError(t, tt.Turn(123.4))
	require.NoError(t, tt.Turn(-123.4))
	assert.InDelta(t, before, tt.Heading(), 1e-9)
}

func TestNonFiniteArgumentsRejected(t *testing.T) {
	tt := New()
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, tt.Move(bad), ErrNotFinite)
		assert.ErrorIs(t, tt.Turn(bad), ErrNotFinite)
		assert.ErrorIs(t, tt.SetHeading(bad), ErrNotFinite)
		assert.ErrorIs(t, tt.MoveTo(bad, 0), ErrNotFinite)
		assert.ErrorIs(t, tt.MoveTo(0, bad), ErrNotFinite)
	}
	// Rejected input leaves the state untouched.
	assert.Equal(t, Point{}, tt.Position())
	assert.Equal(t, 0.0, tt.Heading())
	assert.Equal(t, 0, tt.TrailLen())
}

func TestPenSemantics(t *testing.T) {
	tt := New()
	tt.PenUp()
	for i := 0; i < 5; i++ {
		require.NoError(t, tt.Move(3))
	}
	assert.Equal(t, 0, tt.TrailLen(), "pen-up moves must not draw")

	tt.PenDown()
	for i := 1; i <= 4; i++ {
		require.NoError(t, tt.Move(3))
		assert.Equal(t, i, tt.TrailLen(), "each pen-down move appends exactly one segment")
	}

	// Zero distance is a no-op even with the pen down.
	require.NoError(t, tt.Move(0))
	assert.Equal(t, 4, tt.TrailLen())
}

func TestSegmentRecordsPenStateAtDrawTime(t *testing.T) {
	tt := New()
	require.NoError(t, tt.SetColorName("blue"))
	tt.SetThickness(7)
	require.NoError(t, tt.Move(10))

	require.NoError(t, tt.SetColorName("green"))
	trail := tt.Trail()
	require.Len(t, trail, 1)
	blue, _ := lookupColor("blue")
	assert.Equal(t, blue, trail[0].Color, "changing color must not recolor the existing trail")
	assert.Equal(t, 7, trail[0].Thickness)
	assert.Equal(t, Point{}, trail[0].From)
	assert.InDelta(t, 10, trail[0].To.X, 1e-9)
}

func TestResetIdempotent(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Move(5))
	require.NoError(t, tt.Turn(45))
	tt.PenUp()
	tt.SetThickness(9)

	tt.Reset()
	first := *tt
	tt.Reset()
	assert.Equal(t, first, *tt, "reset twice equals reset once")
	assert.Equal(t, 0, tt.TrailLen())
	assert.True(t, tt.Pen())
}

func TestClearKeepsPose(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Move(5))
	require.NoError(t, tt.Turn(30))
	pos, heading := tt.Position(), tt.Heading()

	tt.Clear()
	assert.Equal(t, 0, tt.TrailLen())
	assert.Equal(t, pos, tt.Position())
	assert.Equal(t, heading, tt.Heading())
}

func TestEndToEndScenario(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Move(5))
	require.NoError(t, tt.Turn(90))
	require.NoError(t, tt.Move(5))
	assert.Equal(t, 2, tt.TrailLen())

	tt.Reset()
	assert.Equal(t, 0, tt.TrailLen())
	assert.Equal(t, 0.0, tt.Heading())
	assert.Equal(t, Point{}, tt.Position())
}

func TestTrailSince(t *testing.T) {
	tt := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, tt.Move(2))
	}
	assert.Len(t, tt.TrailSince(0), 5)
	assert.Len(t, tt.TrailSince(3), 2)
	assert.Nil(t, tt.TrailSince(5))
	assert.Len(t, tt.TrailSince(-1), 5)
}

func TestThicknessClamped(t *testing.T) {
	tt := New()
	tt.SetThickness(0)
	assert.Equal(t, ThicknessMin, tt.Thickness())
	tt.SetThickness(999)
	assert.Equal(t, ThicknessMax, tt.Thickness())
}

func TestColorCycleCoversPalette(t *testing.T) {
	tt := New()
	seen := map[string]bool{tt.ColorName(): true}
	for i := 0; i < len(ColorNames())-1; i++ {
		seen[tt.CycleColor()] = true
	}
	assert.Len(t, seen, len(ColorNames()), "cycling visits every palette color")

	assert.ErrorIs(t, tt.SetColorName("mauve-ish"), ErrUnknownColor)
}

func TestAboutFace(t *testing.T) {
	tt := New()
	require.NoError(t, tt.Turn(30))
	tt.AboutFace()
	assert.InDelta(t, 210, tt.Heading(), 1e-9)
	tt.AboutFace()
	assert.InDelta(t, 30, tt.Heading(), 1e-9)
}
