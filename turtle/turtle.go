package turtle

import (
	"errors"
	"image/color"
	"math"
)

var (
	// ErrNotFinite is returned when a distance or angle argument is NaN or infinite.
	ErrNotFinite = errors.New("turtle: argument is not finite")

	// ErrUnknownColor is returned when a color name is not in the palette.
	ErrUnknownColor = errors.New("turtle: unknown color name")

	// ErrSurfaceUnavailable is returned by session commands issued before
	// Start or after End, or when the render surface has been lost.
	ErrSurfaceUnavailable = errors.New("turtle: render surface unavailable")
)

// Point is a position on the canvas. The origin is the canvas center,
// +X points east and +Y points north. Rendering backends flip Y into
// device rows.
type Point struct {
	X float64
	Y float64
}

// Segment is one drawn piece of the trail.
type Segment struct {
	From      Point
	To        Point
	Color     color.RGBA
	Thickness int
}

const (
	// ThicknessMin and ThicknessMax bound the pen thickness.
	ThicknessMin = 1
	ThicknessMax = 20

	// DefaultThickness is the pen thickness after Reset.
	DefaultThickness = 3

	// NGonSidesMin and NGonSidesMax bound NGon side counts.
	NGonSidesMin = 3
	NGonSidesMax = 72
)

// Turtle is the drawing state machine: position, heading, pen, color and
// the trail of segments drawn so far. It is pure geometry with no
// rendering dependency; a render loop or session replays the trail onto
// a surface. Turtle is not safe for concurrent use; wrap it in a store
// when multiple goroutines command it.
type Turtle struct {
	pos       Point
	heading   float64 // degrees, [0, 360), 0 = east, counter-clockwise positive
	penDown   bool
	color     color.RGBA
	colorName string
	bg        color.RGBA
	bgName    string
	thickness int
	trail     []Segment
}

// New returns a turtle in the default pose: centered, heading 0 (east),
// pen down, red pen on a black background, thickness 3, empty trail.
func New() *Turtle {
	t := &Turtle{}
	t.Reset()
	return t
}

// Reset restores the default pose and clears the trail. Calling it twice
// in a row is the same as calling it once.
func (t *Turtle) Reset() {
	t.pos = Point{}
	t.heading = 0
	t.penDown = true
	t.color, t.colorName = paletteColor(DefaultColorName), DefaultColorName
	t.bg, t.bgName = paletteColor(DefaultBackgroundName), DefaultBackgroundName
	t.thickness = DefaultThickness
	t.trail = nil
}

// Clear empties the trail but keeps the current pose and pen settings.
func (t *Turtle) Clear() {
	t.trail = nil
}

// Move advances the position by distance along the current heading.
// Negative distance moves backward without turning. When the pen is down
// and distance is non-zero, one segment is appended to the trail. A zero
// distance is a no-op: it appends nothing and does not count as a trail
// change.
func (t *Turtle) Move(distance float64) error {
	if !isFinite(distance) {
		return ErrNotFinite
	}
	rad := t.heading * math.Pi / 180
	next := Point{
		X: t.pos.X + distance*math.Cos(rad),
		Y: t.pos.Y + distance*math.Sin(rad),
	}
	return t.moveTo(next, distance != 0)
}

// MoveTo moves to the absolute position (x, y), drawing a segment when
// the pen is down and the position actually changes.
func (t *Turtle) MoveTo(x, y float64) error {
	if !isFinite(x) || !isFinite(y) {
		return ErrNotFinite
	}
	next := Point{X: x, Y: y}
	return t.moveTo(next, next != t.pos)
}

func (t *Turtle) moveTo(next Point, moved bool) error {
	if t.penDown && moved {
		t.trail = append(t.trail, Segment{
			From:      t.pos,
			To:        next,
			Color:     t.color,
			Thickness: t.thickness,
		})
	}
	t.pos = next
	return nil
}

// Turn adds delta degrees to the heading. Positive delta turns
// counter-clockwise (left). The heading stays normalized to [0, 360).
// The trail is untouched.
func (t *Turtle) Turn(delta float64) error {
	if !isFinite(delta) {
		return ErrNotFinite
	}
	t.heading = normalizeHeading(t.heading + delta)
	return nil
}

// SetHeading sets the heading to an absolute angle in degrees.
func (t *Turtle) SetHeading(degrees float64) error {
	if !isFinite(degrees) {
		return ErrNotFinite
	}
	t.heading = normalizeHeading(degrees)
	return nil
}

// AboutFace turns the turtle around without moving it.
func (t *Turtle) AboutFace() {
	t.heading = normalizeHeading(t.heading + 180)
}

// SetPen sets the pen state. There is no immediate drawing effect.
func (t *Turtle) SetPen(down bool) { t.penDown = down }

// PenDown puts the pen on the canvas; movement will draw.
func (t *Turtle) PenDown() { t.penDown = true }

// PenUp lifts the pen; movement will reposition without drawing.
func (t *Turtle) PenUp() { t.penDown = false }

// TogglePen flips the pen state and returns the new state.
func (t *Turtle) TogglePen() bool {
	t.penDown = !t.penDown
	return t.penDown
}

// SetColor sets the pen color for subsequently drawn segments. Existing
// trail segments keep the color they were drawn with.
func (t *Turtle) SetColor(c color.RGBA) {
	t.color = c
	t.colorName = ""
}

// SetColorName sets the pen color from the named palette.
func (t *Turtle) SetColorName(name string) error {
	c, ok := lookupColor(name)
	if !ok {
		return ErrUnknownColor
	}
	t.color = c
	t.colorName = name
	return nil
}

// CycleColor advances the pen color to the next palette entry and
// returns the new name.
func (t *Turtle) CycleColor() string {
	t.colorName = nextColorName(t.colorName)
	t.color = paletteColor(t.colorName)
	return t.colorName
}

// SetBackground sets the canvas background color. The caller is expected
// to trigger a full redraw; the trail itself is unchanged.
func (t *Turtle) SetBackground(c color.RGBA) {
	t.bg = c
	t.bgName = ""
}

// SetBackgroundName sets the background from the named palette.
func (t *Turtle) SetBackgroundName(name string) error {
	c, ok := lookupColor(name)
	if !ok {
		return ErrUnknownColor
	}
	t.bg = c
	t.bgName = name
	return nil
}

// CycleBackground advances the background to the next palette entry and
// returns the new name.
func (t *Turtle) CycleBackground() string {
	t.bgName = nextColorName(t.bgName)
	t.bg = paletteColor(t.bgName)
	return t.bgName
}

// SetThickness sets the pen thickness, clamped to [ThicknessMin, ThicknessMax].
func (t *Turtle) SetThickness(n int) {
	if n < ThicknessMin {
		n = ThicknessMin
	}
	if n > ThicknessMax {
		n = ThicknessMax
	}
	t.thickness = n
}

// Position returns the current position.
func (t *Turtle) Position() Point { return t.pos }

// Heading returns the current heading in degrees, in [0, 360).
func (t *Turtle) Heading() float64 { return t.heading }

// Pen reports whether the pen is down.
func (t *Turtle) Pen() bool { return t.penDown }

// Color returns the current pen color.
func (t *Turtle) Color() color.RGBA { return t.color }

// ColorName returns the palette name of the pen color, or "" when the
// color was set directly.
func (t *Turtle) ColorName() string { return t.colorName }

// Background returns the canvas background color.
func (t *Turtle) Background() color.RGBA { return t.bg }

// BackgroundName returns the palette name of the background, or "".
func (t *Turtle) BackgroundName() string { return t.bgName }

// Thickness returns the current pen thickness.
func (t *Turtle) Thickness() int { return t.thickness }

// TrailLen returns the number of segments drawn so far.
func (t *Turtle) TrailLen() int { return len(t.trail) }

// Trail returns a copy of the whole trail in drawing order.
func (t *Turtle) Trail() []Segment {
	return t.TrailSince(0)
}

// TrailSince returns a copy of the segments appended at or after index n.
// It is the incremental-rendering primitive: a loop that has already
// drawn n segments asks only for the tail.
func (t *Turtle) TrailSince(n int) []Segment {
	if n < 0 {
		n = 0
	}
	if n >= len(t.trail) {
		return nil
	}
	out := make([]Segment, len(t.trail)-n)
	copy(out, t.trail[n:])
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
