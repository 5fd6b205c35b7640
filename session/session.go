// Package session exposes turtle graphics as a library: construct a
// session, Start it to acquire a render surface, issue commands, End it
// to release everything. It is the scripting twin of the interactive
// keyboard loop; commands flow through the same state store and the
// same incremental-draw path.
package session

import (
	"context"
	"image"
	"sync"

	"github.com/penniesfromkevin/goturtle/internal/config"
	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/render"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// Options selects the render surface for a session. The zero value
// renders into memory, which is what scripts and tests almost always
// want; Frame exposes the pixels.
type Options struct {
	// Backend is "memory" (default), "fb" for the Linux framebuffer, or
	// "term" for a terminal canvas.
	Backend string

	// Canvas size in pixels; zero values take the configured defaults.
	CanvasWidth  int
	CanvasHeight int

	// FontPath optionally points at a TTF for the HUD readout.
	FontPath string
}

// Session owns one turtle, one trail and one render surface. Each
// command is synchronous: state mutates, the new segment (if any) is
// drawn, the frame is presented, then the call returns. Commands issued
// before Start or after End fail with turtle.ErrSurfaceUnavailable.
type Session struct {
	mu      sync.Mutex
	store   *state.Store
	surface render.Surface
	painter *render.Painter
	mem     *render.MemSurface
	started bool
	ended   bool
}

// New constructs a session; nothing is acquired until Start.
func New(opts Options) *Session {
	cfg := config.Default()
	if opts.CanvasWidth > 0 {
		cfg.CanvasWidth = opts.CanvasWidth
	}
	if opts.CanvasHeight > 0 {
		cfg.CanvasHeight = opts.CanvasHeight
	}

	s := &Session{store: state.NewStore()}
	switch opts.Backend {
	case "fb":
		fb := render.NewFBSurface(cfg.CanvasWidth, cfg.CanvasHeight)
		fb.FontPath = opts.FontPath
		s.surface = fb
	case "term":
		s.surface = render.NewTermSurface(input.NewBindings(nil))
	default:
		s.mem = render.NewMemSurface(cfg.CanvasWidth, cfg.CanvasHeight)
		s.surface = s.mem
	}
	s.painter = render.NewPainter(s.surface)
	return s
}

// Start acquires the surface and presents the first (empty) frame.
// A session cannot be restarted after End.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return turtle.ErrSurfaceUnavailable
	}
	if s.started {
		return nil
	}
	if err := s.surface.Start(ctx); err != nil {
		return err
	}
	s.started = true
	return s.painter.Full(s.store)
}

// End releases the surface. It is safe to call more than once.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil
	}
	s.ended = true
	if !s.started {
		return nil
	}
	s.started = false
	return s.surface.Stop()
}

// command runs a mutation then draws its consequence.
func (s *Session) command(op func(t *turtle.Turtle) error, full bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.ended {
		return turtle.ErrSurfaceUnavailable
	}
	if err := s.store.Apply(op); err != nil {
		return err
	}
	if full {
		return s.painter.Full(s.store)
	}
	return s.painter.Incremental(s.store)
}

func (s *Session) Move(distance float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.Move(distance) }, false)
}

func (s *Session) MoveTo(x, y float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.MoveTo(x, y) }, false)
}

func (s *Session) Turn(degrees float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.Turn(degrees) }, false)
}

func (s *Session) SetHeading(degrees float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.SetHeading(degrees) }, false)
}

func (s *Session) AboutFace() error {
	return s.command(func(t *turtle.Turtle) error { t.AboutFace(); return nil }, false)
}

func (s *Session) PenUp() error {
	return s.command(func(t *turtle.Turtle) error { t.PenUp(); return nil }, false)
}

func (s *Session) PenDown() error {
	return s.command(func(t *turtle.Turtle) error { t.PenDown(); return nil }, false)
}

func (s *Session) TogglePen() error {
	return s.command(func(t *turtle.Turtle) error { t.TogglePen(); return nil }, false)
}

func (s *Session) SetColor(name string) error {
	return s.command(func(t *turtle.Turtle) error { return t.SetColorName(name) }, false)
}

func (s *Session) CycleColor() error {
	return s.command(func(t *turtle.Turtle) error { t.CycleColor(); return nil }, false)
}

func (s *Session) SetBackground(name string) error {
	return s.command(func(t *turtle.Turtle) error { return t.SetBackgroundName(name) }, true)
}

func (s *Session) SetThickness(n int) error {
	return s.command(func(t *turtle.Turtle) error { t.SetThickness(n); return nil }, false)
}

func (s *Session) NGon(sides int, length float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.NGon(sides, length) }, false)
}

func (s *Session) Star(points int, length float64) error {
	return s.command(func(t *turtle.Turtle) error { return t.Star(points, length) }, false)
}

func (s *Session) Reset() error {
	return s.command(func(t *turtle.Turtle) error { t.Reset(); return nil }, true)
}

func (s *Session) Clear() error {
	return s.command(func(t *turtle.Turtle) error { t.Clear(); return nil }, true)
}

// Position returns the turtle's current position.
func (s *Session) Position() turtle.Point { return s.store.Snapshot().Position }

// Heading returns the current heading in degrees, in [0, 360).
func (s *Session) Heading() float64 { return s.store.Snapshot().Heading }

// Pen reports whether the pen is down.
func (s *Session) Pen() bool { return s.store.Snapshot().PenDown }

// TrailLen returns the number of drawn segments.
func (s *Session) TrailLen() int { return s.store.Snapshot().TrailLen }

// Trail returns a copy of the drawn segments in drawing order.
func (s *Session) Trail() []turtle.Segment { return s.store.Trail() }

// Frame returns the last presented frame when the session renders into
// memory, nil for other backends.
func (s *Session) Frame() *image.RGBA {
	if s.mem == nil {
		return nil
	}
	return s.mem.Frame()
}
