package web

import (
	"context"
	"image"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// Server is the lifecycle the app drives; a nil or Noop server means
// the controller runs without remote control.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

type NoopServer struct{}

func (n *NoopServer) Start(ctx context.Context) error { return nil }
func (n *NoopServer) Stop() error                     { return nil }

// Commands is the slice of the app the API exposes. Every mutation is
// synchronous: argument errors come back to the HTTP caller immediately,
// drawing happens on the render loop.
type Commands interface {
	Move(distance float64) error
	Turn(degrees float64) error
	SetPen(down bool) error
	SetColor(name string) error
	SetBackground(name string) error
	SetThickness(n int) error
	NGon(sides int, length float64) error
	Reset() error
	Clear() error
	Snapshot() state.Snapshot
	Trail() []turtle.Segment
}

// FrameFunc returns the last presented frame for /api/v1/canvas.png,
// or nil when the active surface cannot share frames.
type FrameFunc func() *image.RGBA
