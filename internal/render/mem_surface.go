package render

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// MemSurface renders into the offscreen canvas only. The simulator and
// the canvas.png endpoint read frames out of it; tests use it as a real
// surface without a display.
type MemSurface struct {
	mu     sync.Mutex
	canvas *Canvas
	frame  *image.RGBA
}

func NewMemSurface(width, height int) *MemSurface {
	return &MemSurface{canvas: NewCanvas(width, height)}
}

func (m *MemSurface) Start(ctx context.Context) error { return nil }
func (m *MemSurface) Stop() error                     { return nil }

func (m *MemSurface) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canvas.Size()
}

func (m *MemSurface) Clear(bg color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.Clear(bg)
}

func (m *MemSurface) DrawSegment(seg turtle.Segment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.DrawSegment(seg)
}

func (m *MemSurface) DrawHUD(snap state.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canvas.SetHUD(snap)
}

func (m *MemSurface) Present() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	composed := m.canvas.Compose()
	if m.frame == nil || m.frame.Bounds() != composed.Bounds() {
		m.frame = image.NewRGBA(composed.Bounds())
	}
	copy(m.frame.Pix, composed.Pix)
	return nil
}

// Frame returns a copy of the last presented frame, or nil before the
// first Present. HTTP handlers call this from their own goroutines.
func (m *MemSurface) Frame() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frame == nil {
		return nil
	}
	out := image.NewRGBA(m.frame.Bounds())
	copy(out.Pix, m.frame.Pix)
	return out
}
