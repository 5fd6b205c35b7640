package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/penniesfromkevin/goturtle/internal/input"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// Terminal cells are roughly twice as tall as wide, so world units map
// to cells anisotropically to keep squares square on screen.
const (
	termXScale = 0.25
	termYScale = 0.125
)

// TermSurface renders the trail into a terminal via tcell and doubles
// as the input source: key events are translated through the bindings
// table and resize notifications become Resize events. One goroutine
// (the render loop) owns the drawing side; the event pump runs on its
// own goroutine the way tcell requires.
type TermSurface struct {
	bindings input.Bindings

	screen tcell.Screen
	bg     tcell.Style
	hud    string
	marker state.Snapshot

	// The pump goroutine updates the size on resize while the render
	// loop reads it, so it sits behind its own lock.
	sizeMu sync.Mutex
	w, h   int

	running  atomic.Bool
	pumped   bool
	events   chan input.Event
	pumpDone chan struct{}
	stopOnce sync.Once
}

func NewTermSurface(bindings input.Bindings) *TermSurface {
	return &TermSurface{
		bindings: bindings,
		events:   make(chan input.Event, 16),
		pumpDone: make(chan struct{}),
	}
}

// Start initializes the screen and the event pump. The surface is
// wired into the loop as both the render surface and the input source,
// which makes Start arrive twice; the second call is a no-op.
func (ts *TermSurface) Start(ctx context.Context) error {
	if ts.running.Load() {
		return nil
	}
	if ts.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal screen: %w", err)
		}
		ts.screen = screen
	}
	if err := ts.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	ts.sizeMu.Lock()
	ts.w, ts.h = ts.screen.Size()
	ts.sizeMu.Unlock()
	ts.bg = tcell.StyleDefault.Background(tcell.ColorBlack)
	ts.screen.SetStyle(ts.bg)
	ts.screen.Clear()
	ts.running.Store(true)
	ts.pumped = true

	go ts.pumpEvents()
	return nil
}

func (ts *TermSurface) Stop() error {
	ts.stopOnce.Do(func() {
		ts.running.Store(false)
		if ts.screen != nil && ts.pumped {
			// Interrupt unblocks PollEvent so the pump can exit before Fini.
			ts.screen.PostEvent(tcell.NewEventInterrupt(nil))
			<-ts.pumpDone
			ts.screen.Fini()
		}
		close(ts.events)
	})
	return nil
}

func (ts *TermSurface) Size() (int, int) {
	ts.sizeMu.Lock()
	defer ts.sizeMu.Unlock()
	return ts.w, ts.h
}

func (ts *TermSurface) Clear(bg color.RGBA) {
	if ts.screen == nil {
		return
	}
	ts.bg = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	ts.screen.Fill(' ', ts.bg)
}

func (ts *TermSurface) DrawHUD(snap state.Snapshot) {
	pen := "up"
	if snap.PenDown {
		pen = "down"
	}
	ts.hud = fmt.Sprintf("pos (%.1f, %.1f)  hdg %.0f  pen %s  trail %d", snap.Position.X, snap.Position.Y, snap.Heading, pen, snap.TrailLen)
	ts.marker = snap
}

// DrawSegment plots the segment as a run of block cells.
func (ts *TermSurface) DrawSegment(seg turtle.Segment) {
	if ts.screen == nil {
		return
	}
	style := ts.bg.Foreground(tcell.NewRGBColor(int32(seg.Color.R), int32(seg.Color.G), int32(seg.Color.B)))
	w, h := ts.Size()
	x0, y0 := ts.cellPoint(seg.From)
	x1, y1 := ts.cellPoint(seg.To)
	steps := int(math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(x1-x0)*t))
		y := y0 + int(math.Round(float64(y1-y0)*t))
		if x >= 0 && y >= 1 && x < w && y < h {
			ts.screen.SetContent(x, y, '█', nil, style)
		}
	}
}

func (ts *TermSurface) cellPoint(p turtle.Point) (int, int) {
	w, h := ts.Size()
	x := float64(w)/2 + p.X*termXScale
	y := float64(h)/2 - p.Y*termYScale
	return int(math.Round(x)), int(math.Round(y))
}

func (ts *TermSurface) Present() error {
	if !ts.running.Load() || ts.screen == nil {
		return fmt.Errorf("terminal: %w", turtle.ErrSurfaceUnavailable)
	}
	// Row 0 is the HUD strip.
	w, h := ts.Size()
	hudStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < w; x++ {
		ts.screen.SetContent(x, 0, ' ', nil, hudStyle)
	}
	for i, r := range ts.hud {
		if i >= w {
			break
		}
		ts.screen.SetContent(i, 0, r, nil, hudStyle)
	}
	mx, my := ts.cellPoint(ts.marker.Position)
	if mx >= 0 && my >= 1 && mx < w && my < h {
		ts.screen.SetContent(mx, my, '@', nil, hudStyle)
	}
	ts.screen.Show()
	return nil
}

// Events implements input.Source; the surface is its own input
// capability in terminal mode.
func (ts *TermSurface) Events() <-chan input.Event { return ts.events }

func (ts *TermSurface) pumpEvents() {
	defer close(ts.pumpDone)
	for ts.running.Load() {
		ev := ts.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			name, ok := keyName(tev)
			if !ok {
				continue
			}
			bound, known := ts.bindings.Lookup(name)
			if !known {
				continue
			}
			ts.send(bound)
		case *tcell.EventResize:
			ts.sizeMu.Lock()
			ts.w, ts.h = tev.Size()
			ts.sizeMu.Unlock()
			ts.screen.Sync()
			ts.send(input.Event{Action: input.ActionResize})
		case *tcell.EventInterrupt:
			return
		case nil:
			return
		}
	}
}

func (ts *TermSurface) send(ev input.Event) {
	select {
	case ts.events <- ev:
	default:
		// Loop is behind; dropping a key press beats blocking the pump.
	}
}

func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up", true
	case tcell.KeyDown:
		return "down", true
	case tcell.KeyLeft:
		return "left", true
	case tcell.KeyRight:
		return "right", true
	case tcell.KeyEscape:
		return "escape", true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace", true
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case ' ':
			return "space", true
		case ',':
			return "comma", true
		case '.':
			return "period", true
		case '-':
			return "minus", true
		case '=', '+':
			return "equal", true
		default:
			if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') {
				return string(r), true
			}
		}
	}
	return "", false
}
