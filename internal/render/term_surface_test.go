package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penniesfromkevin/goturtle/internal/input"
)

// newSimTermSurface backs the surface with tcell's simulation screen so
// tests run without a real terminal.
func newSimTermSurface(t *testing.T) (*TermSurface, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	ts := NewTermSurface(input.NewBindings(map[string]string{"escape": "quit"}))
	ts.screen = sim
	return ts, sim
}

func TestTermSurfaceStartIsIdempotent(t *testing.T) {
	ts, sim := newSimTermSurface(t)
	require.NoError(t, ts.Start(context.Background()))

	// The terminal backend is wired as both the surface and the input
	// source, so the loop calls Start twice. The second call must keep
	// the first screen and must not spawn a second event pump; a second
	// pump would panic on close(pumpDone) during Stop.
	require.NoError(t, ts.Start(context.Background()))
	assert.Same(t, sim, ts.screen)

	require.NoError(t, ts.Stop())
	assert.NoError(t, ts.Stop(), "stop is idempotent")
}

func TestTermSurfaceResizeUpdatesSize(t *testing.T) {
	ts, sim := newSimTermSurface(t)
	require.NoError(t, ts.Start(context.Background()))
	t.Cleanup(func() { _ = ts.Stop() })

	sim.SetSize(120, 40)
	require.Eventually(t, func() bool {
		w, h := ts.Size()
		return w == 120 && h == 40
	}, time.Second, 5*time.Millisecond)

	// The pump also tells the loop to redraw for the new geometry.
	select {
	case ev := <-ts.Events():
		assert.Equal(t, input.ActionResize, ev.Action)
	case <-time.After(time.Second):
		t.Fatal("no resize event delivered")
	}
}

func TestTermSurfaceTranslatesKeys(t *testing.T) {
	ts, sim := newSimTermSurface(t)
	require.NoError(t, ts.Start(context.Background()))
	t.Cleanup(func() { _ = ts.Stop() })

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	// The pump may deliver the initial resize first; skip past it.
	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-ts.Events():
			if ev.Action == input.ActionResize {
				continue
			}
			assert.Equal(t, input.ActionQuit, ev.Action)
			return
		case <-deadline:
			t.Fatal("no key event delivered")
		}
	}
}
