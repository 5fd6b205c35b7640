package render

import (
	"github.com/penniesfromkevin/goturtle/internal/state"
)

// Painter tracks how much of the trail a surface has already drawn and
// applies the two redraw modes the loop distinguishes: append-and-draw
// the new tail, or clear-and-replay everything. The interactive loop
// and the library session share it so both honor the same incremental
// contract.
type Painter struct {
	surface Surface
	drawn   int
}

func NewPainter(surface Surface) *Painter {
	return &Painter{surface: surface}
}

// Drawn returns how many trail segments have been drawn since the last
// full redraw.
func (p *Painter) Drawn() int { return p.drawn }

// Incremental draws only the segments appended since the last call and
// presents. A trail shorter than the drawn count means the trail was
// reset or cleared underneath us, which forces a full redraw.
func (p *Painter) Incremental(store *state.Store) error {
	snap := store.Snapshot()
	if p.drawn > snap.TrailLen {
		return p.Full(store)
	}
	for _, seg := range store.TrailSince(p.drawn) {
		p.surface.DrawSegment(seg)
		p.drawn++
	}
	p.surface.DrawHUD(snap)
	return p.surface.Present()
}

// Full clears the surface and replays the whole trail in drawing order.
// Used on structural changes only: resize, reset, clear, background
// change.
func (p *Painter) Full(store *state.Store) error {
	snap := store.Snapshot()
	trail := store.Trail()
	p.surface.Clear(snap.Background)
	for _, seg := range trail {
		p.surface.DrawSegment(seg)
	}
	p.drawn = len(trail)
	p.surface.DrawHUD(snap)
	return p.surface.Present()
}

// Refresh re-presents the HUD and marker without touching the trail;
// this is the frame tick's liveness beat.
func (p *Painter) Refresh(store *state.Store) error {
	p.surface.DrawHUD(store.Snapshot())
	return p.surface.Present()
}
