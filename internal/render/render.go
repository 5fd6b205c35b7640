package render

import (
	"context"
	"image/color"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// Surface is the render capability the loop draws onto. Incremental
// rendering is the normal path: each new trail segment is drawn once via
// DrawSegment and made visible by Present. Clear plus a full replay of
// the trail is reserved for structural changes: resize, reset, clear,
// background change.
type Surface interface {
	Start(ctx context.Context) error
	Stop() error

	// Size returns the drawable area in surface units (pixels or cells).
	Size() (width int, height int)

	// Clear wipes the trail layer and sets the background color.
	Clear(bg color.RGBA)

	// DrawSegment rasterizes one trail segment. It does not present.
	DrawSegment(seg turtle.Segment)

	// DrawHUD updates the pose readout (and turtle marker) shown on the
	// next Present.
	DrawHUD(snap state.Snapshot)

	// Present makes everything drawn so far visible. It doubles as the
	// loop's periodic liveness beat; an error means the surface is gone
	// and the session cannot continue.
	Present() error
}
