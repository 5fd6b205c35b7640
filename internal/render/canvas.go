package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/penniesfromkevin/goturtle/internal/render/layout"
	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// HUD styling shared by the pixel backends.
var (
	HUDText   = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	HUDShadow = color.RGBA{A: 0xFF}
	hudStrip  = 28
	hudPad    = 6
)

// Canvas is the offscreen pixel model shared by the framebuffer and
// memory surfaces. The trail lives on its own transparent layer so the
// HUD and turtle marker can be recomposed every frame without touching
// drawn segments. World coordinates are centered, +Y up; devicePoint
// flips into rows.
type Canvas struct {
	w, h    int
	bg      color.RGBA
	trail   *image.RGBA // transparent trail layer, append-only between Clears
	frame   *image.RGBA // composed output
	face    font.Face
	hud     string
	marker  state.Snapshot
	overlay image.Image // optional corner overlay (control URL QR)
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		w:    width,
		h:    height,
		face: basicfont.Face7x13,
	}
	c.trail = image.NewRGBA(image.Rect(0, 0, width, height))
	c.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	c.bg = color.RGBA{A: 0xFF}
	return c
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// LoadFont swaps the HUD face for a TTF loaded from disk. The built-in
// bitmap face stays in place on any failure.
func (c *Canvas) LoadFont(path string, sizePt float64) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	fnt, err := truetype.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	if sizePt <= 0 {
		sizePt = 16
	}
	c.face = truetype.NewFace(fnt, &truetype.Options{Size: sizePt, DPI: 96, Hinting: font.HintingFull})
	return nil
}

func (c *Canvas) SetOverlay(img image.Image) { c.overlay = img }

// Clear wipes the trail layer and records the background color.
func (c *Canvas) Clear(bg color.RGBA) {
	c.bg = bg
	draw.Draw(c.trail, c.trail.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// devicePoint maps a world point to device pixel coordinates.
func (c *Canvas) devicePoint(p turtle.Point) (float64, float64) {
	return float64(c.w)/2 + p.X, float64(c.h)/2 - p.Y
}

// DrawSegment rasterizes one segment onto the trail layer by stamping a
// disc of the pen thickness along the line.
func (c *Canvas) DrawSegment(seg turtle.Segment) {
	x0, y0 := c.devicePoint(seg.From)
	x1, y1 := c.devicePoint(seg.To)
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps < 1 {
		steps = 1
	}
	radius := seg.Thickness / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.stamp(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)), radius, seg.Color)
	}
}

func (c *Canvas) stamp(cx, cy, radius int, col color.RGBA) {
	if radius <= 0 {
		c.setPixel(cx, cy, col)
		return
	}
	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= rr {
				c.setPixel(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.trail.SetRGBA(x, y, col)
}

// SetHUD records the pose readout and marker for the next Compose.
func (c *Canvas) SetHUD(snap state.Snapshot) {
	pen := "up"
	if snap.PenDown {
		pen = "down"
	}
	colorName := snap.ColorName
	if colorName == "" {
		colorName = fmt.Sprintf("#%02x%02x%02x", snap.Color.R, snap.Color.G, snap.Color.B)
	}
	c.hud = fmt.Sprintf("pos (%.1f, %.1f)  hdg %.0f  pen %s  color %s  thickness %d  trail %d",
		snap.Position.X, snap.Position.Y, snap.Heading, pen, colorName, snap.Thickness, snap.TrailLen)
	c.marker = snap
}

// Compose builds the presentable frame: background, trail layer, turtle
// marker, corner overlay, HUD strip.
func (c *Canvas) Compose() *image.RGBA {
	bounds := c.frame.Bounds()
	draw.Draw(c.frame, bounds, &image.Uniform{C: c.bg}, image.Point{}, draw.Src)
	draw.Draw(c.frame, bounds, c.trail, image.Point{}, draw.Over)

	c.drawMarker()

	if c.overlay != nil {
		ob := c.overlay.Bounds()
		dst := layout.AnchorBottomRight(bounds, ob.Dx(), ob.Dy(), hudPad)
		draw.Draw(c.frame, dst, c.overlay, ob.Min, draw.Over)
	}

	if c.hud != "" {
		strip, _ := layout.SplitHorizontal(bounds, hudStrip)
		inner := layout.Inset(strip, hudPad)
		baseline := inner.Min.Y + c.face.Metrics().Ascent.Ceil()
		c.drawText(c.hud, inner.Min.X+1, baseline+1, HUDShadow)
		c.drawText(c.hud, inner.Min.X, baseline, HUDText)
	}
	return c.frame
}

func (c *Canvas) drawText(text string, x, baseline int, col color.Color) {
	drawer := &font.Drawer{
		Dst:  c.frame,
		Src:  &image.Uniform{C: col},
		Face: c.face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
}

// drawMarker paints the turtle itself: a small dot at the position with
// a heading tick, in the inverse of the background so it stays visible.
func (c *Canvas) drawMarker() {
	x, y := c.devicePoint(c.marker.Position)
	col := color.RGBA{R: ^c.bg.R, G: ^c.bg.G, B: ^c.bg.B, A: 0xFF}

	cx, cy := int(math.Round(x)), int(math.Round(y))
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy <= 4 {
				c.setFramePixel(cx+dx, cy+dy, col)
			}
		}
	}

	rad := c.marker.Heading * math.Pi / 180
	for i := 3; i <= 8; i++ {
		tx := cx + int(math.Round(float64(i)*math.Cos(rad)))
		ty := cy - int(math.Round(float64(i)*math.Sin(rad)))
		c.setFramePixel(tx, ty, col)
	}
}

func (c *Canvas) setFramePixel(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.frame.SetRGBA(x, y, col)
}
