package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

type fbLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FBSurface presents the logical canvas on the Linux framebuffer,
// scaled to the device with nearest-neighbor sampling. The surface
// cannot be reacquired once lost: the device's pixel buffer is the only
// copy of what was presented, so Present failures are fatal to the
// session.
type FBSurface struct {
	Logger fbLogger

	// FontPath optionally points at a TTF for the HUD; empty keeps the
	// built-in bitmap face.
	FontPath string
	FontSize float64

	canvas  *Canvas
	fbDev   *fb.Device
	running atomic.Bool
}

func NewFBSurface(width, height int) *FBSurface {
	return &FBSurface{canvas: NewCanvas(width, height)}
}

func (r *FBSurface) Start(ctx context.Context) error {
	dev, err := fb.Open("/dev/fb0")
	if err != nil {
		return fmt.Errorf("open framebuffer: %w", err)
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	if r.FontPath != "" {
		if err := r.canvas.LoadFont(r.FontPath, r.FontSize); err != nil {
			if r.Logger != nil {
				r.Logger.Errorf("fb", "HUD font load failed, using basicfont: %v", err)
			}
		} else if r.Logger != nil {
			r.Logger.Infof("fb", "HUD font loaded from %s", r.FontPath)
		}
	}

	r.running.Store(true)
	return nil
}

func (r *FBSurface) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

func (r *FBSurface) Size() (int, int) { return r.canvas.Size() }

func (r *FBSurface) Clear(bg color.RGBA) { r.canvas.Clear(bg) }

func (r *FBSurface) DrawSegment(seg turtle.Segment) { r.canvas.DrawSegment(seg) }

func (r *FBSurface) DrawHUD(snap state.Snapshot) { r.canvas.SetHUD(snap) }

// SetOverlay places an image (the control URL QR) in the bottom-right
// corner of every presented frame.
func (r *FBSurface) SetOverlay(img image.Image) { r.canvas.SetOverlay(img) }

func (r *FBSurface) Present() error {
	if !r.running.Load() || r.fbDev == nil {
		return fmt.Errorf("framebuffer: %w", turtle.ErrSurfaceUnavailable)
	}
	blitToFB(r.fbDev, r.canvas.Compose())
	return nil
}

// blitToFB writes the composed frame to the device, nearest-neighbor
// scaled to the framebuffer resolution.
func blitToFB(dev *fb.Device, frame *image.RGBA) {
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	srcWidth := frame.Bounds().Dx()
	srcHeight := frame.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := frame.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
