// Package layout has the rectangle arithmetic for composing frames:
// carving off the HUD strip, padding it, and anchoring the control-URL
// overlay in a corner.
package layout

import "image"

// Normalize swaps Min and Max on either axis when they are inverted.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by pad pixels on every side.
func Inset(rect image.Rectangle, pad int) image.Rectangle {
	if pad <= 0 {
		return rect
	}
	return Normalize(image.Rect(rect.Min.X+pad, rect.Min.Y+pad, rect.Max.X-pad, rect.Max.Y-pad))
}

// SplitHorizontal carves a strip of the given height off the top of
// rect, returning the strip and the remainder. Height is clamped to
// rect's own height.
func SplitHorizontal(rect image.Rectangle, height int) (top, rest image.Rectangle) {
	rect = Normalize(rect)
	if height < 0 {
		height = 0
	}
	if height > rect.Dy() {
		height = rect.Dy()
	}
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+height)
	rest = image.Rect(rect.Min.X, rect.Min.Y+height, rect.Max.X, rect.Max.Y)
	return top, rest
}

// AnchorBottomRight places a w x h rectangle in the bottom-right corner
// of rect, inset by pad. The size is clamped so the result stays inside
// rect.
func AnchorBottomRight(rect image.Rectangle, w, h, pad int) image.Rectangle {
	rect = Inset(rect, pad)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w > rect.Dx() {
		w = rect.Dx()
	}
	if h > rect.Dy() {
		h = rect.Dy()
	}
	return image.Rect(rect.Max.X-w, rect.Max.Y-h, rect.Max.X, rect.Max.Y)
}
