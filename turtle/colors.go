package turtle

import (
	"image/color"
	"sort"
)

// Default pen and background after Reset.
const (
	DefaultColorName      = "red"
	DefaultBackgroundName = "black"
)

var palette = map[string]color.RGBA{
	"red":     {R: 255, A: 255},
	"green":   {G: 255, A: 255},
	"blue":    {B: 255, A: 255},
	"yellow":  {R: 255, G: 255, A: 255},
	"magenta": {R: 255, B: 255, A: 255},
	"cyan":    {G: 255, B: 255, A: 255},
	"purple":  {R: 204, B: 255, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {A: 255},
}

var paletteNames = func() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// ColorNames returns the palette names in cycling order.
func ColorNames() []string {
	out := make([]string, len(paletteNames))
	copy(out, paletteNames)
	return out
}

func lookupColor(name string) (color.RGBA, bool) {
	c, ok := palette[name]
	return c, ok
}

func paletteColor(name string) color.RGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette[paletteNames[0]]
}

// nextColorName returns the palette name after current, wrapping around.
// A current name outside the palette (including "") restarts the cycle
// at the first name.
func nextColorName(current string) string {
	for i, name := range paletteNames {
		if name == current {
			return paletteNames[(i+1)%len(paletteNames)]
		}
	}
	return paletteNames[0]
}
