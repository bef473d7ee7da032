package scene

import (
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
)

// NamedColor looks up an SVG 1.1 color name ("steelblue", "Gold") and returns it in
// linear space. Output is gamma-corrected with a square root, so each channel is squared
// here and a white diffuse surface under a white sky renders as the named color.
func NamedColor(name string) (core.Color, bool) {
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Color{}, false
	}
	return FromRGBA(rgba), true
}

// MustNamedColor is NamedColor for palette names known at compile time
func MustNamedColor(name string) core.Color {
	c, ok := NamedColor(name)
	if !ok {
		panic("scene: unknown color name " + name)
	}
	return c
}

// FromRGBA converts an 8-bit display color into linear space
func FromRGBA(c color.RGBA) core.Color {
	channel := func(v uint8) float64 {
		f := float64(v) / 255.0
		return f * f
	}
	return core.NewColor(channel(c.R), channel(c.G), channel(c.B))
}

// ColorNames returns every known color name in sorted order
func ColorNames() []string {
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
