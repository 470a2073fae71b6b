// Package plotting renders the report panels onto pre-allocated drawing
// regions of a single page and serializes the page to PDF or PNG.
package plotting

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// palette is the fixed repeating color cycle used when a variable or start
// has no configured color. Values match the source exports' plotting
// conventions.
var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // #1f77b4
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // #ff7f0e
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // #2ca02c
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // #d62728
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // #9467bd
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // #8c564b
}

// dashPatterns is the fixed 4-element repeating set of line styles keyed by
// a start's position: solid, dashed, dash-dot, dotted.
var dashPatterns = [][]vg.Length{
	nil,
	{vg.Points(6), vg.Points(3)},
	{vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)},
	{vg.Points(1), vg.Points(3)},
}

// PaletteSize is the length of the repeating color cycle.
const PaletteSize = 6

// PaletteColor returns the palette entry for index i, repeating.
func PaletteColor(i int) color.Color {
	return palette[i%len(palette)]
}

// DashPattern returns the dash set for start position i, repeating.
func DashPattern(i int) []vg.Length {
	return dashPatterns[i%len(dashPatterns)]
}

var namedColors = map[string]color.Color{
	"white":   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":   color.RGBA{A: 0xff},
	"red":     color.RGBA{R: 0xff, A: 0xff},
	"green":   color.RGBA{G: 0x80, A: 0xff},
	"blue":    color.RGBA{B: 0xff, A: 0xff},
	"orange":  color.RGBA{R: 0xff, G: 0xa5, A: 0xff},
	"purple":  color.RGBA{R: 0x80, B: 0x80, A: 0xff},
	"brown":   color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff},
	"pink":    color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff},
	"gray":    color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":    color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"yellow":  color.RGBA{R: 0xff, G: 0xff, A: 0xff},
	"cyan":    color.RGBA{G: 0xff, B: 0xff, A: 0xff},
	"magenta": color.RGBA{R: 0xff, B: 0xff, A: 0xff},
}

// ParseColor resolves a configured color: "#rgb" or "#rrggbb" hex, or one
// of the common named colors.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil {
				return color.RGBA{
					R: uint8(v >> 16),
					G: uint8(v >> 8),
					B: uint8(v),
					A: 0xff,
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown color %q", s)
}
