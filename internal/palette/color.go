// Package palette assigns stable colors to activity names and derives the
// gradient styles used for timeline segments.
package palette

import (
	"math"
	"strconv"
	"unicode/utf16"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a point in the OKLCH color space.
type Color struct {
	L, C, H float64
}

// Palette is ordered; its order is part of the name→color mapping.
var Palette = []Color{
	{L: 0.65, C: 0.20, H: 250}, // blue
	{L: 0.70, C: 0.18, H: 150}, // green
	{L: 0.68, C: 0.20, H: 50},  // orange
	{L: 0.65, C: 0.18, H: 300}, // purple
	{L: 0.72, C: 0.18, H: 180}, // cyan
	{L: 0.68, C: 0.20, H: 30},  // yellow-orange
	{L: 0.65, C: 0.18, H: 330}, // pink
	{L: 0.70, C: 0.16, H: 120}, // lime
}

// String renders the CSS token, e.g. "oklch(0.65 0.20 250)".
func (c Color) String() string {
	return "oklch(" + strconv.FormatFloat(c.L, 'f', 2, 64) + " " +
		strconv.FormatFloat(c.C, 'f', 2, 64) + " " +
		strconv.FormatFloat(c.H, 'f', -1, 64) + ")"
}

// Hex returns the nearest in-gamut sRGB color as #rrggbb, for clients that
// cannot render OKLCH.
func (c Color) Hex() string {
	return colorful.LinearRgb(c.linear()).Clamped().Hex()
}

// linear converts OKLCH to linear sRGB through OKLab.
func (c Color) linear() (r, g, b float64) {
	h := c.H * math.Pi / 180
	la, lb := c.C*math.Cos(h), c.C*math.Sin(h)

	l := cube(c.L + 0.3963377774*la + 0.2158037573*lb)
	m := cube(c.L - 0.1055613458*la - 0.0638541728*lb)
	s := cube(c.L - 0.0894841775*la - 1.2914855480*lb)

	r = 4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g = -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b = -0.0041960863*l - 0.7034186147*m + 1.7076147010*s
	return r, g, b
}

func cube(v float64) float64 { return v * v * v }

// MarshalText encodes the color as its CSS token.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Hash is a 31-multiplier rolling hash over the UTF-16 code units of name,
// wrapped to 32 bits and folded to its magnitude.
func Hash(name string) uint32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(name)) {
		h = (h << 5) - h + int32(unit)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// ForName returns the palette color for name. The result depends only on
// the exact (case-sensitive) name.
func ForName(name string) Color {
	return Palette[Hash(name)%uint32(len(Palette))]
}
