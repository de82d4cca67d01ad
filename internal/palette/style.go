package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const flatShadow = "0 2px 4px rgba(0, 0, 0, 0.1)"

var oklchRe = regexp.MustCompile(`^\s*oklch\(\s*([\d.]+)\s+([\d.]+)\s+([\d.]+)\s*\)\s*$`)

// Style is the CSS for one timeline segment.
type Style struct {
	Background string `json:"background"`
	Glow       string `json:"glow"`
}

// StyleFor derives a lighter-to-darker diagonal gradient and a soft glow from
// an oklch(L C H) token. Any other input is returned as a flat background.
func StyleFor(token string) Style {
	base, ok := ParseOKLCH(token)
	if !ok {
		return Style{Background: token, Glow: flatShadow}
	}
	return base.Style()
}

// Style derives the segment style for c.
func (c Color) Style() Style {
	lighter := Color{L: math.Min(c.L+0.08, 0.95), C: c.C, H: c.H}
	darker := Color{L: math.Max(c.L-0.05, 0.30), C: c.C, H: c.H}
	return Style{
		Background: fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", lighter.token(), darker.token()),
		Glow:       fmt.Sprintf("%s, 0 0 8px oklch(%s %s %s / 0.4)", flatShadow, num(c.L), num(c.C), num(c.H)),
	}
}

// ParseOKLCH reads an "oklch(L C H)" token.
func ParseOKLCH(token string) (Color, bool) {
	m := oklchRe.FindStringSubmatch(token)
	if m == nil {
		return Color{}, false
	}
	var vals [3]float64
	for i := range vals {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Color{}, false
		}
		vals[i] = v
	}
	return Color{L: vals[0], C: vals[1], H: vals[2]}, true
}

// token renders c with float noise trimmed, e.g. 0.73 rather than 0.7300000000000001.
func (c Color) token() string {
	return "oklch(" + num(c.L) + " " + num(c.C) + " " + num(c.H) + ")"
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
