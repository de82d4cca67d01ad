package palette

import (
	"strings"
	"testing"
)

func TestHashKnownValues(t *testing.T) {
	tests := map[string]uint32{
		"":          0,
		"Gym":       72091,
		"gym":       102843,
		"Work":      2702129,
		"Reading":   1549900180,
		"Deep work": 34402907,
	}
	for in, want := range tests {
		if got := Hash(in); got != want {
			t.Errorf("Hash(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestForNameIsStable(t *testing.T) {
	first := ForName("Gym")
	for i := 0; i < 10; i++ {
		if got := ForName("Gym"); got != first {
			t.Fatalf("ForName(Gym) changed: %v vs %v", got, first)
		}
	}
	if got := first.String(); got != "oklch(0.65 0.18 300)" {
		t.Errorf("ForName(Gym) = %s", got)
	}
	if got := ForName("Work").String(); got != "oklch(0.70 0.18 150)" {
		t.Errorf("ForName(Work) = %s", got)
	}
	if got := ForName("").String(); got != "oklch(0.65 0.20 250)" {
		t.Errorf("ForName(\"\") = %s", got)
	}
}

func TestForNameNonASCII(t *testing.T) {
	// Astral characters hash as two UTF-16 code units; only stability matters.
	if ForName("🏃 run") != ForName("🏃 run") {
		t.Error("non-ASCII names must be stable")
	}
}

func TestPaletteSize(t *testing.T) {
	if len(Palette) < 8 {
		t.Fatalf("palette has %d colors", len(Palette))
	}
	seen := map[string]bool{}
	for _, c := range Palette {
		if seen[c.String()] {
			t.Errorf("duplicate palette color %s", c)
		}
		seen[c.String()] = true
		if hex := c.Hex(); len(hex) != 7 || hex[0] != '#' {
			t.Errorf("Hex() = %q", hex)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{L: 1}, "#ffffff"},
		{Color{L: 0}, "#000000"},
		// Out of sRGB gamut; red is clamped to zero.
		{Color{L: 0.65, C: 0.20, H: 250}, "#0091ff"},
		{Color{L: 0.70, C: 0.18, H: 150}, "#28bc5e"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%s.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestStyleFor(t *testing.T) {
	s := StyleFor("oklch(0.65 0.20 250)")
	want := "linear-gradient(135deg, oklch(0.73 0.2 250) 0%, oklch(0.6 0.2 250) 100%)"
	if s.Background != want {
		t.Errorf("Background = %q, want %q", s.Background, want)
	}
	if !strings.Contains(s.Glow, "0 0 8px oklch(0.65 0.2 250 / 0.4)") {
		t.Errorf("Glow = %q", s.Glow)
	}
}

func TestStyleForClampsLightness(t *testing.T) {
	light := StyleFor("oklch(0.92 0.1 10)")
	if !strings.Contains(light.Background, "oklch(0.95 0.1 10) 0%") {
		t.Errorf("lighter stop not capped: %q", light.Background)
	}
	dark := StyleFor("oklch(0.31 0.1 10)")
	if !strings.Contains(dark.Background, "oklch(0.3 0.1 10) 100%") {
		t.Errorf("darker stop not floored: %q", dark.Background)
	}
}

func TestStyleForFallback(t *testing.T) {
	for _, in := range []string{"#ff0000", "", "oklch(a b c)", "rgb(1, 2, 3)"} {
		s := StyleFor(in)
		if s.Background != in || s.Glow != flatShadow {
			t.Errorf("StyleFor(%q) = %+v", in, s)
		}
	}
}
