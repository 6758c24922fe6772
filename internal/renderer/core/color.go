package core

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit color or the terminal default.
type Color struct {
	R, G, B uint8
	// Default selects the terminal's own color; R, G and B are ignored.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorGray  = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rrggbb" or "#rgb". The special value "default"
// yields ColorDefault.
func ColorFromHex(hex string) (Color, error) {
	if hex == "default" {
		return ColorDefault, nil
	}
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MustHex is ColorFromHex for constants. It panics on malformed input.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns "#RRGGBB" or "default".
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes c toward other in CIE-L*a*b* space. t is clamped to [0,1].
// Blending with the default color returns the non-default side.
func (c Color) Blend(other Color, t float64) Color {
	switch {
	case c.Default && other.Default:
		return ColorDefault
	case c.Default:
		return other
	case other.Default:
		return c
	}
	t = max(0, min(1, t))
	return fromColorful(c.colorful().BlendLab(other.colorful(), t).Clamped())
}

// Lighten raises lightness in HSL space by amount (0..1).
func (c Color) Lighten(amount float64) Color {
	if c.Default {
		return c
	}
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, min(1, l+amount)).Clamped())
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Default {
		return ColorDefault
	}
	l, _, _ := c.colorful().Lab()
	if l > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}
