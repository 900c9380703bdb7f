package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color value.
//
// The zero value is the "unset" sentinel: a cell carrying the zero color
// as its background means "use the theme background, don't redraw".
// Opaque black is RGB(0, 0, 0), which has A = 1 and is not the sentinel.
type Color struct {
	R, G, B uint8
	// A is the alpha component in [0, 1].
	A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGB components and an alpha in [0, 1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// IsZero returns true if this is the unset sentinel color.
func (c Color) IsZero() bool {
	return c == Color{}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Blend mixes c toward other by amount in [0, 1], preserving c's alpha.
// Amount 0 returns c, 1 returns other's channels.
func (c Color) Blend(other Color, amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return Color{R: other.R, G: other.G, B: other.B, A: c.A}
	}
	mixed := c.colorful().BlendRgb(other.colorful(), amount).Clamped()
	r, g, b := mixed.RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}

// colorful converts to a go-colorful color for channel math.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// String returns a css-style representation, mainly for test failures.
func (c Color) String() string {
	if c.IsZero() {
		return "unset"
	}
	if c.A == 1 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}
