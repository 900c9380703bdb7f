package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/termpaint/internal/render/core"
)

// ParseColor parses a textual color into a core.Color.
//
// Accepted notations:
//   - hex: #RGB, #RGBA, #RRGGBB, #RRGGBBAA (shorthand digits doubled)
//   - functional: rgb(r, g, b) and rgba(r, g, b, a)
//
// Out-of-range numeric components are clamped rather than rejected:
// channel values to [0, 255], alpha to [0, 1]. Anything else is an
// error; callers needing totality use the resolver, which substitutes
// the slot default.
func ParseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(strings.ToLower(s), "rgb"):
		return parseFunctional(s)
	default:
		return core.Color{}, fmt.Errorf("unrecognized color notation: %q", s)
	}
}

// parseHex parses 3, 4, 6, or 8 hex digits (no leading #).
func parseHex(hex string) (core.Color, error) {
	switch len(hex) {
	case 3, 4:
		// Shorthand: each digit doubles.
		expanded := make([]byte, 0, 8)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		return parseHex(string(expanded))
	case 6, 8:
		channels := make([]uint8, 0, 4)
		for i := 0; i < len(hex); i += 2 {
			v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			if err != nil {
				return core.Color{}, fmt.Errorf("invalid hex color: %q", hex)
			}
			channels = append(channels, uint8(v))
		}
		c := core.RGB(channels[0], channels[1], channels[2])
		if len(channels) == 4 {
			c.A = float64(channels[3]) / 255.0
		}
		return c, nil
	default:
		return core.Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
}

// parseFunctional parses rgb(r,g,b) and rgba(r,g,b,a).
func parseFunctional(s string) (core.Color, error) {
	lower := strings.ToLower(s)

	var body string
	var wantAlpha bool
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = s[len("rgba(") : len(s)-1]
		wantAlpha = true
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return core.Color{}, fmt.Errorf("invalid functional color: %q", s)
	}

	parts := strings.Split(body, ",")
	want := 3
	if wantAlpha {
		want = 4
	}
	if len(parts) != want {
		return core.Color{}, fmt.Errorf("invalid component count in %q", s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Color{}, fmt.Errorf("invalid component %q in %q", parts[i], s)
		}
		ch[i] = clampByte(v)
	}

	c := core.RGB(ch[0], ch[1], ch[2])
	if wantAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || math.IsNaN(a) || math.IsInf(a, 0) {
			// strconv accepts "NaN" and "Inf", which would survive
			// clamping.
			return core.Color{}, fmt.Errorf("invalid alpha %q in %q", parts[3], s)
		}
		c.A = clampUnit(a)
	}
	return c, nil
}

// clampByte clamps a float component to a byte in [0, 255].
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampUnit clamps to [0, 1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
