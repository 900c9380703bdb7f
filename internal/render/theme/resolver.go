// Package theme resolves partial, loosely typed color overrides into
// fully populated themes.
//
// Resolution is a total function: it never fails. Unparseable or
// missing inputs fall back to built-in defaults per slot, so backends
// always receive a complete theme.
package theme

import (
	"math"

	"github.com/dshills/termpaint/internal/render/core"
)

// Color slot names accepted in override maps.
const (
	SlotForeground          = "foreground"
	SlotBackground          = "background"
	SlotCursor              = "cursor"
	SlotCursorAccent        = "cursorAccent"
	SlotSelectionBackground = "selectionBackground"
	SlotSelectionForeground = "selectionForeground"
	SlotSelectionOpacity    = "selectionOpacity"
)

// DefaultSelectionOpacity is used when no opacity override is present
// or the override is not a finite number.
const DefaultSelectionOpacity = 0.4

// Built-in slot defaults.
var (
	defaultForeground          = core.RGB(0xff, 0xff, 0xff)
	defaultBackground          = core.RGB(0x00, 0x00, 0x00)
	defaultCursor              = core.RGB(0xff, 0xff, 0xff)
	defaultCursorAccent        = core.RGB(0x00, 0x00, 0x00)
	defaultSelectionBackground = core.RGB(0xff, 0xff, 0xff)
)

// Overrides is a partial theme: empty strings mean "use the default".
// SelectionForeground has no default; when absent or unparseable the
// resolved theme keeps each cell's own foreground.
type Overrides struct {
	Foreground          string
	Background          string
	Cursor              string
	CursorAccent        string
	SelectionBackground string
	SelectionForeground string

	// SelectionOpacity is the overlay opacity; nil means unset.
	SelectionOpacity *float64
}

// FromMap builds Overrides from a loosely typed slot map, such as one
// decoded from a configuration file. Unknown keys and wrongly typed
// values are ignored.
func FromMap(m map[string]any) Overrides {
	var o Overrides
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	o.Foreground = str(SlotForeground)
	o.Background = str(SlotBackground)
	o.Cursor = str(SlotCursor)
	o.CursorAccent = str(SlotCursorAccent)
	o.SelectionBackground = str(SlotSelectionBackground)
	o.SelectionForeground = str(SlotSelectionForeground)

	switch v := m[SlotSelectionOpacity].(type) {
	case float64:
		o.SelectionOpacity = &v
	case int:
		f := float64(v)
		o.SelectionOpacity = &f
	case int64:
		f := float64(v)
		o.SelectionOpacity = &f
	}
	return o
}

// Resolve turns partial overrides into a complete theme. It never
// fails: every slot that cannot be parsed resolves to its built-in
// default.
func Resolve(o Overrides) core.Theme {
	th := core.Theme{
		Foreground:          resolveSlot(o.Foreground, defaultForeground),
		Background:          resolveSlot(o.Background, defaultBackground),
		Cursor:              resolveSlot(o.Cursor, defaultCursor),
		CursorAccent:        resolveSlot(o.CursorAccent, defaultCursorAccent),
		SelectionBackground: resolveSlot(o.SelectionBackground, defaultSelectionBackground),
		SelectionOpacity:    resolveOpacity(o.SelectionOpacity),
	}

	if o.SelectionForeground != "" {
		if c, err := ParseColor(o.SelectionForeground); err == nil {
			th.SelectionForeground = &c
		}
	}
	return th
}

// Default returns the theme produced by empty overrides.
func Default() core.Theme {
	return Resolve(Overrides{})
}

// resolveSlot parses one slot, falling back to its default.
func resolveSlot(s string, fallback core.Color) core.Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// resolveOpacity applies the default for absent or non-finite values,
// then clamps to [0, 1] regardless of source.
func resolveOpacity(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return DefaultSelectionOpacity
	}
	return clampUnit(*v)
}
