package core

import "time"

// CursorStyle defines how the cursor is drawn.
type CursorStyle int

const (
	// CursorBlock fills the whole cell.
	CursorBlock CursorStyle = iota

	// CursorUnderline draws a strip along the cell bottom.
	CursorUnderline

	// CursorBar draws a strip along the cell's left edge.
	CursorBar
)

// String returns the style name.
func (s CursorStyle) String() string {
	switch s {
	case CursorBlock:
		return "block"
	case CursorUnderline:
		return "underline"
	case CursorBar:
		return "bar"
	default:
		return "unknown"
	}
}

// Metrics is the pixel geometry of one grid cell, derived from font
// measurement. It is the single source of truth for every pixel
// coordinate the backends compute.
type Metrics struct {
	// Width and Height are the cell box in pixels.
	Width, Height int

	// Baseline is the glyph baseline offset from the cell top.
	Baseline int
}

// Theme is a fully resolved color theme. Backends always receive a
// complete theme; resolution never fails (see the theme package).
type Theme struct {
	Foreground          Color
	Background          Color
	Cursor              Color
	CursorAccent        Color
	SelectionBackground Color

	// SelectionForeground, when non-nil, replaces the foreground of
	// selected cells. Nil keeps each cell's own foreground.
	SelectionForeground *Color

	// SelectionOpacity is the selection overlay opacity in [0, 1].
	SelectionOpacity float64
}

// GraphemeLookup resolves the display text of a grapheme-cluster cell
// at (row, col). Supplied per frame by the terminal engine.
type GraphemeLookup func(row, col int) string

// Input is the per-frame render record consumed by a backend's Render.
//
// It is assembled fresh each frame by the owning widget and is not
// retained by backends past the call; the cell slice stays owned by the
// terminal engine.
type Input struct {
	Cols, Rows int

	// Cells is the visible viewport, row-major, length Cols*Rows.
	Cells []Cell

	// RowFlags holds one repaint bitmask per row, length Rows.
	RowFlags []RowFlag

	// FullRepaint forces every row to be repainted regardless of flags.
	FullRepaint bool

	// Selection is the active selection, nil when none.
	Selection *SelectionRange

	// Hover is the hovered hyperlink, nil when none.
	Hover *HoverRange

	CursorX, CursorY int
	CursorVisible    bool
	CursorStyle      CursorStyle

	// Grapheme resolves multi-code-point cell text. May be nil when no
	// cell in the frame has GraphemeLen > 0.
	Grapheme GraphemeLookup

	Theme Theme

	// ViewportY is the viewport offset into scrollback: 0 at the
	// bottom, ScrollbackLen when scrolled fully back.
	ViewportY int

	// ScrollbackLen is the number of scrolled-out lines.
	ScrollbackLen int

	// ScrollbarOpacity is the externally driven scrollbar fade in [0, 1].
	ScrollbarOpacity float64

	// ScheduledAt carries the frame-request timestamp through for
	// latency measurement.
	ScheduledAt time.Time
}

// CellAt returns the cell at (col, row), or an empty cell when out of
// bounds.
func (in *Input) CellAt(col, row int) Cell {
	if col < 0 || col >= in.Cols || row < 0 || row >= in.Rows {
		return EmptyCell()
	}
	i := row*in.Cols + col
	if i >= len(in.Cells) {
		return EmptyCell()
	}
	return in.Cells[i]
}
