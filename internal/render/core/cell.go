package core

import "github.com/mattn/go-runewidth"

// Cell represents one grid position's rendering attributes for a frame.
//
// Cells are supplied by the terminal engine as a flat row-major slice of
// length cols*rows covering the visible viewport. Backends never mutate
// or retain them past a single render call.
type Cell struct {
	// Rune is the display code point. A value of 0 in a width-1 cell is
	// rendered as a space.
	Rune rune

	// GraphemeLen is the number of code points in the cell's grapheme
	// cluster. When greater than zero the display text comes from the
	// frame's grapheme lookup instead of Rune.
	GraphemeLen int

	// Width is the display width of this cell.
	// 0 for spacer cells continuing a wide glyph, 1 normal, 2 wide.
	Width int

	// FG and BG are the cell's colors. A zero BG means "theme background".
	FG, BG Color

	// Attrs is the style-flags bitmask.
	Attrs Attr

	// LinkID groups cells belonging to the same hyperlink target.
	// 0 means no hyperlink.
	LinkID int
}

// EmptyCell returns a blank width-1 cell with unset colors.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

// NewCell creates a cell with the given rune, deriving its width.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Width: runewidth.RuneWidth(r)}
}

// SpacerCell returns the continuation cell placed after a wide glyph.
func SpacerCell() Cell {
	return Cell{Rune: 0, Width: 0}
}

// IsSpacer returns true if this cell continues a preceding wide glyph.
func (c Cell) IsSpacer() bool {
	return c.Width == 0
}
