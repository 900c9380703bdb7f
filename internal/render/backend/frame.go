package backend

import (
	"math"

	"github.com/dshills/termpaint/internal/render/core"
)

// linkAccent is the fixed underline color for hovered hyperlinks.
var linkAccent = core.RGB(0x00, 0x7a, 0xcc)

// faintAlpha is the glyph alpha multiplier for faint cells.
const faintAlpha = 0.5

// cursorStripRatio sizes underline/bar cursor strips relative to the
// cell box, with a 2px floor.
const cursorStripRatio = 0.15

// Scrollbar geometry and alpha constants.
const (
	scrollbarMinThumb      = 20
	scrollbarAlphaRest     = 0.4
	scrollbarAlphaScrolled = 0.8
)

// drawOps is the primitive set the frame compositor paints with. The
// 2D backend executes the primitives immediately; the GPU backend
// encodes them into a command buffer. Both variants therefore share
// one compositing pipeline.
type drawOps interface {
	// fillSrc overwrites a rectangle with the color.
	fillSrc(x, y, w, h int, c core.Color)

	// fillOver composites a rectangle over existing content, honoring
	// the color's alpha.
	fillOver(x, y, w, h int, c core.Color)

	// glyph draws text with its baseline at (x, baselineY) using the
	// face composed from the bold/italic flags.
	glyph(x, baselineY int, text string, bold, italic bool, c core.Color)
}

// paintFrame composites one frame: dirty rows, then cursor, then
// scrollbar.
func paintFrame(ops drawOps, m core.Metrics, in *core.Input) {
	for _, row := range DirtyRows(in.RowFlags, in.FullRepaint, in.Rows) {
		paintRow(ops, m, in, row)
	}
	paintCursor(ops, m, in)
	paintScrollbar(ops, m, in)
}

// paintRow repaints one row in two fully sequenced passes: every
// background in the row is committed before any glyph is drawn.
// Left-extending combining marks can paint into a neighboring cell's
// area, so interleaving the passes would let a later cell's background
// erase an earlier cell's overflow.
func paintRow(ops drawOps, m core.Metrics, in *core.Input, row int) {
	y := row * m.Height

	// Pass 1: backgrounds.
	ops.fillSrc(0, y, in.Cols*m.Width, m.Height, in.Theme.Background)

	for col := 0; col < in.Cols; col++ {
		cell := in.CellAt(col, row)
		if cell.IsSpacer() {
			continue
		}

		bg, ok := cellBackground(in, cell)
		if !ok {
			// Theme-background cells show the pre-cleared row.
			continue
		}
		ops.fillSrc(col*m.Width, y, cell.Width*m.Width, m.Height, bg)
	}

	if in.Selection != nil {
		if start, end, ok := in.Selection.RowSpan(row, in.Cols); ok {
			overlay := in.Theme.SelectionBackground.WithAlpha(in.Theme.SelectionOpacity)
			ops.fillOver(start*m.Width, y, (end-start+1)*m.Width, m.Height, overlay)
		}
	}

	// Pass 2: glyphs and decorations.
	for col := 0; col < in.Cols; col++ {
		cell := in.CellAt(col, row)
		if cell.IsSpacer() || cell.Attrs.Has(core.AttrInvisible) {
			continue
		}
		paintCell(ops, m, in, cell, col, row)
	}
}

// cellBackground resolves the fill color for pass 1. The second return
// is false when the pre-cleared theme background should show through.
func cellBackground(in *core.Input, cell core.Cell) (core.Color, bool) {
	if cell.Attrs.Has(core.AttrInverse) {
		// Inverse fills with the resolved foreground.
		fg := cell.FG
		if fg.IsZero() {
			fg = in.Theme.Foreground
		}
		return fg, true
	}
	if cell.BG.IsZero() {
		return core.Color{}, false
	}
	return cell.BG, true
}

// cellForeground resolves the glyph color for pass 2.
func cellForeground(in *core.Input, cell core.Cell, col, row int) core.Color {
	var fg core.Color
	if cell.Attrs.Has(core.AttrInverse) {
		fg = cell.BG
		if fg.IsZero() {
			fg = in.Theme.Background
		}
	} else {
		fg = cell.FG
		if fg.IsZero() {
			fg = in.Theme.Foreground
		}
	}

	// Ordinary selections change only the background overlay; an
	// explicit selection foreground overrides the cell's own.
	if in.Theme.SelectionForeground != nil && in.Selection != nil && in.Selection.Contains(col, row) {
		fg = *in.Theme.SelectionForeground
	}

	if cell.Attrs.Has(core.AttrFaint) {
		fg = fg.WithAlpha(fg.A * faintAlpha)
	}
	return fg
}

// paintCell draws one cell's glyph and decorations.
func paintCell(ops drawOps, m core.Metrics, in *core.Input, cell core.Cell, col, row int) {
	x := col * m.Width
	y := row * m.Height
	cellWidth := cell.Width * m.Width

	fg := cellForeground(in, cell, col, row)

	text := cellText(in, cell, col, row)
	if text != "" && text != " " {
		bold := cell.Attrs.Has(core.AttrBold)
		italic := cell.Attrs.Has(core.AttrItalic)
		ops.glyph(x, y+m.Baseline, text, bold, italic, fg)
	}

	underlineY := y + underlineRow(m)
	if cell.Attrs.Has(core.AttrUnderline) {
		ops.fillOver(x, underlineY, cellWidth, 1, fg)
	}
	if cell.Attrs.Has(core.AttrStrikethrough) {
		ops.fillOver(x, y+m.Height/2, cellWidth, 1, fg)
	}

	if hover := in.Hover; hover != nil {
		idMatch := cell.LinkID != 0 && cell.LinkID == hover.LinkID
		if idMatch || hover.SpanContains(col, row) {
			ops.fillOver(x, underlineY, cellWidth, 1, linkAccent)
		}
	}
}

// underlineRow places the underline stroke below the baseline, clamped
// into the cell box. Faces whose descent is shallower than 2px would
// otherwise push the stroke past the cell bottom, clipping it on the
// last row and bleeding into the neighbor row elsewhere.
func underlineRow(m core.Metrics) int {
	row := m.Baseline + 2
	if row > m.Height-1 {
		row = m.Height - 1
	}
	return row
}

// cellText resolves a cell's display text: the grapheme lookup for
// cluster cells, otherwise the single code point with NUL mapped to a
// space.
func cellText(in *core.Input, cell core.Cell, col, row int) string {
	if cell.GraphemeLen > 0 && in.Grapheme != nil {
		return in.Grapheme(row, col)
	}
	if cell.Rune == 0 {
		return " "
	}
	return string(cell.Rune)
}

// paintCursor draws the cursor in the theme cursor color when
// visibility is externally asserted.
func paintCursor(ops drawOps, m core.Metrics, in *core.Input) {
	if !in.CursorVisible {
		return
	}
	if in.CursorX < 0 || in.CursorX >= in.Cols || in.CursorY < 0 || in.CursorY >= in.Rows {
		return
	}

	x := in.CursorX * m.Width
	y := in.CursorY * m.Height

	switch in.CursorStyle {
	case core.CursorBlock:
		ops.fillOver(x, y, m.Width, m.Height, in.Theme.Cursor)
	case core.CursorUnderline:
		h := cursorStrip(m.Height)
		ops.fillOver(x, y+m.Height-h, m.Width, h, in.Theme.Cursor)
	case core.CursorBar:
		w := cursorStrip(m.Width)
		ops.fillOver(x, y, w, m.Height, in.Theme.Cursor)
	}
}

// cursorStrip returns the strip thickness for underline/bar cursors:
// 15% of the cell dimension with a 2px floor.
func cursorStrip(dim int) int {
	s := int(math.Round(float64(dim) * cursorStripRatio))
	if s < 2 {
		s = 2
	}
	return s
}

// paintScrollbar draws the scrollbar track and thumb along the right
// edge. The track is always cleared first so externally driven
// fade-out never ghosts a stale thumb.
func paintScrollbar(ops drawOps, m core.Metrics, in *core.Input) {
	if in.ScrollbackLen <= 0 || in.ScrollbarOpacity <= 0 {
		return
	}

	trackW := scrollbarTrackWidth(m.Width)
	trackH := in.Rows * m.Height
	trackX := in.Cols*m.Width - trackW

	ops.fillSrc(trackX, 0, trackW, trackH, in.Theme.Background)

	total := in.Rows + in.ScrollbackLen
	thumbH := int(float64(in.Rows) / float64(total) * float64(trackH))
	if thumbH < scrollbarMinThumb {
		thumbH = scrollbarMinThumb
	}
	if thumbH > trackH {
		thumbH = trackH
	}

	// Offset 0 puts the thumb at the bottom, full scrollback at the top.
	progress := float64(in.ViewportY) / float64(in.ScrollbackLen)
	thumbY := int((1 - progress) * float64(trackH-thumbH))

	alpha := scrollbarAlphaRest
	if in.ViewportY > 0 {
		alpha = scrollbarAlphaScrolled
	}
	alpha *= in.ScrollbarOpacity

	ops.fillOver(trackX, thumbY, trackW, thumbH, in.Theme.Foreground.WithAlpha(alpha))
}

// scrollbarTrackWidth derives the track width from the cell width.
func scrollbarTrackWidth(cellWidth int) int {
	w := cellWidth / 2
	if w < 4 {
		w = 4
	}
	return w
}
