package core

// SelectionRange is a normalized selection in reading order:
// start is at or before end regardless of original drag direction.
//
// The geometry is row-span, not rectangular: the first row is selected
// from StartCol to line end, the last row from line start to EndCol,
// and interior rows fully.
type SelectionRange struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// Contains reports whether the given cell falls inside the selection.
func (s SelectionRange) Contains(col, row int) bool {
	if row < s.StartRow || row > s.EndRow {
		return false
	}
	if s.StartRow == s.EndRow {
		return col >= s.StartCol && col <= s.EndCol
	}
	switch row {
	case s.StartRow:
		return col >= s.StartCol
	case s.EndRow:
		return col <= s.EndCol
	default:
		return true
	}
}

// RowSpan returns the selected [start, end] column range on the given
// row and whether the row intersects the selection at all. End is
// inclusive; cols is the row width used for unbounded edges.
func (s SelectionRange) RowSpan(row, cols int) (start, end int, ok bool) {
	if row < s.StartRow || row > s.EndRow {
		return 0, 0, false
	}
	start, end = 0, cols-1
	if row == s.StartRow {
		start = s.StartCol
	}
	if row == s.EndRow {
		end = s.EndCol
	}
	if end > cols-1 {
		end = cols - 1
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

// HoverRange describes the currently hovered hyperlink. Either or both
// parts may be present: LinkID matches cells tagged by the terminal
// engine, and the coordinate span covers pattern-matched plain-text
// links that carry no cell tag.
type HoverRange struct {
	// LinkID matches Cell.LinkID; 0 means no id-based hover.
	LinkID int

	// HasSpan indicates the coordinate span below is valid.
	HasSpan bool

	StartCol, StartRow int
	EndCol, EndRow     int
}

// SpanContains reports whether the cell falls inside the hovered
// coordinate span. Bounds are inclusive and correct across multi-row
// spans: first row col >= StartCol, last row col <= EndCol, interior
// rows always.
func (h HoverRange) SpanContains(col, row int) bool {
	if !h.HasSpan || row < h.StartRow || row > h.EndRow {
		return false
	}
	if h.StartRow == h.EndRow {
		return col >= h.StartCol && col <= h.EndCol
	}
	switch row {
	case h.StartRow:
		return col >= h.StartCol
	case h.EndRow:
		return col <= h.EndCol
	default:
		return true
	}
}
