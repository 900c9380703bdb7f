package core

import "testing"

func TestSelectionContainsSingleRow(t *testing.T) {
	// Selection on row 1 from col 2 to col 5 of a 10x3 grid.
	sel := SelectionRange{StartCol: 2, StartRow: 1, EndCol: 5, EndRow: 1}

	for row := 0; row < 3; row++ {
		for col := 0; col < 10; col++ {
			want := row == 1 && col >= 2 && col <= 5
			if got := sel.Contains(col, row); got != want {
				t.Errorf("Contains(%d, %d) = %v, want %v", col, row, got, want)
			}
		}
	}
}

func TestSelectionContainsMultiRow(t *testing.T) {
	// Three-row selection: row 0 from col 5, all of row 1, row 2 to col 2.
	sel := SelectionRange{StartCol: 5, StartRow: 0, EndCol: 2, EndRow: 2}

	tests := []struct {
		col, row int
		want     bool
	}{
		{4, 0, false},
		{5, 0, true},
		{9, 0, true},
		{0, 1, true},
		{9, 1, true},
		{0, 2, true},
		{2, 2, true},
		{3, 2, false},
		{5, 3, false},
	}

	for _, tt := range tests {
		if got := sel.Contains(tt.col, tt.row); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestSelectionRowSpan(t *testing.T) {
	sel := SelectionRange{StartCol: 5, StartRow: 0, EndCol: 2, EndRow: 2}

	tests := []struct {
		row        int
		start, end int
		ok         bool
	}{
		{0, 5, 9, true},
		{1, 0, 9, true},
		{2, 0, 2, true},
		{3, 0, 0, false},
	}

	for _, tt := range tests {
		start, end, ok := sel.RowSpan(tt.row, 10)
		if ok != tt.ok {
			t.Errorf("RowSpan(%d) ok = %v, want %v", tt.row, ok, tt.ok)
			continue
		}
		if ok && (start != tt.start || end != tt.end) {
			t.Errorf("RowSpan(%d) = [%d, %d], want [%d, %d]", tt.row, start, end, tt.start, tt.end)
		}
	}
}

func TestSelectionRowSpanEmptyAfterClamp(t *testing.T) {
	// Start column beyond the row width yields no span.
	sel := SelectionRange{StartCol: 12, StartRow: 0, EndCol: 3, EndRow: 1}

	if _, _, ok := sel.RowSpan(0, 10); ok {
		t.Error("RowSpan should be empty when start is past the row end")
	}
}

func TestHoverSpanContains(t *testing.T) {
	hover := HoverRange{
		HasSpan:  true,
		StartCol: 4, StartRow: 1,
		EndCol: 2, EndRow: 3,
	}

	tests := []struct {
		col, row int
		want     bool
	}{
		{3, 1, false},
		{4, 1, true},
		{0, 2, true},
		{9, 2, true},
		{2, 3, true},
		{3, 3, false},
		{4, 0, false},
		{0, 4, false},
	}

	for _, tt := range tests {
		if got := hover.SpanContains(tt.col, tt.row); got != tt.want {
			t.Errorf("SpanContains(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestHoverSpanDisabled(t *testing.T) {
	hover := HoverRange{LinkID: 3}

	if hover.SpanContains(0, 0) {
		t.Error("SpanContains should be false without a span")
	}
}
