package backend

import (
	"reflect"
	"testing"

	"github.com/dshills/termpaint/internal/render/core"
)

func TestDirtyRowsDilation(t *testing.T) {
	tests := []struct {
		name  string
		flags []core.RowFlag
		rows  int
		want  []int
	}{
		{
			name:  "single dirty row dilates to neighbors",
			flags: []core.RowFlag{0, 0, 0, core.RowDirty, 0, 0},
			rows:  6,
			want:  []int{2, 3, 4},
		},
		{
			name:  "first row clips low neighbor",
			flags: []core.RowFlag{core.RowDirty, 0, 0},
			rows:  3,
			want:  []int{0, 1},
		},
		{
			name:  "last row clips high neighbor",
			flags: []core.RowFlag{0, 0, core.RowDirty},
			rows:  3,
			want:  []int{1, 2},
		},
		{
			name:  "selection flag triggers repaint",
			flags: []core.RowFlag{0, core.RowHasSelection, 0, 0},
			rows:  4,
			want:  []int{0, 1, 2},
		},
		{
			name:  "hyperlink flag triggers repaint",
			flags: []core.RowFlag{0, 0, core.RowHasHyperlink},
			rows:  3,
			want:  []int{1, 2},
		},
		{
			name:  "clean frame paints nothing",
			flags: []core.RowFlag{0, 0, 0},
			rows:  3,
			want:  nil,
		},
		{
			name:  "overlapping dilations merge",
			flags: []core.RowFlag{core.RowDirty, 0, core.RowDirty, 0, 0},
			rows:  5,
			want:  []int{0, 1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirtyRows(tt.flags, false, tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DirtyRows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirtyRowsFullRepaint(t *testing.T) {
	got := DirtyRows([]core.RowFlag{0, 0, 0, 0}, true, 4)
	want := []int{0, 1, 2, 3}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("DirtyRows with full repaint = %v, want %v", got, want)
	}
}

func TestDirtyRowsEmptyGrid(t *testing.T) {
	if got := DirtyRows(nil, true, 0); got != nil {
		t.Errorf("DirtyRows on empty grid = %v, want nil", got)
	}
}

func TestDirtyRowsShortFlagSlice(t *testing.T) {
	// Flags shorter than the row count must not panic; unflagged rows
	// beyond the slice stay clean.
	got := DirtyRows([]core.RowFlag{core.RowDirty}, false, 4)
	want := []int{0, 1}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("DirtyRows = %v, want %v", got, want)
	}
}
