package backend

import "github.com/dshills/termpaint/internal/render/core"

// DirtyRows computes the minimal repaint set for one frame.
//
// A row is included when its flags request paint, and each included
// row's immediate vertical neighbors are dilated into the set even if
// unflagged. The dilation is a correctness requirement, not a
// performance heuristic: glyphs can paint outside their nominal cell
// box vertically, so repainting only the flagged row would leave stale
// overflow fragments from a neighbor, or let a later neighbor repaint
// erase this row's own overflow.
//
// FullRepaint short-circuits to every row. The result is sorted and
// clipped to [0, rows).
func DirtyRows(flags []core.RowFlag, fullRepaint bool, rows int) []int {
	if rows <= 0 {
		return nil
	}

	if fullRepaint {
		all := make([]int, rows)
		for i := range all {
			all[i] = i
		}
		return all
	}

	include := make([]bool, rows)
	for r := 0; r < rows && r < len(flags); r++ {
		if !flags[r].NeedsPaint() {
			continue
		}
		include[r] = true
		if r > 0 {
			include[r-1] = true
		}
		if r+1 < rows {
			include[r+1] = true
		}
	}

	var out []int
	for r, in := range include {
		if in {
			out = append(out, r)
		}
	}
	return out
}
