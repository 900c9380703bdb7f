package core

// Attr represents per-cell text attributes (bold, italic, etc.).
type Attr uint16

// Text attribute flags.
const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << iota
	AttrItalic             // Italic text
	AttrUnderline          // Underlined text
	AttrStrikethrough      // Struck-through text
	AttrInverse            // Swap fg/bg
	AttrInvisible          // Glyph is not drawn
	AttrFaint              // Glyph drawn at half alpha
)

// Has returns true if the attribute set contains the given attribute.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attr) Without(attr Attr) Attr {
	return a &^ attr
}

// RowFlag marks per-row repaint conditions for one frame.
type RowFlag uint8

// Row flag bits. A row is repainted when any bit is set, or when an
// adjacent row's bits force it in (see backend.DirtyRows).
const (
	RowDirty RowFlag = 1 << iota
	RowHasSelection
	RowHasHyperlink
)

// NeedsPaint returns true if any repaint-triggering bit is set.
func (f RowFlag) NeedsPaint() bool {
	return f&(RowDirty|RowHasSelection|RowHasHyperlink) != 0
}
