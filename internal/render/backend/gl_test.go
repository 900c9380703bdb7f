package backend

import (
	"errors"
	"testing"

	"github.com/dshills/termpaint/internal/render/core"
	"github.com/dshills/termpaint/internal/render/theme"
)

// recordDevice captures submitted frames for inspection.
type recordDevice struct {
	frameW, frameH int
	frames         [][]Command
	inFrame        bool
	released       bool
}

func (d *recordDevice) BeginFrame(w, h int) {
	d.frameW, d.frameH = w, h
	d.inFrame = true
	d.frames = append(d.frames, nil)
}

func (d *recordDevice) Submit(cmds []Command) {
	if !d.inFrame {
		return
	}
	last := len(d.frames) - 1
	d.frames[last] = append(d.frames[last], cmds...)
}

func (d *recordDevice) EndFrame() { d.inFrame = false }
func (d *recordDevice) Release()  { d.released = true }

func (d *recordDevice) lastFrame() []Command {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

func newTestGPU(t *testing.T, cols, rows int) (Renderer, *recordDevice) {
	t.Helper()

	r, err := New(Options{Kind: KindGPU})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dev := &recordDevice{}
	if err := r.Attach(dev); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := r.Resize(cols, rows); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	return r, dev
}

func TestGPUBeforeAttachFails(t *testing.T) {
	r, err := New(Options{Kind: KindGPU})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Render(frame(4, 2)); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Render before attach = %v, want ErrNotAttached", err)
	}
	if err := r.Attach(NewPixelSurface()); err == nil {
		t.Error("Attach should reject a non-device surface")
	}
}

func TestGPUResizeEmitsBackgroundClear(t *testing.T) {
	r, dev := newTestGPU(t, 8, 4)
	m := r.Metrics()

	cmds := dev.lastFrame()
	if len(cmds) != 1 {
		t.Fatalf("resize emitted %d commands, want 1", len(cmds))
	}
	c := cmds[0]
	if c.Kind != CmdFill || c.W != 8*m.Width || c.H != 4*m.Height {
		t.Errorf("resize clear = %+v, want full-surface fill", c)
	}
	if c.Color != theme.Default().Background {
		t.Errorf("resize clear color = %v, want theme background", c.Color)
	}
}

func TestGPURowSequencing(t *testing.T) {
	r, dev := newTestGPU(t, 3, 1)

	in := frame(3, 1)
	red := core.EmptyCell()
	red.BG = core.RGB(200, 0, 0)
	in.Cells[0] = red
	in.Cells[1] = core.NewCell('A')
	in.Selection = &core.SelectionRange{StartCol: 0, StartRow: 0, EndCol: 1, EndRow: 0}

	if err := r.Render(in); err != nil {
		t.Fatalf("Render: %v", err)
	}

	cmds := dev.lastFrame()
	if len(cmds) == 0 {
		t.Fatal("no commands recorded")
	}

	// All backgrounds in a row precede every glyph: pass 1 fully
	// commits before pass 2 starts.
	lastFill, firstGlyph := -1, -1
	for i, c := range cmds {
		switch c.Kind {
		case CmdFill:
			lastFill = i
		case CmdGlyph:
			if firstGlyph < 0 {
				firstGlyph = i
			}
		}
	}
	if firstGlyph < 0 {
		t.Fatal("glyph command missing")
	}
	if lastFill > firstGlyph {
		t.Errorf("background fill at %d after glyph at %d", lastFill, firstGlyph)
	}

	// The row clear comes first, then the red cell fill.
	if cmds[0].Kind != CmdFill || cmds[0].X != 0 {
		t.Errorf("first command = %+v, want row clear", cmds[0])
	}
	if cmds[1].Kind != CmdFill || cmds[1].Color != core.RGB(200, 0, 0) {
		t.Errorf("second command = %+v, want red cell fill", cmds[1])
	}

	// The selection overlay is a blend, not a fill.
	foundBlend := false
	for _, c := range cmds {
		if c.Kind == CmdBlend && c.Color.A == theme.Default().SelectionOpacity {
			foundBlend = true
		}
	}
	if !foundBlend {
		t.Error("selection overlay blend command missing")
	}
}

func TestGPUGlyphAtlasStable(t *testing.T) {
	r, dev := newTestGPU(t, 2, 1)

	in := frame(2, 1)
	in.Cells[0] = core.NewCell('A')
	in.Cells[1] = core.NewCell('A')

	if err := r.Render(in); err != nil {
		t.Fatalf("Render: %v", err)
	}
	first := glyphSlots(dev.lastFrame())
	if len(first) != 2 {
		t.Fatalf("recorded %d glyphs, want 2", len(first))
	}
	if first[0] != first[1] {
		t.Errorf("same glyph got slots %d and %d, want shared atlas entry", first[0], first[1])
	}

	if err := r.Render(in); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	second := glyphSlots(dev.lastFrame())
	if second[0] != first[0] {
		t.Errorf("atlas slot changed across frames: %d then %d", first[0], second[0])
	}
}

func glyphSlots(cmds []Command) []int {
	var slots []int
	for _, c := range cmds {
		if c.Kind == CmdGlyph {
			slots = append(slots, c.Atlas)
		}
	}
	return slots
}

func TestGPUBoldItalicDistinctAtlasEntries(t *testing.T) {
	r, dev := newTestGPU(t, 2, 1)

	in := frame(2, 1)
	plain := core.NewCell('A')
	bold := core.NewCell('A')
	bold.Attrs = core.AttrBold
	in.Cells[0] = plain
	in.Cells[1] = bold

	if err := r.Render(in); err != nil {
		t.Fatalf("Render: %v", err)
	}

	slots := glyphSlots(dev.lastFrame())
	if len(slots) != 2 {
		t.Fatalf("recorded %d glyphs, want 2", len(slots))
	}
	if slots[0] == slots[1] {
		t.Error("bold variant should occupy its own atlas slot")
	}
}

func TestGPUDisposeReleasesDevice(t *testing.T) {
	r, dev := newTestGPU(t, 2, 1)

	r.Dispose()

	if !dev.released {
		t.Error("Dispose should release the device")
	}
}

func TestGPUFontChangeDropsAtlas(t *testing.T) {
	r, dev := newTestGPU(t, 2, 1)

	in := frame(2, 1)
	in.Cells[0] = core.NewCell('Z')
	if err := r.Render(in); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if err := r.SetFontSize(16); err != nil {
		t.Fatalf("SetFontSize: %v", err)
	}

	if err := r.Render(in); err != nil {
		t.Fatalf("Render after font change: %v", err)
	}
	slots := glyphSlots(dev.lastFrame())
	if len(slots) != 1 || slots[0] != 0 {
		t.Errorf("atlas should restart after font change, slots = %v", slots)
	}
}
