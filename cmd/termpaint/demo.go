package main

import (
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/termpaint/internal/config"
	"github.com/dshills/termpaint/internal/render/backend"
	"github.com/dshills/termpaint/internal/render/core"
	"github.com/dshills/termpaint/internal/render/sched"
	"github.com/dshills/termpaint/internal/render/theme"
)

// demo drives a short scripted frame sequence through the scheduler:
// a full repaint, then cursor movement, a selection sweep, a hovered
// link, and a scrollback jump, each repainting only the rows it dirties.
type demo struct {
	renderer backend.Renderer
	profile  config.Profile
	cols     int
	rows     int
	frames   int
	output   string
	logger   *log.Logger

	grid      *grid
	theme     core.Theme
	scheduler *sched.Scheduler
	source    *sched.StepSource
}

func (d *demo) run(kind backend.Kind) error {
	var surf *backend.PixelSurface
	var dev *statsDevice
	switch kind {
	case backend.Kind2D:
		surf = backend.NewPixelSurface()
		if err := d.renderer.Attach(surf); err != nil {
			return err
		}
	case backend.KindGPU:
		dev = &statsDevice{logger: d.logger}
		if err := d.renderer.Attach(dev); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported backend kind %v", kind)
	}

	if err := d.renderer.Resize(d.cols, d.rows); err != nil {
		return err
	}

	d.grid = newGrid(d.cols, d.rows)
	d.grid.fillSample()
	d.theme = theme.Resolve(d.profile.ThemeOverrides())
	d.renderer.UpdateTheme(d.theme)

	d.source = sched.NewStepSource()
	d.scheduler = sched.New(d.source)

	for frame := 0; frame < d.frames; frame++ {
		d.script(frame)
		var renderErr error
		d.scheduler.Schedule(func(at time.Time) {
			renderErr = d.renderFrame(at, frame == 0)
		}, time.Now())
		if !d.source.Step() {
			return fmt.Errorf("frame %d: scheduler never armed", frame)
		}
		if renderErr != nil {
			return fmt.Errorf("frame %d: %w", frame, renderErr)
		}
		d.logger.Debug("rendered frame", "n", frame)
		d.grid.clearDirty()
	}

	if surf != nil {
		return d.writePNG(surf)
	}
	dev.report()
	return nil
}

// script mutates the grid for the given frame of the demo sequence.
func (d *demo) script(frame int) {
	g := d.grid
	switch frame {
	case 0:
		// Initial frame paints everything.
	case 1:
		g.cursorX, g.cursorY = 10, 2
		g.markDirty(2)
	case 2:
		g.selection = &core.SelectionRange{StartCol: 3, StartRow: 1, EndCol: 20, EndRow: 3}
		for row := 1; row <= 3; row++ {
			g.rowFlags[row] |= core.RowHasSelection
			g.markDirty(row)
		}
	case 3:
		g.hover = &core.HoverRange{LinkID: 1}
		g.markDirty(5)
	case 4:
		g.selection = nil
		g.hover = nil
		for row := 0; row < g.rows; row++ {
			g.rowFlags[row] &^= core.RowHasSelection
		}
		g.markDirty(1)
		g.markDirty(2)
		g.markDirty(3)
		g.markDirty(5)
	default:
		g.viewportY = g.scrollback / 2
		g.full = true
	}
}

func (d *demo) renderFrame(at time.Time, full bool) error {
	in := d.grid.input(at, d.theme)
	in.FullRepaint = in.FullRepaint || full
	return d.renderer.Render(in)
}

func (d *demo) writePNG(surf *backend.PixelSurface) error {
	f, err := os.Create(d.output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, surf.Image()); err != nil {
		return err
	}
	w, h := surf.Size()
	d.logger.Info("wrote frame", "path", d.output, "width", w, "height", h)
	return nil
}

// grid is the demo's stand-in for a terminal engine: it owns the cell
// slice, row flags, and overlay state a real engine would feed in.
type grid struct {
	cols, rows int
	cells      []core.Cell
	rowFlags   []core.RowFlag
	graphemes  map[[2]int]string

	cursorX, cursorY int
	selection        *core.SelectionRange
	hover            *core.HoverRange
	viewportY        int
	scrollback       int
	full             bool
}

func newGrid(cols, rows int) *grid {
	return &grid{
		cols:      cols,
		rows:      rows,
		cells:     make([]core.Cell, cols*rows),
		rowFlags:  make([]core.RowFlag, rows),
		graphemes: map[[2]int]string{},
	}
}

func (g *grid) fillSample() {
	fg := core.RGB(0xd4, 0xd4, 0xd4)
	accent := core.RGB(0x56, 0x9c, 0xd6)

	g.setText(0, 0, "termpaint demo", fg, core.Color{}, core.AttrBold)
	g.setText(1, 0, "plain text with a wide glyph: 漢字", fg, core.Color{}, 0)
	g.setText(2, 0, "styled: ", fg, core.Color{}, 0)
	g.setText(2, 8, "bold", fg, core.Color{}, core.AttrBold)
	g.setText(2, 13, "italic", fg, core.Color{}, core.AttrItalic)
	g.setText(2, 20, "inverse", fg, core.RGB(0x26, 0x4f, 0x78), core.AttrInverse)
	g.setText(3, 0, "faint and struck", fg, core.Color{}, core.AttrFaint|core.AttrStrikethrough)
	g.setText(4, 0, "clusters: é 👍 🇫🇷", fg, core.Color{}, 0)
	g.setLink(5, 0, "https://example.com", accent, 1)

	g.cursorX, g.cursorY = 0, 0
	g.scrollback = 120
}

// setText writes a string into the grid starting at (row, col),
// splitting it into grapheme clusters and inserting spacer cells after
// wide ones.
func (g *grid) setText(row, col int, text string, fg, bg core.Color, attrs core.Attr) {
	seg := uniseg.NewGraphemes(text)
	for seg.Next() && col < g.cols {
		cluster := seg.Str()
		runes := seg.Runes()
		width := runewidth.StringWidth(cluster)
		if width < 1 {
			width = 1
		}

		c := core.Cell{
			Rune:  runes[0],
			Width: width,
			FG:    fg,
			BG:    bg,
			Attrs: attrs,
		}
		if len(runes) > 1 {
			c.GraphemeLen = len(runes)
			g.graphemes[[2]int{row, col}] = cluster
		}
		g.cells[row*g.cols+col] = c
		col++

		if width > 1 && col < g.cols {
			sp := core.SpacerCell()
			sp.FG, sp.BG, sp.Attrs = fg, bg, attrs
			g.cells[row*g.cols+col] = sp
			col++
		}
	}
	g.markDirty(row)
}

func (g *grid) setLink(row, col int, text string, fg core.Color, linkID int) {
	g.setText(row, col, text, fg, core.Color{}, core.AttrUnderline)
	for i := col; i < col+runewidth.StringWidth(text) && i < g.cols; i++ {
		g.cells[row*g.cols+i].LinkID = linkID
	}
	g.rowFlags[row] |= core.RowHasHyperlink
}

func (g *grid) markDirty(row int) {
	if row >= 0 && row < g.rows {
		g.rowFlags[row] |= core.RowDirty
	}
}

func (g *grid) clearDirty() {
	for i := range g.rowFlags {
		g.rowFlags[i] &^= core.RowDirty
	}
	g.full = false
}

func (g *grid) input(at time.Time, th core.Theme) *core.Input {
	return &core.Input{
		Cols:          g.cols,
		Rows:          g.rows,
		Cells:         g.cells,
		RowFlags:      g.rowFlags,
		FullRepaint:   g.full,
		Selection:     g.selection,
		Hover:         g.hover,
		CursorX:       g.cursorX,
		CursorY:       g.cursorY,
		CursorVisible: true,
		CursorStyle:   core.CursorBlock,
		Grapheme: func(row, col int) string {
			return g.graphemes[[2]int{row, col}]
		},
		Theme:            th,
		ViewportY:        g.viewportY,
		ScrollbackLen:    g.scrollback,
		ScrollbarOpacity: 1,
		ScheduledAt:      at,
	}
}

// statsDevice counts encoded commands per frame for the gpu backend.
type statsDevice struct {
	logger *log.Logger

	frames int
	fills  int
	blends int
	glyphs int
}

func (d *statsDevice) BeginFrame(width, height int) { d.frames++ }

func (d *statsDevice) Submit(cmds []backend.Command) {
	for _, c := range cmds {
		switch c.Kind {
		case backend.CmdFill:
			d.fills++
		case backend.CmdBlend:
			d.blends++
		case backend.CmdGlyph:
			d.glyphs++
		}
	}
}

func (d *statsDevice) EndFrame() {}
func (d *statsDevice) Release()  {}

func (d *statsDevice) report() {
	d.logger.Info("encoded commands",
		"frames", d.frames, "fills", d.fills, "blends", d.blends, "glyphs", d.glyphs)
}
