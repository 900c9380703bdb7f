package backend

import (
	"fmt"

	"github.com/dshills/termpaint/internal/render/core"
	"github.com/dshills/termpaint/internal/render/fontset"
	"github.com/dshills/termpaint/internal/render/theme"
)

// Device is the GPU abstraction the command backend targets. A frame
// is bracketed by BeginFrame/EndFrame; Submit may be called once or
// more in between with encoded commands in draw order.
type Device interface {
	// BeginFrame prepares a frame at the given device-pixel size.
	BeginFrame(width, height int)

	// Submit consumes encoded commands. The slice is owned by the
	// backend and is valid only for the call.
	Submit(cmds []Command)

	// EndFrame presents the frame.
	EndFrame()

	// Release frees device resources on Dispose.
	Release()
}

// CommandKind discriminates encoded draw commands.
type CommandKind uint8

const (
	// CmdFill overwrites a rectangle.
	CmdFill CommandKind = iota

	// CmdBlend composites a rectangle with the color's alpha.
	CmdBlend

	// CmdGlyph draws an atlas glyph with its baseline at (X, Y).
	CmdGlyph
)

// GlyphKey identifies a glyph-atlas entry.
type GlyphKey struct {
	Text   string
	Bold   bool
	Italic bool
}

// Command is one encoded draw operation.
type Command struct {
	Kind       CommandKind
	X, Y, W, H int
	Color      core.Color

	// Glyph fields, valid when Kind == CmdGlyph.
	Glyph GlyphKey
	// Atlas is the stable atlas slot for the glyph.
	Atlas int
}

// gpu is the command-encoding backend. It shares the frame compositor
// with the 2D backend, so both variants produce identical geometry;
// only the execution differs.
type gpu struct {
	device Device

	family   *fontset.Family
	fontPath string
	fontSize float64
	dpr      float64
	metrics  core.Metrics

	theme      core.Theme
	cols, rows int

	// Glyph atlas: stable slot per distinct (text, bold, italic).
	atlas map[GlyphKey]int

	cmds []Command
}

// newGPU builds the command backend from options.
func newGPU(opts Options) (*gpu, error) {
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}
	dpr := opts.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}

	fam, err := loadFamily(opts.FontPath, size, dpr)
	if err != nil {
		return nil, err
	}

	return &gpu{
		family:   fam,
		fontPath: opts.FontPath,
		fontSize: size,
		dpr:      dpr,
		metrics:  fam.Metrics(),
		theme:    theme.Default(),
		atlas:    make(map[GlyphKey]int),
	}, nil
}

func (b *gpu) Attach(s Surface) error {
	dev, ok := s.(Device)
	if !ok {
		return fmt.Errorf("backend: gpu renderer requires a Device, got %T", s)
	}
	b.device = dev
	return nil
}

func (b *gpu) Resize(cols, rows int) error {
	if b.device == nil {
		return ErrNotAttached
	}
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.cols, b.rows = cols, rows

	// The resized framebuffer has no valid content; repaint the
	// background in full.
	return b.Clear()
}

func (b *gpu) Render(in *core.Input) error {
	if b.device == nil {
		return ErrNotAttached
	}

	b.theme = in.Theme
	b.cmds = b.cmds[:0]
	paintFrame(b, b.metrics, in)

	b.device.BeginFrame(in.Cols*b.metrics.Width, in.Rows*b.metrics.Height)
	b.device.Submit(b.cmds)
	b.device.EndFrame()
	return nil
}

func (b *gpu) UpdateTheme(th core.Theme) {
	b.theme = th
}

func (b *gpu) SetFontSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("backend: invalid font size %g", size)
	}
	b.fontSize = size
	return b.remeasure()
}

func (b *gpu) SetFontFamily(path string) error {
	b.fontPath = path
	return b.remeasure()
}

// remeasure reloads faces, rederives metrics, and drops the glyph
// atlas, whose rasterizations no longer match the faces.
func (b *gpu) remeasure() error {
	fam, err := loadFamily(b.fontPath, b.fontSize, b.dpr)
	if err != nil {
		return err
	}
	if b.family != nil {
		b.family.Close()
	}
	b.family = fam
	b.metrics = fam.Metrics()
	b.atlas = make(map[GlyphKey]int)
	return nil
}

func (b *gpu) Metrics() core.Metrics {
	return b.metrics
}

func (b *gpu) Clear() error {
	if b.device == nil {
		return ErrNotAttached
	}
	w := b.cols * b.metrics.Width
	h := b.rows * b.metrics.Height
	b.device.BeginFrame(w, h)
	b.device.Submit([]Command{{Kind: CmdFill, W: w, H: h, Color: b.theme.Background}})
	b.device.EndFrame()
	return nil
}

func (b *gpu) Dispose() {
	if b.family != nil {
		b.family.Close()
		b.family = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	b.atlas = nil
	b.cmds = nil
}

// drawOps implementation: encode instead of rasterize.

func (b *gpu) fillSrc(x, y, w, h int, c core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	b.cmds = append(b.cmds, Command{Kind: CmdFill, X: x, Y: y, W: w, H: h, Color: c})
}

func (b *gpu) fillOver(x, y, w, h int, c core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	b.cmds = append(b.cmds, Command{Kind: CmdBlend, X: x, Y: y, W: w, H: h, Color: c})
}

func (b *gpu) glyph(x, baselineY int, text string, bold, italic bool, c core.Color) {
	key := GlyphKey{Text: text, Bold: bold, Italic: italic}
	slot, ok := b.atlas[key]
	if !ok {
		slot = len(b.atlas)
		b.atlas[key] = slot
	}
	b.cmds = append(b.cmds, Command{
		Kind:  CmdGlyph,
		X:     x,
		Y:     baselineY,
		Color: c,
		Glyph: key,
		Atlas: slot,
	})
}
