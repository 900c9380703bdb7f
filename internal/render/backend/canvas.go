package backend

import (
	"fmt"

	"github.com/dshills/termpaint/internal/render/core"
	"github.com/dshills/termpaint/internal/render/fontset"
	"github.com/dshills/termpaint/internal/render/theme"
)

// canvas is the immediate-mode 2D backend. It paints directly into a
// PixelSurface, repainting only the rows DirtyRows selects.
type canvas struct {
	surf *PixelSurface

	family   *fontset.Family
	fontPath string
	fontSize float64
	dpr      float64
	metrics  core.Metrics

	theme      core.Theme
	cols, rows int
}

// newCanvas builds the 2D backend from options.
func newCanvas(opts Options) (*canvas, error) {
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

	return &canvas{
		family:   fam,
		fontPath: opts.FontPath,
		fontSize: size,
		dpr:      dpr,
		metrics:  fam.Metrics(),
		theme:    theme.Default(),
	}, nil
}

// loadFamily loads a TTF family or falls back to the builtin face for
// an empty path.
func loadFamily(path string, size, dpr float64) (*fontset.Family, error) {
	if path == "" {
		return fontset.Builtin(), nil
	}
	return fontset.Load(path, size, dpr)
}

func (b *canvas) Attach(s Surface) error {
	ps, ok := s.(*PixelSurface)
	if !ok {
		return fmt.Errorf("backend: 2d renderer requires a *PixelSurface, got %T", s)
	}
	b.surf = ps
	return nil
}

func (b *canvas) Resize(cols, rows int) error {
	if b.surf == nil {
		return ErrNotAttached
	}
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.cols, b.rows = cols, rows

	// Backing store in device pixels; metrics already carry the device
	// pixel ratio through the face size.
	b.surf.SetSize(cols*b.metrics.Width, rows*b.metrics.Height)

	// All prior pixels are invalid after reallocation.
	return b.Clear()
}

func (b *canvas) Render(in *core.Input) error {
	if b.surf == nil || b.surf.Image() == nil {
		return ErrNotAttached
	}

	b.theme = in.Theme
	paintFrame(b, b.metrics, in)
	return nil
}

func (b *canvas) UpdateTheme(th core.Theme) {
	b.theme = th
}

func (b *canvas) SetFontSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("backend: invalid font size %g", size)
	}
	b.fontSize = size
	return b.remeasure()
}

func (b *canvas) SetFontFamily(path string) error {
	b.fontPath = path
	return b.remeasure()
}

// remeasure reloads faces and rederives cell metrics. The caller is
// expected to Resize afterwards, since the backing-store dimensions
// depend on the metrics.
func (b *canvas) remeasure() error {
	fam, err := loadFamily(b.fontPath, b.fontSize, b.dpr)
	if err != nil {
		return err
	}
	if b.family != nil {
		b.family.Close()
	}
	b.family = fam
	b.metrics = fam.Metrics()
	return nil
}

func (b *canvas) Metrics() core.Metrics {
	return b.metrics
}

func (b *canvas) Clear() error {
	if b.surf == nil || b.surf.Image() == nil {
		return ErrNotAttached
	}
	w, h := b.surf.Size()
	b.fillSrc(0, 0, w, h, b.theme.Background)
	return nil
}

func (b *canvas) Dispose() {
	if b.family != nil {
		b.family.Close()
		b.family = nil
	}
	b.surf = nil
}
