// Package backend provides the drawing backends for the render
// subsystem.
//
// A Renderer paints per-frame render input onto a bound surface. Two
// variants implement the same contract: an immediate-mode 2D backend
// painting into a pixel surface, and a GPU-style backend encoding draw
// commands for an injected device. The variant is chosen at
// construction via Options, never by runtime type inspection.
package backend

import (
	"errors"
	"fmt"

	"github.com/dshills/termpaint/internal/render/core"
)

// ErrNotAttached is returned by draw-related calls before Attach.
var ErrNotAttached = errors.New("backend: not attached to a surface")

// Kind selects a backend variant at construction.
type Kind int

const (
	// Kind2D is the immediate-mode 2D pixel backend.
	Kind2D Kind = iota

	// KindGPU is the command-encoding GPU backend.
	KindGPU
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Kind2D:
		return "2d"
	case KindGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Surface is a drawing target bound via Attach. Concrete surface types
// are backend-specific: the 2D backend requires a *PixelSurface, the
// GPU backend a Device. Attach validates the type and fails on a
// mismatch.
type Surface any

// Renderer is the capability contract shared by all backend variants.
//
// Renderers are single-threaded: all calls must come from the frame
// loop's goroutine, and concurrent Render on one instance is
// unsupported. Render is fully synchronous; every draw operation
// completes before it returns.
type Renderer interface {
	// Attach binds a drawing target. Must precede any draw call.
	Attach(s Surface) error

	// Resize recomputes backing-store dimensions from cell metrics and
	// fully repaints the background, since the prior store contents are
	// invalidated.
	Resize(cols, rows int) error

	// Render paints one frame. The input is valid only for the call.
	Render(in *core.Input) error

	// UpdateTheme replaces the current theme.
	UpdateTheme(th core.Theme)

	// SetFontSize changes the font size and remeasures cell metrics.
	SetFontSize(size float64) error

	// SetFontFamily changes the font family and remeasures cell
	// metrics. An empty path selects the builtin bitmap face.
	SetFontFamily(path string) error

	// Metrics returns the current cell geometry snapshot.
	Metrics() core.Metrics

	// Clear paints the theme background over the whole surface.
	Clear() error

	// Dispose releases backend-owned resources. The renderer must not
	// be used afterwards.
	Dispose()
}

// Options configures backend construction.
type Options struct {
	// Kind selects the backend variant.
	Kind Kind

	// FontPath is a TTF file path; empty selects the builtin face.
	FontPath string

	// FontSize is the font point size; non-positive defaults to 12.
	FontSize float64

	// DevicePixelRatio scales css pixels to device pixels;
	// non-positive defaults to 1.
	DevicePixelRatio float64
}

// New constructs a renderer of the configured kind.
func New(opts Options) (Renderer, error) {
	switch opts.Kind {
	case Kind2D:
		return newCanvas(opts)
	case KindGPU:
		return newGPU(opts)
	default:
		return nil, fmt.Errorf("backend: unknown kind %d", int(opts.Kind))
	}
}
