// Package fontset manages font faces and cell-metric measurement for
// the drawing backends.
//
// A Family bundles the regular, bold, italic, and bold-italic faces of
// one font at a fixed size and device pixel ratio. Cell metrics are
// derived from face measurement and are the single source of truth for
// backend pixel geometry; they must be remeasured whenever family or
// size changes.
package fontset

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/dshills/termpaint/internal/render/core"
)

// Family is a set of style-variant faces for one font.
type Family struct {
	name    string
	faces   [4]font.Face
	metrics core.Metrics
}

// face index bits.
const (
	variantBold   = 1
	variantItalic = 2
)

// Load parses a TTF file and builds faces at the given point size,
// scaled by the device pixel ratio. TrueType files carry one style, so
// bold and italic variants reuse the same face; terminals that want
// real bold faces load a dedicated family.
func Load(path string, size, dpr float64) (*Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	if size <= 0 {
		size = 12
	}
	if dpr <= 0 {
		dpr = 1
	}

	face := truetype.NewFace(ft, &truetype.Options{
		Size: size * dpr,
		DPI:  72,
	})

	fam := &Family{name: path}
	for i := range fam.faces {
		fam.faces[i] = face
	}
	fam.metrics = Measure(face)
	return fam, nil
}

// Builtin returns a family backed by the fixed 7x13 bitmap face,
// used when no font file is configured and in tests.
func Builtin() *Family {
	fam := &Family{name: "builtin"}
	for i := range fam.faces {
		fam.faces[i] = basicfont.Face7x13
	}
	fam.metrics = Measure(basicfont.Face7x13)
	return fam
}

// Name returns the family's configured name or path.
func (f *Family) Name() string {
	return f.name
}

// Face returns the face for the given style composition.
func (f *Family) Face(bold, italic bool) font.Face {
	idx := 0
	if bold {
		idx |= variantBold
	}
	if italic {
		idx |= variantItalic
	}
	return f.faces[idx]
}

// Metrics returns the measured cell geometry.
func (f *Family) Metrics() core.Metrics {
	return f.metrics
}

// Close releases face resources. Safe to call more than once.
func (f *Family) Close() error {
	var first error
	seen := map[font.Face]bool{}
	for _, face := range f.faces {
		if face == nil || seen[face] {
			continue
		}
		seen[face] = true
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Measure derives integer cell metrics from a face: width is the
// widest digit-or-letter advance, height is ascent plus descent, and
// the baseline sits at the ascent.
func Measure(face font.Face) core.Metrics {
	fm := face.Metrics()

	width := 0
	for _, r := range "0W" {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > width {
			width = adv.Ceil()
		}
	}
	if width < 1 {
		width = 1
	}

	height := (fm.Ascent + fm.Descent).Ceil()
	if height < 1 {
		height = 1
	}

	return core.Metrics{
		Width:    width,
		Height:   height,
		Baseline: fm.Ascent.Ceil(),
	}
}
