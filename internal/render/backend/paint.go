package backend

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/termpaint/internal/render/core"
)

// fillSrc implements drawOps by overwriting pixels.
func (b *canvas) fillSrc(x, y, w, h int, c core.Color) {
	b.fill(x, y, w, h, c, draw.Src)
}

// fillOver implements drawOps by alpha compositing.
func (b *canvas) fillOver(x, y, w, h int, c core.Color) {
	b.fill(x, y, w, h, c, draw.Over)
}

func (b *canvas) fill(x, y, w, h int, c core.Color, op draw.Op) {
	img := b.surf.Image()
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(x, y, x+w, y+h).Intersect(img.Bounds())
	draw.Draw(img, rect, image.NewUniform(toNRGBA(c)), image.Point{}, op)
}

// glyph implements drawOps with a font.Drawer over the backing store.
func (b *canvas) glyph(x, baselineY int, text string, bold, italic bool, c core.Color) {
	img := b.surf.Image()
	if img == nil {
		return
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(toNRGBA(c)),
		Face: b.family.Face(bold, italic),
		Dot:  fixed.P(x, baselineY),
	}
	d.DrawString(text)
}

// toNRGBA converts a core color to non-premultiplied RGBA.
func toNRGBA(c core.Color) color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}
