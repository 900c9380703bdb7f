package backend

import "image"

// PixelSurface is the drawing target of the 2D backend: an RGBA
// backing store reallocated on resize. Reallocation invalidates every
// prior pixel, which is why Resize must fully repaint the background.
type PixelSurface struct {
	img *image.RGBA
}

// NewPixelSurface creates an empty pixel surface. The backing store is
// allocated on the first SetSize.
func NewPixelSurface() *PixelSurface {
	return &PixelSurface{}
}

// SetSize reallocates the backing store to w x h device pixels.
func (s *PixelSurface) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the current backing-store dimensions in device pixels.
func (s *PixelSurface) Size() (w, h int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing store for pixel-geometry verification by
// test harnesses and for final presentation by the owner.
func (s *PixelSurface) Image() *image.RGBA {
	return s.img
}
