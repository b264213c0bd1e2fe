package export

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// Surface is an off-screen RGBA color surface.
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a width x height surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, viewerr.Errorf(viewerr.RenderResource, "allocate surface",
			"failed to create render texture %dx%d", width, height)
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Clear fills the whole surface with c.
func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Pixels reads the surface back as packed 8-bit RGBA rows with a stride of
// four bytes per pixel.
func (s *Surface) Pixels() ([]byte, error) {
	w, h := s.Width(), s.Height()
	stride := w * 4
	if s.img.Stride < stride || len(s.img.Pix) < s.img.Stride*(h-1)+stride {
		return nil, viewerr.Errorf(viewerr.RenderResource, "read back surface",
			"failed to map staging texture %dx%d", w, h)
	}

	pix := make([]byte, stride*h)
	for y := range h {
		copy(pix[y*stride:(y+1)*stride], s.img.Pix[y*s.img.Stride:])
	}
	return pix, nil
}
