package export

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// dpi makes one point one pixel.
const dpi = 72

// Face is a TrueType face at one size. It measures in pixels and satisfies
// layout.Metrics.
type Face struct {
	font    *truetype.Font
	face    font.Face
	size    float64
	spacing int
}

// LoadFace reads the TrueType file at path, or uses Go Mono when path is
// empty. spacing is added to the font height to get the line height.
func LoadFace(path string, size float64, spacing int) (*Face, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, viewerr.New(viewerr.RenderResource, "load font",
				fmt.Errorf("font not loaded for image export: %w", err))
		}
		data = b
	}
	return ParseFace(data, size, spacing)
}

// ParseFace builds a Face from TrueType data.
func ParseFace(ttf []byte, size float64, spacing int) (*Face, error) {
	if size <= 0 {
		return nil, viewerr.Errorf(viewerr.RenderResource, "load font", "invalid font size %g", size)
	}
	ft, err := truetype.Parse(ttf)
	if err != nil {
		return nil, viewerr.New(viewerr.RenderResource, "load font",
			fmt.Errorf("font not loaded for image export: %w", err))
	}
	return &Face{
		font:    ft,
		face:    truetype.NewFace(ft, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull}),
		size:    size,
		spacing: max(spacing, 0),
	}, nil
}

// LineHeight is the font height plus the configured spacing.
func (f *Face) LineHeight() int {
	return f.face.Metrics().Height.Ceil() + f.spacing
}

// Ascent is the distance from the top of a line to its baseline.
func (f *Face) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

// StringWidth returns the advance of s in pixels.
func (f *Face) StringWidth(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// Close releases the face.
func (f *Face) Close() error {
	return f.face.Close()
}
