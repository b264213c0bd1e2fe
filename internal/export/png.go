package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// EncodePNG writes packed RGBA pixels, four bytes per pixel row-major, as
// an 8-bit RGBA PNG.
func EncodePNG(w io.Writer, pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return viewerr.Errorf(viewerr.Encode, "encode png",
			"%d bytes do not hold a %dx%d RGBA image", len(pix), width, height)
	}
	img := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	if err := png.Encode(w, img); err != nil {
		return viewerr.New(viewerr.Encode, "encode png", fmt.Errorf("failed to write PNG image file: %w", err))
	}
	return nil
}

// WritePNG encodes the pixels and replaces the file at path with them.
func WritePNG(ctx context.Context, path string, pix []byte, width, height int) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, pix, width, height); err != nil {
		return err
	}
	if err := writeAtomic(ctx, path, buf.Bytes()); err != nil {
		return viewerr.New(viewerr.Encode, "save png", fmt.Errorf("failed to write PNG image file: %w", err))
	}
	return nil
}
