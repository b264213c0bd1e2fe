// Package export renders a document to an off-screen surface with the same
// scanner and colors as the interactive view, and saves it as a PNG image.
package export

import (
	"fmt"
	"image"

	"github.com/golang/freetype"
	"golang.org/x/image/font"

	"github.com/bkmeneguello/codeview/internal/layout"
	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/theme"
	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// Options control the rendered image.
type Options struct {
	Palette     theme.Palette
	TabWidth    int
	Padding     int
	MaxDim      int
	LineNumbers bool
}

// DefaultOptions returns the built-in palette, a padding of 10 and the
// 8192 pixel texture limit.
func DefaultOptions() Options {
	return Options{
		Palette:     theme.Default(),
		TabWidth:    layout.DefaultTabWidth,
		Padding:     10,
		MaxDim:      8192,
		LineNumbers: true,
	}
}

// Render draws content onto a new surface. It runs its own scanner pass, so
// the multi-line comment state never leaks in from another renderer.
func Render(content string, lang syntax.Language, face *Face, opts Options) (*Surface, error) {
	m := layout.Measure(content, face, opts.TabWidth)
	if !opts.LineNumbers {
		m.GutterWidth = 0
	}
	width, height, err := layout.Canvas(m, opts.Padding, opts.MaxDim)
	if err != nil {
		return nil, err
	}

	s, err := NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	s.Clear(opts.Palette.Background)

	c := freetype.NewContext()
	c.SetDPI(dpi)
	c.SetFont(face.font)
	c.SetFontSize(face.size)
	c.SetHinting(font.HintingFull)
	c.SetClip(s.img.Bounds())
	c.SetDst(s.img)

	exp := layout.NewExpander(opts.TabWidth)
	top := opts.Padding
	var drawErr error
	syntax.Walk(content, lang, func(i int, _ string, toks []syntax.Token) bool {
		if top >= height {
			return false
		}
		x := opts.Padding
		baseline := top + face.Ascent()

		if opts.LineNumbers {
			c.SetSrc(image.NewUniform(opts.Palette.LineNumber))
			if _, drawErr = c.DrawString(layout.GutterLabel(i+1, m.Lines), freetype.Pt(x, baseline)); drawErr != nil {
				return false
			}
			x += m.GutterWidth
		}

		pt := freetype.Pt(x, baseline)
		exp.Reset()
		for _, tok := range toks {
			c.SetSrc(image.NewUniform(opts.Palette.Color(tok.Category)))
			if pt, drawErr = c.DrawString(exp.Expand(tok.Text), pt); drawErr != nil {
				return false
			}
		}
		top += m.LineHeight
		return true
	})
	if drawErr != nil {
		return nil, viewerr.New(viewerr.RenderResource, "render", fmt.Errorf("drawing text: %w", drawErr))
	}
	return s, nil
}
