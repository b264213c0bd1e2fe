// Package theme holds the per-category color table shared by every
// renderer.
package theme

import (
	"fmt"
	"image/color"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/bkmeneguello/codeview/internal/syntax"
)

// DefaultName selects the built-in palette.
const DefaultName = "default"

// Palette maps highlight categories and chrome to colors.
type Palette struct {
	Name        string
	Categories  [syntax.NumCategories]color.RGBA
	Background  color.RGBA
	LineNumber  color.RGBA
	Match       color.RGBA
	ActiveMatch color.RGBA
}

// Color returns the color of category c.
func (p Palette) Color(c syntax.Category) color.RGBA {
	if int(c) < len(p.Categories) {
		return p.Categories[c]
	}
	return p.Categories[syntax.Default]
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Default returns the built-in dark palette.
func Default() Palette {
	p := Palette{
		Name:        DefaultName,
		Background:  rgb(28, 31, 33),
		LineNumber:  rgb(128, 128, 128),
		Match:       rgb(100, 100, 0),
		ActiveMatch: rgb(160, 140, 0),
	}
	p.Categories[syntax.Default] = rgb(230, 232, 235)
	p.Categories[syntax.Keyword] = rgb(51, 153, 230)
	p.Categories[syntax.Comment] = rgb(89, 166, 89)
	p.Categories[syntax.String] = rgb(204, 128, 77)
	p.Categories[syntax.Number] = rgb(179, 179, 102)
	p.Categories[syntax.Preprocessor] = rgb(153, 102, 204)
	p.Categories[syntax.HTMLTag] = rgb(230, 77, 77)
	p.Categories[syntax.CSSSelector] = rgb(204, 77, 204)
	p.Categories[syntax.CSSProperty] = rgb(77, 128, 242)
	return p
}

var chromaTypes = [syntax.NumCategories]chroma.TokenType{
	syntax.Default:      chroma.Text,
	syntax.Keyword:      chroma.Keyword,
	syntax.Comment:      chroma.Comment,
	syntax.String:       chroma.LiteralString,
	syntax.Number:       chroma.LiteralNumber,
	syntax.Preprocessor: chroma.CommentPreproc,
	syntax.HTMLTag:      chroma.NameTag,
	syntax.CSSSelector:  chroma.NameClass,
	syntax.CSSProperty:  chroma.NameProperty,
}

// Load returns the palette called name: DefaultName or "" for the built-in
// one, otherwise a registered chroma style.
func Load(name string) (Palette, error) {
	if name == "" || name == DefaultName {
		return Default(), nil
	}
	style, ok := styles.Registry[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown theme %q", name)
	}
	return FromChroma(style), nil
}

// FromChroma derives a palette from a chroma style. Categories the style
// leaves unset keep the built-in colors.
func FromChroma(style *chroma.Style) Palette {
	p := Default()
	p.Name = style.Name

	bg := style.Get(chroma.Background)
	if bg.Background.IsSet() {
		p.Background = fromColour(bg.Background)
	}
	if bg.Colour.IsSet() {
		p.Categories[syntax.Default] = fromColour(bg.Colour)
	}
	if ln := style.Get(chroma.LineNumbers); ln.Colour.IsSet() {
		p.LineNumber = fromColour(ln.Colour)
	}
	for cat, tt := range chromaTypes {
		if cat == int(syntax.Default) {
			continue
		}
		if entry := style.Get(tt); entry.Colour.IsSet() {
			p.Categories[cat] = fromColour(entry.Colour)
		}
	}
	return p
}

func fromColour(c chroma.Colour) color.RGBA {
	return rgb(c.Red(), c.Green(), c.Blue())
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
