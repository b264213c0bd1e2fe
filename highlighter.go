package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/theme"
)

// SyntaxHighlighter turns token categories into terminal styles. It is the
// on-screen counterpart of the image renderer and reads the same palette.
type SyntaxHighlighter struct {
	palette     theme.Palette
	base        tcell.Style
	categories  [syntax.NumCategories]tcell.Style
	gutter      tcell.Style
	match       tcell.Style
	activeMatch tcell.Style
}

// NewSyntaxHighlighter builds the styles of palette p on top of base.
func NewSyntaxHighlighter(base tcell.Style, p theme.Palette) *SyntaxHighlighter {
	sh := &SyntaxHighlighter{}
	sh.SetPalette(base, p)
	return sh
}

// SetPalette replaces every style.
func (sh *SyntaxHighlighter) SetPalette(base tcell.Style, p theme.Palette) {
	sh.palette = p
	sh.base = base.Background(tcellColor(p.Background)).Foreground(tcellColor(p.Color(syntax.Default)))
	for i := range sh.categories {
		sh.categories[i] = sh.base.Foreground(tcellColor(p.Categories[i]))
	}
	sh.gutter = sh.base.Foreground(tcellColor(p.LineNumber))
	sh.match = sh.base.Background(tcellColor(p.Match))
	sh.activeMatch = sh.base.Background(tcellColor(p.ActiveMatch))
}

// Palette returns the palette the styles were built from.
func (sh *SyntaxHighlighter) Palette() theme.Palette { return sh.palette }

// Base is the style of the code background.
func (sh *SyntaxHighlighter) Base() tcell.Style { return sh.base }

// Gutter is the style of line numbers.
func (sh *SyntaxHighlighter) Gutter() tcell.Style { return sh.gutter }

// Style returns the style of a token of category c. Search matches keep the
// token color over the match background.
func (sh *SyntaxHighlighter) Style(c syntax.Category, match, active bool) tcell.Style {
	style := sh.base
	if int(c) < len(sh.categories) {
		style = sh.categories[c]
	}
	switch {
	case active:
		_, bg, _ := sh.activeMatch.Decompose()
		style = style.Background(bg)
	case match:
		_, bg, _ := sh.match.Decompose()
		style = style.Background(bg)
	}
	return style
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
