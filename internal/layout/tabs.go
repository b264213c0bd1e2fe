package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used when a non-positive tab width is configured.
const DefaultTabWidth = 4

// Expander replaces tabs with spaces up to the next tab stop while text of
// one line is fed to it piece by piece.
type Expander struct {
	tabWidth int
	col      int
}

// NewExpander returns an Expander at column zero.
func NewExpander(tabWidth int) *Expander {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Expander{tabWidth: tabWidth}
}

// Reset moves back to column zero for a new line.
func (e *Expander) Reset() {
	e.col = 0
}

// Column returns the current display column.
func (e *Expander) Column() int {
	return e.col
}

// Expand returns s with tabs expanded from the current column and advances
// the column past it.
func (e *Expander) Expand(s string) string {
	if !strings.ContainsRune(s, '\t') {
		e.col += runewidth.StringWidth(s)
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			n := e.tabWidth - e.col%e.tabWidth
			b.WriteString(strings.Repeat(" ", n))
			e.col += n
			continue
		}
		b.WriteRune(r)
		e.col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// ExpandTabs expands the tabs of a whole line.
func ExpandTabs(line string, tabWidth int) string {
	return NewExpander(tabWidth).Expand(line)
}

// CellMetrics measures text in terminal cells.
type CellMetrics struct{}

func (CellMetrics) LineHeight() int { return 1 }

func (CellMetrics) StringWidth(s string) int { return runewidth.StringWidth(s) }
