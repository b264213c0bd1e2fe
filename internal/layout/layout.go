// Package layout sizes tokenized documents for the on-screen view and for
// image export.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// GutterSeparator follows every line number.
const GutterSeparator = " | "

// Metrics measures text in the units of one rendering backend: terminal
// cells or pixels.
type Metrics interface {
	LineHeight() int
	StringWidth(s string) int
}

// Measurement is the extent of a document laid out with line numbers.
type Measurement struct {
	Lines        int
	MaxLineWidth int
	GutterWidth  int
	LineHeight   int
}

// Width is the gutter plus the widest line.
func (m Measurement) Width() int {
	return m.GutterWidth + m.MaxLineWidth
}

// Height is the height of all lines.
func (m Measurement) Height() int {
	return m.Lines * m.LineHeight
}

// LineCount returns the number of lines in content: one per '\n', plus one
// for an unterminated last line. It is never less than one.
func LineCount(content string) int {
	n := strings.Count(content, "\n")
	if content != "" && content[len(content)-1] != '\n' {
		n++
	}
	return max(n, 1)
}

// Digits returns the number of decimal digits of n.
func Digits(n int) int {
	return len(strconv.Itoa(max(n, 1)))
}

// GutterLabel formats line number n padded to the digits of the last line.
func GutterLabel(n, lines int) string {
	return fmt.Sprintf("%-*d%s", Digits(lines), n, GutterSeparator)
}

// Measure computes the line count, the widest expanded line and the width
// of the line-number column of content.
func Measure(content string, m Metrics, tabWidth int) Measurement {
	lines := LineCount(content)
	widest := 0
	for _, line := range syntax.SplitLines(content) {
		widest = max(widest, m.StringWidth(ExpandTabs(line, tabWidth)))
	}
	return Measurement{
		Lines:        lines,
		MaxLineWidth: widest,
		GutterWidth:  m.StringWidth(GutterLabel(lines, lines)),
		LineHeight:   m.LineHeight(),
	}
}

// Canvas returns the export surface size for m: the content plus padding on
// every side, each axis clamped to maxDim. A canvas left with no room inside
// the padding is a Size error.
func Canvas(m Measurement, padding, maxDim int) (width, height int, err error) {
	width = min(m.Width()+2*padding, maxDim)
	height = min(m.Height()+2*padding, maxDim)
	if width <= 2*padding || height <= 2*padding {
		return 0, 0, viewerr.Errorf(viewerr.Size, "layout canvas",
			"calculated image size %dx%d is invalid", width, height)
	}
	return width, height, nil
}
