package main

import (
	"github.com/bkmeneguello/codeview/internal/document"
	"github.com/bkmeneguello/codeview/internal/syntax"
)

// highlightedLine is one scanned row of the processed content.
type highlightedLine struct {
	start  int
	text   string
	tokens []syntax.Token
}

// HighlightCache holds the tokens of the rows visible in the current frame.
// Every Update is a fresh scan from the top of the document, so the
// multi-line comment state is never carried over from an earlier frame or
// from another document.
type HighlightCache struct {
	rows map[int]highlightedLine
}

// NewHighlightCache initializes an empty HighlightCache.
func NewHighlightCache() *HighlightCache {
	return &HighlightCache{rows: make(map[int]highlightedLine)}
}

// Clear drops every retained row.
func (hc *HighlightCache) Clear() {
	clear(hc.rows)
}

// Update rescans doc and keeps rows offsetY through offsetY+height-1.
func (hc *HighlightCache) Update(doc *document.Document, offsetY, height int) {
	hc.Clear()
	end := offsetY + height
	start := 0
	doc.Scan(func(i int, line string, toks []syntax.Token) bool {
		if i >= end {
			return false
		}
		if i >= offsetY {
			hc.rows[i] = highlightedLine{start: start, text: line, tokens: toks}
		}
		start += len(line) + 1
		return true
	})
}

// Exists checks if a line index was retained.
func (hc *HighlightCache) Exists(lineIndex int) bool {
	_, exists := hc.rows[lineIndex]
	return exists
}

// Get retrieves a retained line.
func (hc *HighlightCache) Get(lineIndex int) (highlightedLine, bool) {
	row, ok := hc.rows[lineIndex]
	return row, ok
}
