// Package document models the files open in the viewer: their raw and
// processed content, display toggles and search state.
package document

import (
	"path/filepath"

	"github.com/bkmeneguello/codeview/internal/layout"
	"github.com/bkmeneguello/codeview/internal/syntax"
)

// Document is one open file.
type Document struct {
	Path     string
	Name     string
	Content  string
	Language syntax.Language

	// Processed is derived from Content, Language and ShowComments by
	// Reprocess and must not be edited directly.
	Processed    string
	ShowComments bool
	Open         bool
	Search       SearchState
}

// New returns an open document for the file at path with comments shown.
func New(path, content string) *Document {
	name := filepath.Base(path)
	d := &Document{
		Path:         path,
		Name:         name,
		Content:      content,
		Language:     syntax.Classify(name),
		ShowComments: true,
		Open:         true,
		Search:       newSearchState(),
	}
	d.Reprocess()
	return d
}

// Reprocess rebuilds Processed and refreshes the search results. Calling it
// again without changing its inputs yields the same bytes.
func (d *Document) Reprocess() {
	if d.ShowComments {
		d.Processed = d.Content
	} else {
		d.Processed = syntax.Strip(d.Content, d.Language)
	}
	d.Search.refresh(d.Processed)
}

// SetShowComments sets the comment toggle and reprocesses when it changes.
func (d *Document) SetShowComments(show bool) {
	if d.ShowComments == show {
		return
	}
	d.ShowComments = show
	d.Reprocess()
}

// ToggleComments flips the comment toggle.
func (d *Document) ToggleComments() {
	d.SetShowComments(!d.ShowComments)
}

// Reload replaces the raw content, keeping the display toggles.
func (d *Document) Reload(content string) {
	d.Content = content
	d.Reprocess()
}

// Close marks the document closed.
func (d *Document) Close() {
	d.Open = false
}

// LineCount returns the number of lines of the processed content.
func (d *Document) LineCount() int {
	return layout.LineCount(d.Processed)
}

// Scan runs a fresh scanner pass over the processed content.
func (d *Document) Scan(fn func(index int, line string, toks []syntax.Token) bool) {
	syntax.Walk(d.Processed, d.Language, fn)
}
