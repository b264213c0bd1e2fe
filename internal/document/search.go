package document

import (
	"bytes"
	"strings"
)

// NoMatch is the current match index when none is selected.
const NoMatch = -1

// SearchState is the find-in-document state of one Document.
type SearchState struct {
	Query         string
	CaseSensitive bool
	Active        bool

	// Matches holds ascending byte offsets into the processed content.
	Matches []int
	Current int

	scrollLine  int
	scrollMatch bool
}

func newSearchState() SearchState {
	return SearchState{Current: NoMatch}
}

// Find returns the start offsets of non-overlapping occurrences of query in
// content, scanning forward and resuming after each match. Without
// caseSensitive both sides are folded to lower case byte by byte, ASCII
// only, so offsets stay valid for content.
func Find(content, query string, caseSensitive bool) []int {
	if query == "" {
		return nil
	}
	haystack, needle := []byte(content), []byte(query)
	if !caseSensitive {
		haystack, needle = foldASCII(haystack), foldASCII(needle)
	}

	var matches []int
	for from := 0; from <= len(haystack)-len(needle); {
		i := bytes.Index(haystack[from:], needle)
		if i < 0 {
			break
		}
		matches = append(matches, from+i)
		from += i + len(needle)
	}
	return matches
}

func foldASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func (s *SearchState) refresh(content string) {
	s.Matches = Find(content, s.Query, s.CaseSensitive)
	s.Current = NoMatch
}

// SetQuery replaces the query and recomputes matches over content.
func (d *Document) SetQuery(query string) {
	d.Search.Query = query
	d.Search.refresh(d.Processed)
}

// SetCaseSensitive changes case sensitivity and recomputes matches.
func (d *Document) SetCaseSensitive(on bool) {
	d.Search.CaseSensitive = on
	d.Search.refresh(d.Processed)
}

// ToggleSearch shows or hides the search bar.
func (d *Document) ToggleSearch() {
	d.Search.Active = !d.Search.Active
}

// NextMatch selects the following match, wrapping to the first, and asks
// for it to be scrolled into view. It reports false when there are no
// matches.
func (d *Document) NextMatch() bool {
	s := &d.Search
	if len(s.Matches) == 0 {
		return false
	}
	s.Current = (s.Current + 1) % len(s.Matches)
	s.scrollMatch = true
	return true
}

// PrevMatch selects the preceding match, wrapping to the last. With no
// current match it selects the last one.
func (d *Document) PrevMatch() bool {
	s := &d.Search
	if len(s.Matches) == 0 {
		return false
	}
	if s.Current == NoMatch {
		s.Current = len(s.Matches) - 1
	} else {
		s.Current = (s.Current - 1 + len(s.Matches)) % len(s.Matches)
	}
	s.scrollMatch = true
	return true
}

// CurrentOffset returns the offset of the selected match.
func (s *SearchState) CurrentOffset() (int, bool) {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.Current], true
}

// GotoLine asks for the 1-based line to be scrolled into view, clamped to
// the lines of the document. It returns the clamped line.
func (d *Document) GotoLine(line int) int {
	line = max(1, min(line, d.LineCount()))
	d.Search.scrollLine = line
	d.Search.scrollMatch = false
	return line
}

// TakeScroll returns the 1-based line a pending goto or match navigation
// wants in view and clears the request.
func (d *Document) TakeScroll() (int, bool) {
	s := &d.Search
	switch {
	case s.scrollLine > 0:
		line := s.scrollLine
		s.scrollLine = 0
		s.scrollMatch = false
		return line, true
	case s.scrollMatch:
		s.scrollMatch = false
		off, ok := s.CurrentOffset()
		if !ok {
			return 0, false
		}
		return LineOf(d.Processed, off), true
	}
	return 0, false
}

// LineOf returns the 1-based line holding byte offset off.
func LineOf(content string, off int) int {
	off = max(0, min(off, len(content)))
	return strings.Count(content[:off], "\n") + 1
}

// LineStart returns the byte offset at which the 1-based line begins, or
// len(content) when there are fewer lines.
func LineStart(content string, line int) int {
	off := 0
	for n := 1; n < line; n++ {
		i := strings.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content)
		}
		off += i + 1
	}
	return off
}
