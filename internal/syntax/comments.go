package syntax

import "strings"

const (
	blockOpen  = "/*"
	blockClose = "*/"
)

// commentRules describes the comment markers of one language.
type commentRules struct {
	line  string // opener of a comment running to end of line, "" if none
	block bool   // whether /* */ block comments exist
}

func rulesFor(lang Language) commentRules {
	switch lang {
	case CFamily, JavaScript:
		return commentRules{line: "//", block: true}
	case CSS:
		return commentRules{block: true}
	case Python:
		return commentRules{line: "#"}
	default:
		return commentRules{}
	}
}

func (r commentRules) none() bool {
	return r.line == "" && !r.block
}

// openerAt reports whether a comment starts at pos. Block openers are
// reported with block set.
func (r commentRules) openerAt(line string, pos int) (ok, block bool) {
	rest := line[pos:]
	if r.line != "" && strings.HasPrefix(rest, r.line) {
		if r.line == "#" && pos > 0 && line[pos-1] == '\\' {
			return false, false
		}
		return true, false
	}
	if r.block && strings.HasPrefix(rest, blockOpen) {
		return true, true
	}
	return false, false
}

// nextOpener returns the offset of the first comment opener at or after
// from, or -1.
func (r commentRules) nextOpener(line string, from int) (pos int, block bool) {
	for i := from; i < len(line); i++ {
		c := line[i]
		if c != '/' && c != '#' {
			continue
		}
		if ok, b := r.openerAt(line, i); ok {
			return i, b
		}
	}
	return -1, false
}

// closeAfter returns the offset just past the first "*/" at or after from,
// or -1 when the block comment does not end on this line.
func closeAfter(line string, from int) int {
	if from > len(line) {
		return -1
	}
	i := strings.Index(line[from:], blockClose)
	if i < 0 {
		return -1
	}
	return from + i + len(blockClose)
}
