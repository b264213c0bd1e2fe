package syntax

import "strings"

const trailingSpace = " \t\r\n"

// Strip removes comments from text. Trailing whitespace left on a line is
// trimmed and lines with nothing left are dropped; every kept line ends in
// a single '\n'.
//
// Python comments run from the first '#' not preceded by a backslash to end
// of line, including a '#' inside a string literal.
func Strip(text string, lang Language) string {
	rules := rulesFor(lang)
	var (
		out   strings.Builder
		state ScanState
		kept  string
	)
	out.Grow(len(text))
	for _, line := range SplitLines(text) {
		if rules.none() {
			kept = line
		} else {
			kept, state = stripLine(line, rules, state)
		}
		kept = strings.TrimRight(kept, trailingSpace)
		if kept == "" {
			continue
		}
		out.WriteString(kept)
		out.WriteByte('\n')
	}
	return out.String()
}

// stripLine deletes the comment spans of one line, threading the block
// comment carry the same way the scanner does.
func stripLine(line string, rules commentRules, state ScanState) (string, ScanState) {
	var b strings.Builder
	pos := 0
	removed := false
	keep := func(seg string) {
		if seg == "" {
			return
		}
		if removed && b.Len() > 0 && gluesOpener(rules, b.String()[b.Len()-1], seg[0]) {
			b.WriteByte(' ')
		}
		b.WriteString(seg)
		removed = false
	}

	for pos < len(line) {
		if state.InBlockComment {
			end := closeAfter(line, pos)
			if end < 0 {
				break
			}
			state.InBlockComment = false
			removed = true
			pos = end
			continue
		}

		at, block := rules.nextOpener(line, pos)
		if at < 0 {
			keep(line[pos:])
			break
		}
		keep(line[pos:at])
		if !block {
			break
		}
		end := closeAfter(line, at+len(blockOpen))
		if end < 0 {
			state.InBlockComment = true
			break
		}
		removed = true
		pos = end
	}
	return b.String(), state
}

// gluesOpener reports whether joining a byte ending the kept text with one
// starting the next kept segment would form a new comment opener.
func gluesOpener(rules commentRules, last, next byte) bool {
	if last != '/' {
		return false
	}
	return (rules.block && next == '*') || (rules.line == "//" && next == '/')
}
