package syntax

import (
	"strings"
	"unicode/utf8"
)

// ScanState is carried from one line to the next within a single pass over
// a document.
type ScanState struct {
	// InBlockComment is set while a /* comment is still open.
	InBlockComment bool
}

// ScanLine splits line into tokens whose texts, concatenated, equal line.
// state is the carry from the previous line; the carry for the next line is
// returned.
func ScanLine(line string, lang Language, state ScanState) ([]Token, ScanState) {
	return scanLine(line, lang, KeywordsFor(lang), state)
}

func scanLine(line string, lang Language, kw Keywords, state ScanState) ([]Token, ScanState) {
	var toks []Token
	emit := func(start, end int, cat Category) {
		if end > start {
			toks = append(toks, Token{Start: start, Text: line[start:end], Category: cat})
		}
	}

	rules := rulesFor(lang)
	pos := 0
	if state.InBlockComment {
		end := closeAfter(line, 0)
		if end < 0 {
			emit(0, len(line), Comment)
			return toks, state
		}
		emit(0, end, Comment)
		state.InBlockComment = false
		pos = end
	}

	for pos < len(line) {
		if isSpace(line[pos]) {
			end := pos + 1
			for end < len(line) && isSpace(line[end]) {
				end++
			}
			emit(pos, end, Default)
			pos = end
			continue
		}

		if ok, block := rules.openerAt(line, pos); ok {
			if !block {
				emit(pos, len(line), Comment)
				break
			}
			end := closeAfter(line, pos+len(blockOpen))
			if end < 0 {
				emit(pos, len(line), Comment)
				state.InBlockComment = true
				break
			}
			emit(pos, end, Comment)
			pos = end
			continue
		}

		end, cat := scanConstruct(line, pos, lang, kw)
		emit(pos, end, cat)
		pos = end
	}
	return toks, state
}

// scanConstruct classifies the non-comment construct starting at pos and
// returns its end. It always advances by at least one rune.
func scanConstruct(line string, pos int, lang Language, kw Keywords) (int, Category) {
	c := line[pos]
	switch {
	case lang == CFamily && c == '#':
		return len(line), Preprocessor

	case c == '"' || c == '\'' || (lang == JavaScript && c == '`'):
		return scanQuoted(line, pos), String

	case lang == HTML && c == '<':
		if i := strings.IndexByte(line[pos+1:], '>'); i >= 0 {
			return pos + 1 + i + 1, HTMLTag
		}
		return len(line), HTMLTag

	case lang == CSS && startsNumber(line, pos):
		return scanNumber(line, pos, true), Number

	case lang == CSS && isCSSWord(c):
		end := pos + 1
		for end < len(line) && isCSSWord(line[end]) {
			end++
		}
		if strings.IndexByte(line[end:], ':') >= 0 || kw.Contains(line[pos:end]) {
			return end, CSSProperty
		}
		return end, CSSSelector

	case isIdentStart(c):
		end := pos + 1
		for end < len(line) && isIdentPart(line[end]) {
			end++
		}
		if kw.Contains(line[pos:end]) {
			return end, Keyword
		}
		return end, Default

	case startsNumber(line, pos):
		return scanNumber(line, pos, false), Number
	}

	_, size := utf8.DecodeRuneInString(line[pos:])
	return pos + size, Default
}

// scanQuoted returns the end of the quoted string opened at pos. A backslash
// escapes the next byte. Unterminated strings run to end of line.
func scanQuoted(line string, pos int) int {
	quote := line[pos]
	for i := pos + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(line)
}

// scanNumber consumes digits and dots followed by a letter suffix such as
// f, UL or px. CSS also accepts a trailing percent sign.
func scanNumber(line string, pos int, percent bool) int {
	end := pos
	for end < len(line) && (isDigit(line[end]) || line[end] == '.') {
		end++
	}
	for end < len(line) && isLetter(line[end]) {
		end++
	}
	if percent && end < len(line) && line[end] == '%' {
		end++
	}
	return end
}

func startsNumber(line string, pos int) bool {
	c := line[pos]
	return isDigit(c) || (c == '.' && pos+1 < len(line) && isDigit(line[pos+1]))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func isCSSWord(c byte) bool {
	return isIdentPart(c) || c == '-' || c == '.' || c == '#'
}

// Scanner threads the block comment carry through the lines of one pass
// over a document. Every pass needs its own Scanner.
type Scanner struct {
	lang     Language
	keywords Keywords
	state    ScanState
}

// NewScanner returns a Scanner at the top of a document.
func NewScanner(lang Language) *Scanner {
	return &Scanner{lang: lang, keywords: KeywordsFor(lang)}
}

// Next tokenizes the next line of the document.
func (s *Scanner) Next(line string) []Token {
	var toks []Token
	toks, s.state = scanLine(line, s.lang, s.keywords, s.state)
	return toks
}

// State returns the carry that will be applied to the next line.
func (s *Scanner) State() ScanState {
	return s.state
}

// Walk runs a fresh top-to-bottom pass over content, calling fn with the
// zero-based index, text and tokens of each line. Returning false from fn
// ends the pass early.
func Walk(content string, lang Language, fn func(index int, line string, toks []Token) bool) {
	sc := NewScanner(lang)
	for i, line := range SplitLines(content) {
		if !fn(i, line, sc.Next(line)) {
			return
		}
	}
}

// SplitLines splits content on '\n'. A trailing newline does not start an
// extra empty line and empty content has no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
