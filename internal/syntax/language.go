// Package syntax holds the fixed language rules of the viewer: the filename
// classifier, keyword tables, the line scanner shared by every renderer and
// the comment stripper.
package syntax

import (
	"path/filepath"
	"strings"
)

// Language identifies the rule set used to scan a document.
type Language int

const (
	Unknown Language = iota
	CFamily
	Python
	HTML
	CSS
	JavaScript
)

var extensions = map[string]Language{
	"cpp":  CFamily,
	"h":    CFamily,
	"hpp":  CFamily,
	"cxx":  CFamily,
	"hxx":  CFamily,
	"c":    CFamily,
	"py":   Python,
	"pyw":  Python,
	"html": HTML,
	"htm":  HTML,
	"css":  CSS,
	"js":   JavaScript,
}

// Classify maps a file name to a Language by its extension, ignoring case.
// Names without a recognised extension are Unknown.
func Classify(filename string) Language {
	name := filepath.Base(filename)
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return Unknown
	}
	if lang, ok := extensions[strings.ToLower(name[dot+1:])]; ok {
		return lang
	}
	return Unknown
}

// String returns the label shown in the status bar.
func (l Language) String() string {
	switch l {
	case CFamily:
		return "C++"
	case Python:
		return "Python"
	case HTML:
		return "HTML"
	case CSS:
		return "CSS"
	case JavaScript:
		return "JavaScript"
	default:
		return "Plain Text"
	}
}
