package syntax

// Keywords is a read-only set of reserved words for one language.
type Keywords struct {
	set map[string]struct{}
}

// Contains reports whether word is in the set.
func (k Keywords) Contains(word string) bool {
	_, ok := k.set[word]
	return ok
}

// Len returns the number of words in the set.
func (k Keywords) Len() int {
	return len(k.set)
}

func newKeywords(words ...string) Keywords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return Keywords{set: set}
}

var keywordTables = map[Language]Keywords{
	CFamily: newKeywords(
		"int", "float", "double", "char", "bool", "void", "class", "struct", "enum", "union",
		"if", "else", "switch", "case", "default", "for", "while", "do", "break", "continue",
		"return", "goto", "const", "static", "public", "private", "protected", "namespace",
		"using", "template", "typename", "try", "catch", "throw", "new", "delete", "nullptr",
		"auto", "constexpr", "virtual", "override", "final",
	),
	Python: newKeywords(
		"False", "None", "True", "and", "as", "assert", "async", "await", "break", "class",
		"continue", "def", "del", "elif", "else", "except", "finally", "for", "from", "global",
		"if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
		"return", "try", "while", "with", "yield",
	),
	JavaScript: newKeywords(
		"abstract", "arguments", "await", "boolean", "break", "byte", "case", "catch", "char",
		"class", "const", "continue", "debugger", "default", "delete", "do", "double", "else",
		"enum", "eval", "export", "extends", "false", "final", "finally", "float", "for",
		"function", "goto", "if", "implements", "import", "in", "instanceof", "int",
		"interface", "let", "long", "native", "new", "null", "package", "private", "protected",
		"public", "return", "short", "static", "super", "switch", "synchronized", "this",
		"throw", "throws", "transient", "true", "try", "typeof", "var", "void", "volatile",
		"while", "with", "yield",
	),
	CSS: newKeywords(
		"color", "background-color", "font-size", "font-family", "font-weight", "text-align",
		"margin", "padding", "border", "width", "height", "display", "position", "top", "left",
		"right", "bottom", "float", "clear", "overflow", "z-index", "opacity", "border-radius",
		"box-shadow", "text-decoration", "line-height", "letter-spacing", "content", "cursor",
		"transition", "transform",
	),
	HTML: newKeywords(
		"html", "head", "title", "body", "div", "span", "p", "a", "img", "ul", "ol", "li",
		"table", "tr", "td", "th", "form", "input", "button", "select", "option", "textarea",
		"h1", "h2", "h3", "h4", "h5", "h6", "strong", "em", "br", "hr", "link", "meta", "style",
		"script", "header", "footer", "nav", "section", "article", "aside",
	),
}

// KeywordsFor returns the keyword set of lang. Unknown has an empty set.
func KeywordsFor(lang Language) Keywords {
	return keywordTables[lang]
}
