package syntax

// Category is the highlight class of a token.
type Category uint8

const (
	Default Category = iota
	Keyword
	Comment
	String
	Number
	Preprocessor
	HTMLTag
	CSSSelector
	CSSProperty

	// NumCategories is the number of highlight classes.
	NumCategories = int(CSSProperty) + 1
)

var categoryNames = [NumCategories]string{
	Default:      "default",
	Keyword:      "keyword",
	Comment:      "comment",
	String:       "string",
	Number:       "number",
	Preprocessor: "preprocessor",
	HTMLTag:      "html_tag",
	CSSSelector:  "css_selector",
	CSSProperty:  "css_property",
}

func (c Category) String() string {
	if int(c) < NumCategories {
		return categoryNames[c]
	}
	return "unknown"
}

// Token is a contiguous span of one line tagged with a Category.
// Start is the byte offset of Text within the line.
type Token struct {
	Start    int
	Text     string
	Category Category
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Start + len(t.Text)
}
