package logging

// Field names for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldOutput   = "output"
	FieldLanguage = "language"
	FieldBytes    = "bytes"
	FieldLines    = "lines"

	FieldQuery         = "query"
	FieldCaseSensitive = "case_sensitive"
	FieldMatches       = "matches"
	FieldShowComments  = "show_comments"

	FieldWidth  = "width"
	FieldHeight = "height"

	FieldVersion = "version"
)
