// Package viewerr classifies the failures a viewer operation can report and
// turns them into messages for the user.
package viewerr

import (
	"errors"
	"fmt"
)

// Kind is the class of a failure.
type Kind int

const (
	Other Kind = iota
	IO
	RenderResource
	Size
	Encode
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case RenderResource:
		return "render resource"
	case Size:
		return "size"
	case Encode:
		return "encode"
	default:
		return "other"
	}
}

// ErrCancelled is returned when the user dismisses a prompt. It is never
// shown as a failure.
var ErrCancelled = errors.New("cancelled")

// Error is a failure of one operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New returns an Error of the given kind for op.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is New with a formatted cause.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return New(kind, op, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Title returns the heading of the message box for err.
func Title(err error) string {
	switch KindOf(err) {
	case IO:
		return "Error"
	case Encode:
		return "Save Error"
	default:
		return "Capture Error"
	}
}

// Message returns the text shown to the user for err, or "" when nothing
// should be shown.
func Message(err error) string {
	if err == nil || errors.Is(err, ErrCancelled) {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Err.Error()
	}
	return err.Error()
}
