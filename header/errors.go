package header

import (
	"fmt"

	"github.com/ghettovoice/httphdr/internal/errorutil"
)

// Error represents a header error.
// See [errorutil.Error].
type Error = errorutil.Error

const (
	// ErrInvalidHeader is wrapped by every [ParseError].
	ErrInvalidHeader Error = "invalid header"
	// ErrInvalidArgument is returned by validating constructors and setters.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrUnsupportedHeader is returned when a header type has no registered [Kind].
	ErrUnsupportedHeader Error = "unsupported header"
)

// ParseError is returned when a header field value does not match its grammar.
// It carries the canonical header name and the raw input.
type ParseError struct {
	Name  Name
	Value string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s: %q", ErrInvalidHeader, e.Name, e.Value)
}

func (*ParseError) Unwrap() error { return ErrInvalidHeader }

func newParseError(name Name, value string) error {
	return &ParseError{Name: name, Value: value} //errtrace:skip
}

func newInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
