// Package errorutil contains sentinel error helpers shared by the header packages.
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ghettovoice/httphdr/internal/util"
)

// Error is a constant error string, usable as a sentinel.
type Error string

func (s Error) Error() string { return string(s) }

func Errorf(format string, args ...any) error {
	return Error(fmt.Sprintf(format, args...)) //errtrace:skip
}

// NewWrapperError wraps the sentinel with details taken from args:
//   - nothing: the sentinel itself
//   - an error: the error joined to the sentinel, unless it already wraps it
//   - a string with optional arguments: a formatted message
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", sentinel, v) //errtrace:skip
	case string:
		if len(args) > 1 {
			v = fmt.Sprintf(v, args[1:]...)
		}
		return fmt.Errorf("%w: %s", sentinel, v) //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
}

const ErrInvalidArgument Error = "invalid argument"

// NewInvalidArgumentError is [NewWrapperError] with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

// JoinPrefix joins errs under a common prefix. Nil errors are dropped.
// A single error is returned as "prefix: err", several ones as an indented list.
func JoinPrefix(prefix string, errs ...error) error {
	errs = slices.DeleteFunc(slices.Clone(errs), func(err error) bool { return err == nil })
	prefix = strings.TrimRight(prefix, ": ")
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s: %w", prefix, errs[0]) //errtrace:skip
	default:
		return &listError{prefix, errs} //errtrace:skip
	}
}

type listError struct {
	prefix string
	errs   []error
}

func (e *listError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	for _, err := range e.errs {
		sb.WriteString("\n  - ")
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n    "))
	}
	return sb.String()
}

func (e *listError) Unwrap() []error { return e.errs }
