// Package log provides the slog loggers used by the header package.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httphdr/internal/types"
)

// valueRenderer is implemented by header values.
type valueRenderer interface {
	RenderValue() string
}

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(v valueRenderer) slog.Value {
		return slog.GroupValue(
			slog.String("type", fmt.Sprintf("%T", v)),
			slog.String("value", v.RenderValue()),
		)
	}),
)

// Def is a default logger.
var Def = slog.New(newHandler(
	console.NewHandler(os.Stdout, &console.HandlerOptions{
		AddSource:  true,
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}),
))

// Dev is a developer logger.
var Dev = slog.New(newHandler(
	devslog.NewHandler(os.Stdout, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}),
))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// New wraps h with the formatters shared by [Def] and [Dev].
func New(h slog.Handler) *slog.Logger { return slog.New(newHandler(h)) }

var defLogger atomic.Pointer[slog.Logger]

func init() { defLogger.Store(Noop) }

// Default returns the logger used when no logger is passed in options.
// Initially it is [Noop].
func Default() *slog.Logger { return defLogger.Load() }

// SetDefault replaces the default logger. Nil resets it to [Noop].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Noop
	}
	defLogger.Store(l)
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T types.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T types.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
