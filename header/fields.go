package header

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/util"
	"github.com/ghettovoice/httphdr/log"
)

// Source provides raw field values of an incoming message.
// Values returns all field lines of the name in wire order, the name is case-insensitive.
// [net/http.Header] and [*Fields] implement it.
type Source interface {
	Values(name string) []string
}

// Sink accepts raw field values of an outgoing message.
// [net/http.Header] and [*Fields] implement it.
type Sink interface {
	Set(name, value string)
	Add(name, value string)
	Del(name string)
}

// Field is a single header field line.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered list of header field lines with case-insensitive names.
// The zero value is an empty list ready to use.
type Fields struct {
	items []Field
}

// Values returns values of all lines with the name in wire order.
func (fs *Fields) Values(name string) []string {
	if fs == nil {
		return nil
	}
	var vs []string
	for _, f := range fs.items {
		if util.EqFold(f.Name, name) {
			vs = append(vs, f.Value)
		}
	}
	return vs
}

// Get returns the value of the first line with the name.
func (fs *Fields) Get(name string) (string, bool) {
	if fs == nil {
		return "", false
	}
	i := slices.IndexFunc(fs.items, func(f Field) bool { return util.EqFold(f.Name, name) })
	if i < 0 {
		return "", false
	}
	return fs.items[i].Value, true
}

// Set replaces all lines with the name by a single line placed at the position of the first one.
func (fs *Fields) Set(name, value string) {
	i := slices.IndexFunc(fs.items, func(f Field) bool { return util.EqFold(f.Name, name) })
	if i < 0 {
		fs.items = append(fs.items, Field{string(CanonicName(name)), value})
		return
	}
	fs.items[i].Value = value
	tail := slices.DeleteFunc(fs.items[i+1:], func(f Field) bool { return util.EqFold(f.Name, name) })
	fs.items = fs.items[:i+1+len(tail)]
}

// Add appends a line.
func (fs *Fields) Add(name, value string) {
	fs.items = append(fs.items, Field{string(CanonicName(name)), value})
}

// Del removes all lines with the name.
func (fs *Fields) Del(name string) {
	fs.items = slices.DeleteFunc(fs.items, func(f Field) bool { return util.EqFold(f.Name, name) })
}

// Clear removes all lines.
func (fs *Fields) Clear() { fs.items = fs.items[:0] }

func (fs *Fields) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.items)
}

// All iterates lines in wire order.
func (fs *Fields) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if fs == nil {
			return
		}
		for _, f := range fs.items {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// String renders lines as "Name: value" separated by CRLF.
func (fs *Fields) String() string {
	if fs == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for _, f := range fs.items {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// GetOptions are options for header accessors.
type GetOptions struct {
	// Logger receives debug records about malformed headers skipped by [TryGet] and [GetAll].
	// If nil, [log.Default] is used.
	Logger *slog.Logger
}

func (o *GetOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func kindOfType[H Header]() (Kind, error) {
	var zero H
	k := KindOf(zero)
	if k == KindUnknown {
		return k, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedHeader, "%T", zero))
	}
	return k, nil
}

// Get reads the header of type H from the source.
//
// Repeated lines of list headers are joined before parsing, for other headers the first line is used.
// The boolean result is false when the header is absent, malformed input results in a [ParseError].
//
// Example usage:
//
//	ct, ok, err := header.Get[*header.ContentType](req.Header, nil)
func Get[H Header](src Source, _ *GetOptions) (H, bool, error) {
	var zero H
	k, err := kindOfType[H]()
	if err != nil {
		return zero, false, errtrace.Wrap(err)
	}

	vals := src.Values(string(k.Name()))
	if len(vals) == 0 {
		return zero, false, nil
	}

	val := vals[0]
	if ki, _ := k.info(); ki.sep != "" {
		val = strings.Join(vals, ki.sep)
	}

	hdr, err := k.Parse(val)
	if err != nil {
		return zero, false, errtrace.Wrap(err)
	}
	return hdr.(H), true, nil //nolint:forcetypeassert
}

// TryGet is like [Get] but reports malformed headers as absent.
// Such headers are logged at debug level.
func TryGet[H Header](src Source, opts *GetOptions) (H, bool) {
	hdr, ok, err := Get[H](src, opts)
	if err != nil {
		opts.log().LogAttrs(context.Background(), slog.LevelDebug, "skip malformed header",
			slog.Any("error", err),
		)
		return hdr, false
	}
	return hdr, ok
}

// GetAll reads every line of the header of type H separately, e.g. Set-Cookie.
// Well-formed lines are returned even when some lines are malformed,
// the errors of all malformed lines are joined in the returned error.
func GetAll[H Header](src Source, opts *GetOptions) ([]H, error) {
	k, err := kindOfType[H]()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	vals := src.Values(string(k.Name()))
	hdrs := make([]H, 0, len(vals))
	var errs []error
	for _, v := range vals {
		hdr, err := k.Parse(v)
		if err != nil {
			opts.log().LogAttrs(context.Background(), slog.LevelDebug, "skip malformed header line",
				slog.Any("line", log.StringValue(v)),
				slog.Any("error", err),
			)
			errs = append(errs, err)
			continue
		}
		hdrs = append(hdrs, hdr.(H)) //nolint:forcetypeassert
	}
	return hdrs, errtrace.Wrap(errorutil.JoinPrefix(string(k.Name()), errs...))
}

func sinkField(hdr Header) (name, value string, err error) {
	if hdr == nil || !hdr.IsValid() {
		return "", "", errtrace.Wrap(newInvalidArgumentError("invalid header %v", hdr))
	}

	name, value = string(hdr.CanonicName()), hdr.RenderValue()
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return "", "", errtrace.Wrap(newInvalidArgumentError("unsafe header field %q", name))
	}
	return name, value, nil
}

// Put replaces the header in the sink.
// Invalid headers and values unsafe for the wire are rejected with [ErrInvalidArgument].
func Put(sink Sink, hdr Header) error {
	name, value, err := sinkField(hdr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	sink.Set(name, value)
	return nil
}

// Append adds the header to the sink as a new line.
// Invalid headers and values unsafe for the wire are rejected with [ErrInvalidArgument].
func Append(sink Sink, hdr Header) error {
	name, value, err := sinkField(hdr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	sink.Add(name, value)
	return nil
}

// Remove deletes all lines of the header kind from the sink.
func Remove(sink Sink, k Kind) {
	if k.IsValid() {
		sink.Del(string(k.Name()))
	}
}
