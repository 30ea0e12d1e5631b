package header

//go:generate go tool errtrace -w .

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/types"
	"github.com/ghettovoice/httphdr/internal/util"
)

// RenderOptions contains options for rendering headers.
type RenderOptions = types.RenderOptions

// Header represents a generic HTTP header.
type Header interface {
	types.Renderer
	types.Cloneable[Header]
	types.ValidFlag
	types.Equalable
	CanonicName() Name
	RenderValue() string
}

// Name represents an HTTP header field name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// Lower returns the lower-case form of the name, as used in HTTP/2 and HTTP/3.
func (n Name) Lower() Name { return util.LCase(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return httpguts.ValidHeaderFieldName(string(n)) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(n, other)
}

var hdrNames = map[string]Name{
	"Dnt":              "DNT",
	"Etag":             "ETag",
	"Te":               "TE",
	"Www-Authenticate": "WWW-Authenticate",
	"X-Xss-Protection": "X-XSS-Protection",
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the canonical name for "accept-encoding" is "Accept-Encoding".
// A few names have a conventional spelling that differs from this rule, e.g. "ETag".
func CanonicName[T ~string](name T) Name {
	name = util.TrimOWS(name)
	key := textproto.CanonicalMIMEHeaderKey(string(name))
	if n, ok := hdrNames[key]; ok {
		return n
	}
	return Name(key)
}

func hdrName(name Name, opts *RenderOptions) Name {
	if opts != nil && opts.LowerName {
		return name.Lower()
	}
	return name
}

// renderHdrTo writes "Name: value" using valueTo for the value part.
func renderHdrTo(w io.Writer, name Name, opts *RenderOptions, valueTo func(io.Writer) (int, error)) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdrName(name, opts), ": ")
	cw.Call(valueTo)
	return errtrace.Wrap2(cw.Result())
}

func renderHdr(hdr types.Renderer, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

type stringRenderer interface {
	types.Renderer
	fmt.Stringer
}

// formatHdr implements [fmt.Formatter] for headers.
// %s prints the value and %+s the whole line, %q quotes them.
// Other verbs print raw, a copy of the header without methods.
func formatHdr(f fmt.State, verb rune, hdr stringRenderer, raw any) {
	switch verb {
	case 's', 'q':
		s := hdr.String()
		if f.Flag('+') {
			s = hdr.Render(nil)
		}
		if verb == 'q' {
			s = strconv.Quote(s)
		}
		io.WriteString(f, s) //nolint:errcheck
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), raw)
	}
}

// formatElem prints list elements in their wire form unless %+v or %#v asks for fields.
func formatElem(f fmt.State, verb rune, s string, raw any) {
	switch {
	case verb == 'q':
		io.WriteString(f, strconv.Quote(s)) //nolint:errcheck
	case verb == 's', !f.Flag('+') && !f.Flag('#'):
		io.WriteString(f, s) //nolint:errcheck
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), raw)
	}
}

func renderToString(fn func(io.Writer) (int, error)) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fn(sb) //nolint:errcheck
	return sb.String()
}

// renderHdrList writes the list elements separated by sep.
func renderHdrList[E any](w io.Writer, sep string, elems []E, elemTo func(E, io.Writer) (int, error)) (num int, err error) {
	return errtrace.Wrap2(ioutil.Join(w, sep, elems, elemTo))
}

func cloneHdrEntries[H ~[]E, E interface{ Clone() E }](hdr H) H {
	var hdr2 H
	if hdr == nil {
		return hdr2
	}
	hdr2 = make(H, len(hdr))
	for i := range hdr {
		hdr2[i] = hdr[i].Clone()
	}
	return hdr2
}

// parseHdr runs tryParse and converts its failure into a [ParseError].
func parseHdr[H any](name Name, s string, tryParse func(string) (H, bool)) (H, error) {
	h, ok := tryParse(s)
	if !ok {
		var zero H
		return zero, errtrace.Wrap(newParseError(name, s))
	}
	return h, nil
}

// Parse parses a single header line "Name: value" and returns the typed header.
// Headers without a registered [Kind] are returned as [*Any].
//
// Example usage:
//
//	hdr, err := header.Parse("Content-Type: text/html; charset=utf-8")
func Parse[T types.Byteseq](s T) (Header, error) {
	line := string(s)
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "missing field name in %q", line))
	}

	name, value := line[:i], util.TrimOWS(line[i+1:])
	if !httpguts.ValidHeaderFieldName(name) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "invalid field name %q", name))
	}
	if k, ok := Lookup(name); ok {
		return errtrace.Wrap2(k.Parse(value))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil, errtrace.Wrap(newParseError(CanonicName(name), value))
	}
	return &Any{Name: string(CanonicName(name)), Value: value}, nil
}

type headerData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToJSON encodes the header as a {"name": ..., "value": ...} object.
func ToJSON(hdr Header) ([]byte, error) {
	var hd *headerData
	if hdr != nil {
		hd = &headerData{
			Name:  string(hdr.CanonicName()),
			Value: hdr.RenderValue(),
		}
	}
	return errtrace.Wrap2(json.Marshal(hd))
}

var errNotHeaderJSON errorutil.Error = "not a header JSON"

// FromJSON decodes a header encoded by [ToJSON].
func FromJSON[T ~string | ~[]byte](data T) (Header, error) {
	var hd *headerData
	if err := json.Unmarshal([]byte(data), &hd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hd == nil {
		return nil, errtrace.Wrap(errNotHeaderJSON)
	}

	hdr, err := Parse(hd.Name + ": " + hd.Value)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse header %q: %w", hd.Name, err))
	}
	return hdr, nil
}

// hdrFromJSON decodes data into a header of type H.
// JSON null results in the zero H.
func hdrFromJSON[H Header](data []byte) (H, error) {
	var zero H
	gh, err := FromJSON(data)
	if err != nil {
		if errors.Is(err, errNotHeaderJSON) {
			return zero, nil
		}
		return zero, errtrace.Wrap(err)
	}

	h, ok := gh.(H)
	if !ok {
		return zero, errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, zero))
	}
	return h, nil
}
