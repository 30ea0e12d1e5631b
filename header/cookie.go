package header

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Cookie represents the Cookie request header (RFC 6265 Section 5.4).
//
// Duplicate names are kept in wire order. Lookup by name is case-sensitive
// and resolves to the last occurrence.
type Cookie []CookiePair

// CookiePair is a single name=value pair of the Cookie header.
type CookiePair struct {
	Name  string
	Value string
}

func (Cookie) CanonicName() Name { return "Cookie" }

// Get returns the value of the last pair with exactly the given name.
func (hdr Cookie) Get(name string) (string, bool) {
	for i := len(hdr) - 1; i >= 0; i-- {
		if hdr[i].Name == name {
			return hdr[i].Value, true
		}
	}
	return "", false
}

// Values returns values of all pairs with exactly the given name in wire order.
func (hdr Cookie) Values(name string) []string {
	var vs []string
	for _, p := range hdr {
		if p.Name == name {
			vs = append(vs, p.Value)
		}
	}
	return vs
}

// All iterates pairs in wire order.
func (hdr Cookie) All() iter.Seq[CookiePair] { return slices.Values(hdr) }

// With returns a copy of the header with the pair appended.
func (hdr Cookie) With(name, value string) (Cookie, error) {
	p := CookiePair{name, value}
	if !p.IsValid() {
		return hdr, errtrace.Wrap(newInvalidArgumentError("invalid cookie %q", p.String()))
	}
	return append(slices.Clip(hdr), p), nil
}

// Without returns a copy of the header without pairs with exactly the given name.
func (hdr Cookie) Without(name string) Cookie {
	return slices.DeleteFunc(slices.Clone(hdr), func(p CookiePair) bool { return p.Name == name })
}

func (hdr Cookie) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Cookie) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, "; ", hdr, CookiePair.renderTo))
}

func (hdr Cookie) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Cookie) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Cookie) String() string { return hdr.RenderValue() }

func (hdr Cookie) Format(f fmt.State, verb rune) {
	type hideMethods Cookie
	type Cookie hideMethods
	formatHdr(f, verb, hdr, Cookie(hdr))
}

func (hdr Cookie) Clone() Header { return slices.Clone(hdr) }

func (hdr Cookie) Equal(val any) bool {
	var other Cookie
	switch v := val.(type) {
	case Cookie:
		other = v
	case *Cookie:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.Equal(hdr, other)
}

func (hdr Cookie) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(p CookiePair) bool { return !p.IsValid() })
}

func (hdr Cookie) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Cookie) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Cookie](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseCookie parses the Cookie header value.
func ParseCookie(s string) (Cookie, error) {
	return errtrace.Wrap2(parseHdr("Cookie", s, TryParseCookie))
}

// TryParseCookie parses the Cookie header value, reporting failure with false.
//
// Parsing is lenient: pieces without "=" or with an invalid name are skipped,
// surrounding DQUOTEs of values are removed and the rest of the value is kept verbatim.
// Only values containing control characters are rejected.
func TryParseCookie(s string) (Cookie, bool) {
	if strings.ContainsFunc(s, func(r rune) bool { return r < 0x20 && r != '\t' || r == 0x7F }) {
		return nil, false
	}

	hdr := make(Cookie, 0, strings.Count(s, ";")+1)
	for piece := range strings.SplitSeq(s, ";") {
		name, value, ok := strings.Cut(piece, "=")
		if !ok {
			continue
		}
		name = util.TrimOWS(name)
		if !grammar.IsCookieName(name) {
			continue
		}
		hdr = append(hdr, CookiePair{name, grammar.TrimCookieQuotes(util.TrimOWS(value))})
	}
	return hdr, true
}

func (p CookiePair) String() string { return renderToString(p.renderTo) }

func (p CookiePair) renderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(fmt.Fprint(w, p.Name, "=", p.Value))
}

func (p CookiePair) IsValid() bool {
	return grammar.IsCookieName(p.Name) && grammar.IsCookieValue(p.Value)
}
