package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

// Method is an HTTP request method. Methods are case-sensitive tokens.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

func (m Method) IsValid() bool { return grammar.IsToken(m) }

// Allow represents the Allow header (RFC 9110 Section 10.2.1).
// It lists the methods supported by the target resource, an empty list means none.
type Allow []Method

// CanonicName returns the canonical name of the header.
func (Allow) CanonicName() Name { return "Allow" }

// Has reports whether the method is listed.
func (hdr Allow) Has(m Method) bool { return slices.Contains(hdr, m) }

// RenderTo writes the header to the provided writer.
func (hdr Allow) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Allow) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, func(m Method, w io.Writer) (int, error) {
		return errtrace.Wrap2(io.WriteString(w, string(m)))
	}))
}

// Render returns the string representation of the header.
func (hdr Allow) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

// RenderValue returns the string representation of the header value.
func (hdr Allow) RenderValue() string { return renderToString(hdr.renderValueTo) }

// String returns the string representation of the header value.
func (hdr Allow) String() string {
	return hdr.RenderValue()
}

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Allow) Format(f fmt.State, verb rune) {
	type hideMethods Allow
	type Allow hideMethods
	formatHdr(f, verb, hdr, Allow(hdr))
}

// Clone returns a copy of the header.
func (hdr Allow) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Allow) Equal(val any) bool {
	var other Allow
	switch v := val.(type) {
	case Allow:
		other = v
	case *Allow:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.Equal(hdr, other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr Allow) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(m Method) bool { return !m.IsValid() })
}

func (hdr Allow) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Allow) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Allow](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseAllow parses the Allow header value.
func ParseAllow(s string) (Allow, error) {
	return errtrace.Wrap2(parseHdr("Allow", s, TryParseAllow))
}

// TryParseAllow parses the Allow header value, reporting failure with false.
func TryParseAllow(s string) (Allow, bool) {
	return readHdrList(s, func(sc *grammar.Scanner) (Method, bool) {
		m, ok := sc.ReadToken()
		return Method(m), ok
	})
}
