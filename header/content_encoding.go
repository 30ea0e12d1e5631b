package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// ContentEncoding represents the Content-Encoding header (RFC 9110 Section 8.4).
// Codings are listed in the order they were applied.
type ContentEncoding []Encoding

func (ContentEncoding) CanonicName() Name { return "Content-Encoding" }

func (hdr ContentEncoding) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr ContentEncoding) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, func(enc Encoding, w io.Writer) (int, error) {
		return errtrace.Wrap2(io.WriteString(w, string(enc)))
	}))
}

func (hdr ContentEncoding) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr ContentEncoding) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr ContentEncoding) String() string { return hdr.RenderValue() }

func (hdr ContentEncoding) Format(f fmt.State, verb rune) {
	type hideMethods ContentEncoding
	type ContentEncoding hideMethods
	formatHdr(f, verb, hdr, ContentEncoding(hdr))
}

func (hdr ContentEncoding) Clone() Header { return slices.Clone(hdr) }

func (hdr ContentEncoding) Equal(val any) bool {
	var other ContentEncoding
	switch v := val.(type) {
	case ContentEncoding:
		other = v
	case *ContentEncoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(enc1, enc2 Encoding) bool { return enc1.Equal(enc2) })
}

func (hdr ContentEncoding) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(enc Encoding) bool { return !enc.IsValid() })
}

func (hdr ContentEncoding) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentEncoding) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[ContentEncoding](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseContentEncoding parses the Content-Encoding header value.
func ParseContentEncoding(s string) (ContentEncoding, error) {
	return errtrace.Wrap2(parseHdr("Content-Encoding", s, TryParseContentEncoding))
}

// TryParseContentEncoding parses the Content-Encoding header value, reporting failure with false.
func TryParseContentEncoding(s string) (ContentEncoding, bool) {
	return readNonEmptyHdrList(s, func(sc *grammar.Scanner) (Encoding, bool) {
		enc, ok := sc.ReadToken()
		return Encoding(util.LCase(enc)), ok
	})
}

// Encoding is a content coding name, e.g. "gzip". Codings are case-insensitive.
type Encoding string

func (enc Encoding) IsValid() bool { return grammar.IsToken(enc) }

func (enc Encoding) Equal(val any) bool {
	var other Encoding
	switch v := val.(type) {
	case Encoding:
		other = v
	case *Encoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(enc, other)
}
