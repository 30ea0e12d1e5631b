package header

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

// ContentLength represents the Content-Length header (RFC 9110 Section 8.6).
// It indicates the size of the message content in decimal number of octets.
type ContentLength uint64

// CanonicName returns the canonical name of the header.
func (ContentLength) CanonicName() Name { return "Content-Length" }

// RenderTo writes the header to the provided writer.
func (hdr ContentLength) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(fmt.Fprint(w, hdrName(hdr.CanonicName(), opts), ": ", hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr ContentLength) Render(opts *RenderOptions) string {
	return renderHdr(hdr, opts)
}

// RenderValue returns the string representation of the header value.
func (hdr ContentLength) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr ContentLength) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ContentLength) Format(f fmt.State, verb rune) {
	formatHdr(f, verb, hdr, uint64(hdr))
}

// Clone returns a copy of the header.
func (hdr ContentLength) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr ContentLength) Equal(val any) bool {
	switch v := val.(type) {
	case ContentLength:
		return hdr == v
	case *ContentLength:
		return v != nil && hdr == *v
	default:
		return false
	}
}

// IsValid checks whether the header is syntactically valid.
func (ContentLength) IsValid() bool { return true }

func (hdr ContentLength) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentLength) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[ContentLength](data)
	if err != nil {
		*hdr = 0
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseContentLength parses the Content-Length header value.
func ParseContentLength(s string) (ContentLength, error) {
	return errtrace.Wrap2(parseHdr("Content-Length", s, TryParseContentLength))
}

// TryParseContentLength parses the Content-Length header value, reporting failure with false.
// A list of identical values, as produced by combining repeated lines, is accepted.
func TryParseContentLength(s string) (ContentLength, bool) {
	vals, ok := readNonEmptyHdrList(s, func(sc *grammar.Scanner) (uint64, bool) {
		digits, ok := sc.ReadDigits()
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		return n, err == nil
	})
	if !ok {
		return 0, false
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return 0, false
		}
	}
	return ContentLength(vals[0]), true
}
