package header

import (
	"fmt"
	"io"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

// Date represents the Date header (RFC 9110 Section 6.6.1).
type Date struct {
	time.Time
}

// NewDate creates a Date header truncated to seconds, as the wire format has no finer precision.
func NewDate(t time.Time) *Date { return &Date{t.UTC().Truncate(time.Second)} }

func (*Date) CanonicName() Name { return "Date" }

func (hdr *Date) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(w, hdrName(hdr.CanonicName(), opts), ": ", hdr.RenderValue()))
}

func (hdr *Date) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Date) RenderValue() string {
	if hdr == nil || hdr.IsZero() {
		return ""
	}
	return grammar.FormatHTTPDate(hdr.Time)
}

func (hdr *Date) String() string { return hdr.RenderValue() }

func (hdr *Date) Format(f fmt.State, verb rune) {
	type hideMethods Date
	type Date hideMethods
	formatHdr(f, verb, hdr, (*Date)(hdr))
}

func (hdr *Date) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	return &hdr2
}

func (hdr *Date) Equal(val any) bool {
	var other *Date
	switch v := val.(type) {
	case Date:
		other = &v
	case *Date:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Time.Equal(other.Time)
}

func (hdr *Date) IsValid() bool { return hdr != nil && !hdr.IsZero() }

func (hdr *Date) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Date) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*Date](data)
	if err != nil || h == nil {
		*hdr = Date{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseDate parses the Date header value.
// Obsolete RFC 850 and asctime formats are accepted, the result is in UTC.
func ParseDate(s string) (*Date, error) {
	return errtrace.Wrap2(parseHdr("Date", s, TryParseDate))
}

// TryParseDate parses the Date header value, reporting failure with false.
func TryParseDate(s string) (*Date, bool) {
	t, err := grammar.ParseHTTPDate(s)
	if err != nil {
		return nil, false
	}
	return &Date{t}, true
}
