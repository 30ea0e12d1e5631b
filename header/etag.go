package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// ETag represents the ETag header (RFC 9110 Section 8.8.3).
// Value holds the opaque tag without quotes and the weak marker.
type ETag struct {
	Value string
	Weak  bool
}

// NewETag creates an entity-tag with the opaque value.
func NewETag(value string, weak bool) (*ETag, error) {
	if !grammar.IsOpaqueTag(value) {
		return nil, errtrace.Wrap(newInvalidArgumentError("invalid entity-tag %q", value))
	}
	return &ETag{Value: value, Weak: weak}, nil
}

func (*ETag) CanonicName() Name { return "ETag" }

// Matches compares entity-tags (RFC 9110 Section 8.8.3.2).
// The strong comparison requires both tags to be strong with equal values,
// the weak comparison ignores the weak marker.
func (hdr *ETag) Matches(other *ETag, strong bool) bool {
	if hdr == nil || other == nil {
		return false
	}
	if strong && (hdr.Weak || other.Weak) {
		return false
	}
	return hdr.Value == other.Value
}

func (hdr *ETag) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr *ETag) renderValueTo(w io.Writer) (num int, err error) {
	if hdr.Weak {
		return errtrace.Wrap2(fmt.Fprint(w, `W/"`, hdr.Value, `"`))
	}
	return errtrace.Wrap2(fmt.Fprint(w, `"`, hdr.Value, `"`))
}

func (hdr *ETag) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *ETag) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *ETag) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.renderValueTo)
}

func (hdr *ETag) Format(f fmt.State, verb rune) {
	type hideMethods ETag
	type ETag hideMethods
	formatHdr(f, verb, hdr, (*ETag)(hdr))
}

func (hdr *ETag) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	return &hdr2
}

// Equal reports whether both tags are identical, including the weak marker.
func (hdr *ETag) Equal(val any) bool {
	var other *ETag
	switch v := val.(type) {
	case ETag:
		other = &v
	case *ETag:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return *hdr == *other
}

func (hdr *ETag) IsValid() bool { return hdr != nil && grammar.IsOpaqueTag(hdr.Value) }

func (hdr *ETag) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ETag) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*ETag](data)
	if err != nil || h == nil {
		*hdr = ETag{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseETag parses the ETag header value.
func ParseETag(s string) (*ETag, error) {
	return errtrace.Wrap2(parseHdr("ETag", s, TryParseETag))
}

// TryParseETag parses the ETag header value, reporting failure with false.
func TryParseETag(s string) (*ETag, bool) {
	sc := grammar.NewScanner(util.TrimOWS(s))
	tag, ok := readETag(sc)
	if !ok || sc.HasNext() {
		return nil, false
	}
	return &tag, true
}

func readETag(sc *grammar.Scanner) (ETag, bool) {
	value, weak, ok := grammar.ReadETag(sc)
	if !ok {
		return ETag{}, false
	}
	return ETag{Value: value, Weak: weak}, true
}
