package header

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Vary represents the Vary header (RFC 9110 Section 12.5.5).
// It is an ordered set of field names compared case-insensitively, the casing seen first is kept.
// The "*" member means the response varies on factors beyond request fields.
type Vary []string

// NewVary creates a Vary header from field names, dropping duplicates.
func NewVary(names ...string) (Vary, error) {
	return errtrace.Wrap2(Vary{}.Add(names...))
}

func (Vary) CanonicName() Name { return "Vary" }

// IsAny reports whether the header contains "*".
func (hdr Vary) IsAny() bool { return slices.Contains(hdr, "*") }

func (hdr Vary) Has(name string) bool { return ciIndex(hdr, name) >= 0 }

func (hdr Vary) Len() int { return len(hdr) }

// All iterates members in wire order.
func (hdr Vary) All() iter.Seq[string] { return slices.Values(hdr) }

// Add returns a copy of the header with missing field names appended.
func (hdr Vary) Add(names ...string) (Vary, error) {
	for _, n := range names {
		if !isVaryMember(n) {
			return hdr, errtrace.Wrap(newInvalidArgumentError("invalid field name %q", n))
		}
	}
	return ciAppend(slices.Clone(hdr), names...), nil
}

// Remove returns a copy of the header without the field name.
func (hdr Vary) Remove(name string) Vary {
	return slices.DeleteFunc(slices.Clone(hdr), func(n string) bool { return util.EqFold(n, name) })
}

func (hdr Vary) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Vary) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, writeString))
}

func (hdr Vary) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Vary) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Vary) String() string { return hdr.RenderValue() }

func (hdr Vary) Format(f fmt.State, verb rune) {
	type hideMethods Vary
	type Vary hideMethods
	formatHdr(f, verb, hdr, Vary(hdr))
}

func (hdr Vary) Clone() Header { return slices.Clone(hdr) }

// Equal reports whether both headers list the same members, regardless of order and case.
func (hdr Vary) Equal(val any) bool {
	var other Vary
	switch v := val.(type) {
	case Vary:
		other = v
	case *Vary:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ciEqual(hdr, other)
}

func (hdr Vary) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(n string) bool { return !isVaryMember(n) })
}

func (hdr Vary) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Vary) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Vary](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseVary parses the Vary header value.
func ParseVary(s string) (Vary, error) {
	return errtrace.Wrap2(parseHdr("Vary", s, TryParseVary))
}

// TryParseVary parses the Vary header value, reporting failure with false.
func TryParseVary(s string) (Vary, bool) {
	names, ok := readHdrList(s, readVaryMember)
	if !ok {
		return nil, false
	}
	return ciAppend(make(Vary, 0, len(names)), names...), true
}

// readVaryMember parses "*" / field-name.
func readVaryMember(sc *grammar.Scanner) (string, bool) {
	// "*" is a tchar, so both alternatives are read as a token.
	return sc.ReadToken()
}

func isVaryMember(s string) bool { return s == "*" || httpguts.ValidHeaderFieldName(s) }
