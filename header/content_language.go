package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// ContentLanguage represents the Content-Language header (RFC 9110 Section 8.5).
type ContentLanguage []Language

func (ContentLanguage) CanonicName() Name { return "Content-Language" }

func (hdr ContentLanguage) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr ContentLanguage) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, func(lng Language, w io.Writer) (int, error) {
		return errtrace.Wrap2(io.WriteString(w, string(lng)))
	}))
}

func (hdr ContentLanguage) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr ContentLanguage) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr ContentLanguage) String() string { return hdr.RenderValue() }

func (hdr ContentLanguage) Format(f fmt.State, verb rune) {
	type hideMethods ContentLanguage
	type ContentLanguage hideMethods
	formatHdr(f, verb, hdr, ContentLanguage(hdr))
}

func (hdr ContentLanguage) Clone() Header { return slices.Clone(hdr) }

func (hdr ContentLanguage) Equal(val any) bool {
	var other ContentLanguage
	switch v := val.(type) {
	case ContentLanguage:
		other = v
	case *ContentLanguage:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(lng1, lng2 Language) bool { return lng1.Equal(lng2) })
}

func (hdr ContentLanguage) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(lng Language) bool { return !lng.IsValid() })
}

func (hdr ContentLanguage) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentLanguage) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[ContentLanguage](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseContentLanguage parses the Content-Language header value.
func ParseContentLanguage(s string) (ContentLanguage, error) {
	return errtrace.Wrap2(parseHdr("Content-Language", s, TryParseContentLanguage))
}

// TryParseContentLanguage parses the Content-Language header value, reporting failure with false.
func TryParseContentLanguage(s string) (ContentLanguage, bool) {
	return readNonEmptyHdrList(s, func(sc *grammar.Scanner) (Language, bool) {
		tag, ok := sc.ReadToken()
		if !ok || !Language(tag).IsValid() {
			return "", false
		}
		return Language(tag), true
	})
}

// Language is a language tag, e.g. "en-US". Tags are case-insensitive.
type Language string

// IsValid reports whether the tag is 1*8ALPHA *( "-" 1*8alphanum ).
func (lng Language) IsValid() bool { return lng != "*" && isLanguageRange(string(lng)) }

func (lng Language) Equal(val any) bool {
	var other Language
	switch v := val.(type) {
	case Language:
		other = v
	case *Language:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(lng, other)
}
