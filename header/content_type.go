package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ContentType represents the Content-Type header (RFC 9110 Section 8.3).
// It wraps a concrete [MediaType]: wildcards are not allowed.
// Parameters can only be changed through [ContentType.WithParam] which returns a new value.
type ContentType struct {
	mt MediaType
}

// NewContentType creates a Content-Type header from type, subtype and parameter name/value pairs.
func NewContentType(typ, sub string, params ...string) (*ContentType, error) {
	mt, err := NewMediaType(typ, sub, params...)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(ContentTypeOf(mt))
}

// ContentTypeOf creates a Content-Type header from the media type.
func ContentTypeOf(mt MediaType) (*ContentType, error) {
	if !mt.IsValid() || mt.IsWildcard() {
		return nil, errtrace.Wrap(newInvalidArgumentError("invalid content type %q", mt.Essence()))
	}
	return &ContentType{mt.Clone()}, nil
}

func (*ContentType) CanonicName() Name { return "Content-Type" }

// MediaType returns a copy of the underlying media type.
func (hdr *ContentType) MediaType() MediaType {
	if hdr == nil {
		return MediaType{}
	}
	return hdr.mt.Clone()
}

func (hdr *ContentType) Type() string {
	if hdr == nil {
		return ""
	}
	return hdr.mt.Type()
}

func (hdr *ContentType) Subtype() string {
	if hdr == nil {
		return ""
	}
	return hdr.mt.Subtype()
}

func (hdr *ContentType) Essence() string {
	if hdr == nil {
		return ""
	}
	return hdr.mt.Essence()
}

func (hdr *ContentType) Param(name string) (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.mt.Param(name)
}

// Charset returns the value of the "charset" parameter.
func (hdr *ContentType) Charset() (string, bool) { return hdr.Param("charset") }

// WithParam returns a copy of the header with the parameter set.
func (hdr *ContentType) WithParam(name, value string) (*ContentType, error) {
	if hdr == nil {
		return nil, errtrace.Wrap(newInvalidArgumentError("nil content type"))
	}
	mt, err := hdr.mt.WithParam(name, value)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &ContentType{mt}, nil
}

// WithoutParam returns a copy of the header without the parameter.
func (hdr *ContentType) WithoutParam(name string) *ContentType {
	if hdr == nil {
		return nil
	}
	return &ContentType{hdr.mt.WithoutParam(name)}
}

func (hdr *ContentType) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.mt.renderTo))
}

func (hdr *ContentType) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *ContentType) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *ContentType) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return hdr.mt.String()
}

func (hdr *ContentType) Format(f fmt.State, verb rune) {
	type hideMethods ContentType
	type ContentType hideMethods
	formatHdr(f, verb, hdr, (*ContentType)(hdr))
}

func (hdr *ContentType) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &ContentType{hdr.mt.Clone()}
}

func (hdr *ContentType) Equal(val any) bool {
	var other *ContentType
	switch v := val.(type) {
	case ContentType:
		other = &v
	case *ContentType:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.mt.Equal(other.mt)
}

func (hdr *ContentType) IsValid() bool {
	return hdr != nil && hdr.mt.IsValid() && !hdr.mt.IsWildcard()
}

func (hdr *ContentType) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentType) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*ContentType](data)
	if err != nil || h == nil {
		*hdr = ContentType{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseContentType parses the Content-Type header value.
func ParseContentType(s string) (*ContentType, error) {
	return errtrace.Wrap2(parseHdr("Content-Type", s, TryParseContentType))
}

// TryParseContentType parses the Content-Type header value, reporting failure with false.
func TryParseContentType(s string) (*ContentType, bool) {
	mt, ok := TryParseMediaType(s)
	if !ok || mt.IsWildcard() {
		return nil, false
	}
	return &ContentType{mt}, true
}
