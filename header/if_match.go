package header

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/util"
)

// IfMatch represents the If-Match header (RFC 9110 Section 13.1.1).
// Any is set for "*", otherwise Tags holds the listed entity-tags.
type IfMatch struct {
	Any  bool
	Tags []ETag
}

func (*IfMatch) CanonicName() Name { return "If-Match" }

// Matches reports whether the condition holds for the current entity-tag of the resource.
// Tags are compared with the strong comparison. A nil tag means there is no current representation.
func (hdr *IfMatch) Matches(tag *ETag) bool {
	if hdr == nil || tag == nil {
		return false
	}
	return hdr.Any || etagsContain(hdr.Tags, tag, true)
}

// All iterates entity-tags in wire order.
func (hdr *IfMatch) All() iter.Seq[ETag] {
	if hdr == nil {
		return func(func(ETag) bool) {}
	}
	return slices.Values(hdr.Tags)
}

func (hdr *IfMatch) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderETagCond(w, hdr.Any, hdr.Tags))
	}))
}

func (hdr *IfMatch) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *IfMatch) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *IfMatch) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderETagCond(w, hdr.Any, hdr.Tags))
	})
}

func (hdr *IfMatch) Format(f fmt.State, verb rune) {
	type hideMethods IfMatch
	type IfMatch hideMethods
	formatHdr(f, verb, hdr, (*IfMatch)(hdr))
}

func (hdr *IfMatch) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &IfMatch{Any: hdr.Any, Tags: slices.Clone(hdr.Tags)}
}

func (hdr *IfMatch) Equal(val any) bool {
	var other *IfMatch
	switch v := val.(type) {
	case IfMatch:
		other = &v
	case *IfMatch:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Any == other.Any && slices.Equal(hdr.Tags, other.Tags)
}

func (hdr *IfMatch) IsValid() bool { return hdr != nil && etagCondValid(hdr.Any, hdr.Tags) }

func (hdr *IfMatch) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *IfMatch) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*IfMatch](data)
	if err != nil || h == nil {
		*hdr = IfMatch{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseIfMatch parses the If-Match header value.
func ParseIfMatch(s string) (*IfMatch, error) {
	return errtrace.Wrap2(parseHdr("If-Match", s, TryParseIfMatch))
}

// TryParseIfMatch parses the If-Match header value, reporting failure with false.
func TryParseIfMatch(s string) (*IfMatch, bool) {
	anyTag, tags, ok := readETagCond(s)
	if !ok {
		return nil, false
	}
	return &IfMatch{Any: anyTag, Tags: tags}, true
}

// IfNoneMatch represents the If-None-Match header (RFC 9110 Section 13.1.2).
// Any is set for "*", otherwise Tags holds the listed entity-tags.
type IfNoneMatch struct {
	Any  bool
	Tags []ETag
}

func (*IfNoneMatch) CanonicName() Name { return "If-None-Match" }

// Matches reports whether the tag is listed by the header, using the weak comparison.
// The request condition evaluates to false when Matches returns true.
func (hdr *IfNoneMatch) Matches(tag *ETag) bool {
	if hdr == nil || tag == nil {
		return false
	}
	return hdr.Any || etagsContain(hdr.Tags, tag, false)
}

// All iterates entity-tags in wire order.
func (hdr *IfNoneMatch) All() iter.Seq[ETag] {
	if hdr == nil {
		return func(func(ETag) bool) {}
	}
	return slices.Values(hdr.Tags)
}

func (hdr *IfNoneMatch) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderETagCond(w, hdr.Any, hdr.Tags))
	}))
}

func (hdr *IfNoneMatch) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *IfNoneMatch) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *IfNoneMatch) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderETagCond(w, hdr.Any, hdr.Tags))
	})
}

func (hdr *IfNoneMatch) Format(f fmt.State, verb rune) {
	type hideMethods IfNoneMatch
	type IfNoneMatch hideMethods
	formatHdr(f, verb, hdr, (*IfNoneMatch)(hdr))
}

func (hdr *IfNoneMatch) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &IfNoneMatch{Any: hdr.Any, Tags: slices.Clone(hdr.Tags)}
}

func (hdr *IfNoneMatch) Equal(val any) bool {
	var other *IfNoneMatch
	switch v := val.(type) {
	case IfNoneMatch:
		other = &v
	case *IfNoneMatch:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Any == other.Any && slices.Equal(hdr.Tags, other.Tags)
}

func (hdr *IfNoneMatch) IsValid() bool { return hdr != nil && etagCondValid(hdr.Any, hdr.Tags) }

func (hdr *IfNoneMatch) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *IfNoneMatch) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*IfNoneMatch](data)
	if err != nil || h == nil {
		*hdr = IfNoneMatch{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseIfNoneMatch parses the If-None-Match header value.
func ParseIfNoneMatch(s string) (*IfNoneMatch, error) {
	return errtrace.Wrap2(parseHdr("If-None-Match", s, TryParseIfNoneMatch))
}

// TryParseIfNoneMatch parses the If-None-Match header value, reporting failure with false.
func TryParseIfNoneMatch(s string) (*IfNoneMatch, bool) {
	anyTag, tags, ok := readETagCond(s)
	if !ok {
		return nil, false
	}
	return &IfNoneMatch{Any: anyTag, Tags: tags}, true
}

func etagsContain(tags []ETag, tag *ETag, strong bool) bool {
	return slices.ContainsFunc(tags, func(t ETag) bool { return t.Matches(tag, strong) })
}

func etagCondValid(anyTag bool, tags []ETag) bool {
	if anyTag {
		return len(tags) == 0
	}
	return len(tags) > 0 && !slices.ContainsFunc(tags, func(t ETag) bool { return !t.IsValid() })
}

func renderETagCond(w io.Writer, anyTag bool, tags []ETag) (int, error) {
	if anyTag {
		return errtrace.Wrap2(io.WriteString(w, "*"))
	}
	return errtrace.Wrap2(renderHdrList(w, ", ", tags, func(t ETag, w io.Writer) (int, error) {
		return errtrace.Wrap2(t.renderValueTo(w))
	}))
}

// readETagCond parses "*" / 1#entity-tag.
func readETagCond(s string) (anyTag bool, tags []ETag, ok bool) {
	if util.TrimOWS(s) == "*" {
		return true, nil, true
	}
	tags, ok = readNonEmptyHdrList(s, readETag)
	return false, tags, ok
}
