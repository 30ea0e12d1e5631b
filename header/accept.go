package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
)

// Accept represents the Accept header (RFC 9110 Section 12.5.1).
type Accept []MediaRange

func (Accept) CanonicName() Name { return "Accept" }

func (hdr Accept) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Accept) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, MediaRange.renderTo))
}

func (hdr Accept) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Accept) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Accept) String() string { return hdr.RenderValue() }

func (hdr Accept) Format(f fmt.State, verb rune) {
	type hideMethods Accept
	type Accept hideMethods
	formatHdr(f, verb, hdr, Accept(hdr))
}

func (hdr Accept) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr Accept) Equal(val any) bool {
	var other Accept
	switch v := val.(type) {
	case Accept:
		other = v
	case *Accept:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(rng1, rng2 MediaRange) bool { return rng1.Equal(rng2) })
}

func (hdr Accept) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(rng MediaRange) bool { return !rng.IsValid() })
}

// Negotiate returns the acceptable candidate media types ranked by preference.
// An empty header accepts every candidate in the original order.
// See [Negotiate] for the ranking rules.
func (hdr Accept) Negotiate(candidates []string, opts *NegotiateOptions) []string {
	if len(hdr) == 0 {
		return slices.Clone(candidates)
	}
	return Negotiate(candidates, hdr, TryParseMediaType, opts)
}

func (hdr Accept) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Accept) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Accept](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseAccept parses the Accept header value.
func ParseAccept(s string) (Accept, error) {
	return errtrace.Wrap2(parseHdr("Accept", s, TryParseAccept))
}

// TryParseAccept parses the Accept header value, reporting failure with false.
func TryParseAccept(s string) (Accept, bool) {
	return readHdrList(s, readMediaRange)
}

func readMediaRange(sc *grammar.Scanner) (MediaRange, bool) {
	mt, w, ok := readMediaType(sc, true)
	if !ok {
		return MediaRange{}, false
	}
	return MediaRange{Media: mt, Weight: w}, true
}

// MediaRange is an element of the Accept header: a media type, possibly with wildcards, and a weight.
type MediaRange struct {
	Media MediaType
	Weight
}

// NewMediaRange creates a media range with the default weight.
// The parameter name "q" is reserved for the weight and rejected.
func NewMediaRange(typ, sub string, params ...string) (MediaRange, error) {
	mt, err := NewMediaType(typ, sub, params...)
	if err != nil {
		return MediaRange{}, errtrace.Wrap(err)
	}
	if mt.params.Has("q") {
		return MediaRange{}, errtrace.Wrap(newInvalidArgumentError("media range parameter \"q\" is reserved for the weight"))
	}
	return MediaRange{Media: mt}, nil
}

// Compare implements [Alternative].
func (rng MediaRange) Compare(cand MediaType) (int, bool) { return cand.Matches(rng.Media) }

func (rng MediaRange) String() string { return renderToString(rng.renderTo) }

func (rng MediaRange) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(rng.Media.renderTo)
	cw.Call(rng.Weight.renderTo)
	return errtrace.Wrap2(cw.Result())
}

func (rng MediaRange) Format(f fmt.State, verb rune) {
	type hideMethods MediaRange
	type MediaRange hideMethods
	formatElem(f, verb, rng.String(), MediaRange(rng))
}

func (rng MediaRange) Equal(val any) bool {
	var other MediaRange
	switch v := val.(type) {
	case MediaRange:
		other = v
	case *MediaRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return rng.Media.Equal(other.Media) && rng.Weight == other.Weight
}

func (rng MediaRange) IsValid() bool {
	return rng.Media.IsValid() && !rng.Media.params.Has("q") && rng.Weight.q.IsValid()
}

func (rng MediaRange) IsZero() bool { return rng.Media.IsZero() && rng.Weight == Weight{} }

func (rng MediaRange) Clone() MediaRange {
	rng.Media = rng.Media.Clone()
	return rng
}
