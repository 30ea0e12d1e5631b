package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// AcceptEncoding represents the Accept-Encoding header (RFC 9110 Section 12.5.3).
type AcceptEncoding []EncodingRange

func (AcceptEncoding) CanonicName() Name { return "Accept-Encoding" }

func (hdr AcceptEncoding) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr AcceptEncoding) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, EncodingRange.renderTo))
}

func (hdr AcceptEncoding) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr AcceptEncoding) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr AcceptEncoding) String() string { return hdr.RenderValue() }

func (hdr AcceptEncoding) Format(f fmt.State, verb rune) {
	type hideMethods AcceptEncoding
	type AcceptEncoding hideMethods
	formatHdr(f, verb, hdr, AcceptEncoding(hdr))
}

func (hdr AcceptEncoding) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr AcceptEncoding) Equal(val any) bool {
	var other AcceptEncoding
	switch v := val.(type) {
	case AcceptEncoding:
		other = v
	case *AcceptEncoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(rng1, rng2 EncodingRange) bool { return rng1.Equal(rng2) })
}

func (hdr AcceptEncoding) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(rng EncodingRange) bool { return !rng.IsValid() })
}

// Negotiate returns the acceptable candidate content codings ranked by preference.
// An empty header accepts every candidate in the original order.
// No implicit "identity" entry is assumed.
// See [Negotiate] for the ranking rules.
func (hdr AcceptEncoding) Negotiate(candidates []string, opts *NegotiateOptions) []string {
	if len(hdr) == 0 {
		return slices.Clone(candidates)
	}
	return Negotiate(candidates, hdr, parseCodingCandidate, opts)
}

func parseCodingCandidate(s string) (string, bool) {
	s = util.TrimOWS(s)
	return util.LCase(s), grammar.IsToken(s)
}

func (hdr AcceptEncoding) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AcceptEncoding) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[AcceptEncoding](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseAcceptEncoding parses the Accept-Encoding header value.
func ParseAcceptEncoding(s string) (AcceptEncoding, error) {
	return errtrace.Wrap2(parseHdr("Accept-Encoding", s, TryParseAcceptEncoding))
}

// TryParseAcceptEncoding parses the Accept-Encoding header value, reporting failure with false.
func TryParseAcceptEncoding(s string) (AcceptEncoding, bool) {
	return readHdrList(s, readEncodingRange)
}

// readEncodingRange consumes codings [ weight ].
func readEncodingRange(sc *grammar.Scanner) (EncodingRange, bool) {
	start := sc.Pos()
	coding, ok := sc.ReadToken()
	if !ok {
		return EncodingRange{}, false
	}
	w, ok := readParams(sc, nil, true)
	if !ok {
		sc.SetPos(start)
		return EncodingRange{}, false
	}
	return EncodingRange{Coding: util.LCase(coding), Weight: w}, true
}

// EncodingRange is an element of the Accept-Encoding header: a content coding or "*" and a weight.
type EncodingRange struct {
	Coding string
	Weight
}

// Compare implements [Alternative]. "*" matches any coding with the lowest score.
func (rng EncodingRange) Compare(cand string) (int, bool) {
	switch {
	case rng.Coding == "*":
		return 1, true
	case util.EqFold(rng.Coding, cand):
		return 2, true
	default:
		return 0, false
	}
}

func (rng EncodingRange) String() string { return renderToString(rng.renderTo) }

func (rng EncodingRange) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(rng.Coding)
	cw.Call(rng.Weight.renderTo)
	return errtrace.Wrap2(cw.Result())
}

func (rng EncodingRange) Format(f fmt.State, verb rune) {
	type hideMethods EncodingRange
	type EncodingRange hideMethods
	formatElem(f, verb, rng.String(), EncodingRange(rng))
}

func (rng EncodingRange) Equal(val any) bool {
	var other EncodingRange
	switch v := val.(type) {
	case EncodingRange:
		other = v
	case *EncodingRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(rng.Coding, other.Coding) && rng.Weight == other.Weight
}

func (rng EncodingRange) IsValid() bool { return grammar.IsToken(rng.Coding) && rng.Weight.q.IsValid() }

func (rng EncodingRange) IsZero() bool { return rng.Coding == "" && rng.Weight == Weight{} }

func (rng EncodingRange) Clone() EncodingRange { return rng }
