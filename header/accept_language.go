package header

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// AcceptLanguage represents the Accept-Language header (RFC 9110 Section 12.5.4).
type AcceptLanguage []LanguageRange

func (AcceptLanguage) CanonicName() Name { return "Accept-Language" }

func (hdr AcceptLanguage) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr AcceptLanguage) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, LanguageRange.renderTo))
}

func (hdr AcceptLanguage) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr AcceptLanguage) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr AcceptLanguage) String() string { return hdr.RenderValue() }

func (hdr AcceptLanguage) Format(f fmt.State, verb rune) {
	type hideMethods AcceptLanguage
	type AcceptLanguage hideMethods
	formatHdr(f, verb, hdr, AcceptLanguage(hdr))
}

func (hdr AcceptLanguage) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr AcceptLanguage) Equal(val any) bool {
	var other AcceptLanguage
	switch v := val.(type) {
	case AcceptLanguage:
		other = v
	case *AcceptLanguage:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(rng1, rng2 LanguageRange) bool { return rng1.Equal(rng2) })
}

func (hdr AcceptLanguage) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(rng LanguageRange) bool { return !rng.IsValid() })
}

// Negotiate returns the acceptable candidate language tags ranked by preference,
// using the basic filtering of RFC 4647 Section 3.3.1.
// An empty header accepts every candidate in the original order.
func (hdr AcceptLanguage) Negotiate(candidates []string, opts *NegotiateOptions) []string {
	if len(hdr) == 0 {
		return slices.Clone(candidates)
	}
	return Negotiate(candidates, hdr, parseLangCandidate, opts)
}

func parseLangCandidate(s string) (string, bool) {
	s = util.TrimOWS(s)
	return s, isLanguageRange(s) && s != "*"
}

func (hdr AcceptLanguage) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AcceptLanguage) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[AcceptLanguage](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseAcceptLanguage parses the Accept-Language header value.
func ParseAcceptLanguage(s string) (AcceptLanguage, error) {
	return errtrace.Wrap2(parseHdr("Accept-Language", s, TryParseAcceptLanguage))
}

// TryParseAcceptLanguage parses the Accept-Language header value, reporting failure with false.
func TryParseAcceptLanguage(s string) (AcceptLanguage, bool) {
	return readHdrList(s, readLanguageRange)
}

func isLangChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '*'
}

// isLanguageRange reports whether s matches
// ( 1*8ALPHA *( "-" 1*8alphanum ) ) / "*".
func isLanguageRange(s string) bool {
	if s == "*" {
		return true
	}
	for i, sub := range strings.Split(s, "-") {
		if len(sub) == 0 || len(sub) > 8 {
			return false
		}
		for j := range len(sub) {
			c := sub[j]
			isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
			if !isAlpha && (i == 0 || c < '0' || c > '9') {
				return false
			}
		}
	}
	return true
}

func readLanguageRange(sc *grammar.Scanner) (LanguageRange, bool) {
	start := sc.Pos()
	tag := sc.ReadWhile(isLangChar)
	if !isLanguageRange(tag) {
		sc.SetPos(start)
		return LanguageRange{}, false
	}
	w, ok := readParams(sc, nil, true)
	if !ok {
		sc.SetPos(start)
		return LanguageRange{}, false
	}
	return LanguageRange{Tag: tag, Weight: w}, true
}

// LanguageRange is an element of the Accept-Language header: a language range and a weight.
type LanguageRange struct {
	Tag string
	Weight
}

// Compare implements [Alternative].
// "*" matches any tag with score 1, a range matching the tag or its prefix
// scores one more than the number of its subtags.
func (rng LanguageRange) Compare(cand string) (int, bool) {
	if rng.Tag == "*" {
		return 1, true
	}
	if util.EqFold(rng.Tag, cand) ||
		(len(cand) > len(rng.Tag) && cand[len(rng.Tag)] == '-' && util.EqFold(rng.Tag, cand[:len(rng.Tag)])) {
		return 1 + strings.Count(rng.Tag, "-") + 1, true
	}
	return 0, false
}

func (rng LanguageRange) String() string { return renderToString(rng.renderTo) }

func (rng LanguageRange) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(rng.Tag)
	cw.Call(rng.Weight.renderTo)
	return errtrace.Wrap2(cw.Result())
}

func (rng LanguageRange) Format(f fmt.State, verb rune) {
	type hideMethods LanguageRange
	type LanguageRange hideMethods
	formatElem(f, verb, rng.String(), LanguageRange(rng))
}

func (rng LanguageRange) Equal(val any) bool {
	var other LanguageRange
	switch v := val.(type) {
	case LanguageRange:
		other = v
	case *LanguageRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(rng.Tag, other.Tag) && rng.Weight == other.Weight
}

func (rng LanguageRange) IsValid() bool { return isLanguageRange(rng.Tag) && rng.Weight.q.IsValid() }

func (rng LanguageRange) IsZero() bool { return rng.Tag == "" && rng.Weight == Weight{} }

func (rng LanguageRange) Clone() LanguageRange { return rng }
