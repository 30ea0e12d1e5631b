package header

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Link represents the Link header (RFC 8288 Section 3).
type Link []LinkValue

// LinkValue is a single link: the target URI-reference and its target attributes.
// A parameter without a value is stored with an empty value.
type LinkValue struct {
	URI    string
	Params Params
}

// NewLinkValue creates a link to the target URI-reference with parameter name/value pairs.
func NewLinkValue(uri string, params ...string) (LinkValue, error) {
	if !grammar.IsURIReference(uri) {
		return LinkValue{}, errtrace.Wrap(newInvalidArgumentError("invalid link target %q", uri))
	}
	ps, err := NewParams(params...)
	if err != nil {
		return LinkValue{}, errtrace.Wrap(err)
	}
	return LinkValue{URI: uri, Params: ps}, nil
}

func (Link) CanonicName() Name { return "Link" }

// All iterates links in wire order.
func (hdr Link) All() iter.Seq[LinkValue] { return slices.Values(hdr) }

// ByRel returns links whose "rel" attribute lists the relation type.
// Relation types are compared case-insensitively.
func (hdr Link) ByRel(rel string) Link {
	var links Link
	for _, lv := range hdr {
		if slices.ContainsFunc(lv.Rels(), func(r string) bool { return util.EqFold(r, rel) }) {
			links = append(links, lv)
		}
	}
	return links
}

func (hdr Link) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Link) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, LinkValue.renderTo))
}

func (hdr Link) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Link) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Link) String() string { return hdr.RenderValue() }

func (hdr Link) Format(f fmt.State, verb rune) {
	type hideMethods Link
	type Link hideMethods
	formatHdr(f, verb, hdr, Link(hdr))
}

func (hdr Link) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr Link) Equal(val any) bool {
	var other Link
	switch v := val.(type) {
	case Link:
		other = v
	case *Link:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, LinkValue.Equal)
}

func (hdr Link) IsValid() bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(lv LinkValue) bool { return !lv.IsValid() })
}

func (hdr Link) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Link) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Link](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseLink parses the Link header value.
func ParseLink(s string) (Link, error) {
	return errtrace.Wrap2(parseHdr("Link", s, TryParseLink))
}

// TryParseLink parses the Link header value, reporting failure with false.
func TryParseLink(s string) (Link, bool) {
	links, ok := readHdrList(s, readLinkValue)
	if !ok {
		return nil, false
	}
	return Link(links), true
}

// readLinkValue parses "<" URI-Reference ">" *( OWS ";" OWS link-param ).
func readLinkValue(sc *grammar.Scanner) (LinkValue, bool) {
	uri, ok := grammar.ReadURIReference(sc)
	if !ok {
		return LinkValue{}, false
	}

	lv := LinkValue{URI: uri}
	for {
		save := sc.Pos()
		sc.SkipWS()
		if !sc.ReadChar(';') {
			sc.SetPos(save)
			return lv, true
		}
		sc.SkipWS()

		name, ok := sc.ReadToken()
		if !ok {
			return LinkValue{}, false
		}
		// link-param = token BWS [ "=" BWS ( token / quoted-string ) ]
		save = sc.Pos()
		sc.SkipWS()
		if !sc.ReadChar('=') {
			sc.SetPos(save)
			lv.addParam(name, "")
			continue
		}
		sc.SkipWS()
		value, ok := sc.ReadTokenOrQuotedString()
		if !ok {
			return LinkValue{}, false
		}
		lv.addParam(name, value)
	}
}

// addParam keeps the first occurrence of a parameter (RFC 8288 Section 3.3).
func (lv *LinkValue) addParam(name, value string) {
	if !lv.Params.Has(name) {
		lv.Params.set(name, value)
	}
}

// Rels returns relation types listed by the "rel" attribute.
func (lv LinkValue) Rels() []string {
	rel, _ := lv.Params.Get("rel")
	return strings.Fields(rel)
}

func (lv LinkValue) String() string { return renderToString(lv.renderTo) }

func (lv LinkValue) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint("<", lv.URI, ">")
	cw.Call(lv.Params.renderSuffixTo)
	return errtrace.Wrap2(cw.Result())
}

func (lv LinkValue) Clone() LinkValue {
	lv.Params = lv.Params.Clone()
	return lv
}

func (lv LinkValue) Equal(other LinkValue) bool {
	return lv.URI == other.URI && lv.Params.Equal(other.Params)
}

func (lv LinkValue) IsValid() bool {
	return grammar.IsURIReference(lv.URI) && lv.Params.IsValid()
}
