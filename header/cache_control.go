package header

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// CacheControl represents the Cache-Control header of a response (RFC 9111 Section 5.2.2).
//
// Directives the type does not model, and known directives with malformed
// arguments, are kept verbatim in Ext.
type CacheControl struct {
	MaxAge               *int
	SMaxAge              *int
	StaleWhileRevalidate *int // RFC 5861
	StaleIfError         *int // RFC 5861
	NoCache              bool
	NoCacheFields        []string
	Private              bool
	PrivateFields        []string
	NoStore              bool
	NoTransform          bool
	MustRevalidate       bool
	ProxyRevalidate      bool
	MustUnderstand       bool
	Public               bool
	Immutable            bool // RFC 8246
	Ext                  ExtFields
}

// Seconds returns a pointer to n, handy for delta-seconds fields.
func Seconds(n int) *int { return &n }

func (*CacheControl) CanonicName() Name { return "Cache-Control" }

func (hdr *CacheControl) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr *CacheControl) renderValueTo(w io.Writer) (num int, err error) {
	var d directiveWriter
	d.delta("max-age", hdr.MaxAge)
	d.delta("s-maxage", hdr.SMaxAge)
	d.fieldList("no-cache", hdr.NoCache, hdr.NoCacheFields)
	d.flag("no-store", hdr.NoStore)
	d.flag("no-transform", hdr.NoTransform)
	d.flag("must-revalidate", hdr.MustRevalidate)
	d.flag("proxy-revalidate", hdr.ProxyRevalidate)
	d.flag("must-understand", hdr.MustUnderstand)
	d.fieldList("private", hdr.Private, hdr.PrivateFields)
	d.flag("public", hdr.Public)
	d.flag("immutable", hdr.Immutable)
	d.delta("stale-while-revalidate", hdr.StaleWhileRevalidate)
	d.delta("stale-if-error", hdr.StaleIfError)
	return errtrace.Wrap2(d.writeTo(w, hdr.Ext))
}

func (hdr *CacheControl) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *CacheControl) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *CacheControl) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.renderValueTo)
}

func (hdr *CacheControl) Format(f fmt.State, verb rune) {
	type hideMethods CacheControl
	type CacheControl hideMethods
	formatHdr(f, verb, hdr, (*CacheControl)(hdr))
}

func (hdr *CacheControl) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	hdr2.MaxAge = clonePtr(hdr.MaxAge)
	hdr2.SMaxAge = clonePtr(hdr.SMaxAge)
	hdr2.StaleWhileRevalidate = clonePtr(hdr.StaleWhileRevalidate)
	hdr2.StaleIfError = clonePtr(hdr.StaleIfError)
	hdr2.NoCacheFields = slices.Clone(hdr.NoCacheFields)
	hdr2.PrivateFields = slices.Clone(hdr.PrivateFields)
	hdr2.Ext = hdr.Ext.Clone()
	return &hdr2
}

func (hdr *CacheControl) Equal(val any) bool {
	var other *CacheControl
	switch v := val.(type) {
	case CacheControl:
		other = &v
	case *CacheControl:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return ptrEqual(hdr.MaxAge, other.MaxAge) &&
		ptrEqual(hdr.SMaxAge, other.SMaxAge) &&
		ptrEqual(hdr.StaleWhileRevalidate, other.StaleWhileRevalidate) &&
		ptrEqual(hdr.StaleIfError, other.StaleIfError) &&
		hdr.NoCache == other.NoCache &&
		fieldNamesEqual(hdr.NoCacheFields, other.NoCacheFields) &&
		hdr.Private == other.Private &&
		fieldNamesEqual(hdr.PrivateFields, other.PrivateFields) &&
		hdr.NoStore == other.NoStore &&
		hdr.NoTransform == other.NoTransform &&
		hdr.MustRevalidate == other.MustRevalidate &&
		hdr.ProxyRevalidate == other.ProxyRevalidate &&
		hdr.MustUnderstand == other.MustUnderstand &&
		hdr.Public == other.Public &&
		hdr.Immutable == other.Immutable &&
		hdr.Ext.Equal(other.Ext)
}

// IsValid reports whether the header holds at least one directive and all directives are valid.
// Ext entries that would parse back as a modelled directive make the header invalid.
func (hdr *CacheControl) IsValid() bool {
	return hdr != nil &&
		hdr.RenderValue() != "" &&
		deltaValid(hdr.MaxAge, hdr.SMaxAge, hdr.StaleWhileRevalidate, hdr.StaleIfError) &&
		fieldNamesValid(hdr.NoCacheFields) &&
		fieldNamesValid(hdr.PrivateFields) &&
		hdr.Ext.IsValid() &&
		!slices.ContainsFunc(hdr.Ext.items, func(d extField) bool { return new(CacheControl).setDirective(d) })
}

func (hdr *CacheControl) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *CacheControl) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*CacheControl](data)
	if err != nil || h == nil {
		*hdr = CacheControl{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseCacheControl parses the Cache-Control header value of a response.
func ParseCacheControl(s string) (*CacheControl, error) {
	return errtrace.Wrap2(parseHdr("Cache-Control", s, TryParseCacheControl))
}

// TryParseCacheControl parses the Cache-Control header value of a response, reporting failure with false.
func TryParseCacheControl(s string) (*CacheControl, bool) {
	dirs, ok := readNonEmptyHdrList(s, readDirective)
	if !ok {
		return nil, false
	}

	var hdr CacheControl
	for _, d := range dirs {
		if !hdr.setDirective(d) {
			hdr.Ext.set(d)
		}
	}
	return &hdr, true
}

// setDirective stores a directive the type models and reports whether it did.
// Unknown directives and known ones with malformed arguments are left to the caller.
func (hdr *CacheControl) setDirective(d extField) bool {
	switch d.name {
	case "max-age":
		if v, ok := parseDeltaArg(d); ok {
			hdr.MaxAge = &v
			return true
		}
	case "s-maxage":
		if v, ok := parseDeltaArg(d); ok {
			hdr.SMaxAge = &v
			return true
		}
	case "stale-while-revalidate":
		if v, ok := parseDeltaArg(d); ok {
			hdr.StaleWhileRevalidate = &v
			return true
		}
	case "stale-if-error":
		if v, ok := parseDeltaArg(d); ok {
			hdr.StaleIfError = &v
			return true
		}
	case "no-cache":
		if fields, ok := parseFieldListArg(d); ok {
			hdr.NoCache, hdr.NoCacheFields = true, fields
			return true
		}
	case "private":
		if fields, ok := parseFieldListArg(d); ok {
			hdr.Private, hdr.PrivateFields = true, fields
			return true
		}
	case "no-store":
		if !d.hasValue {
			hdr.NoStore = true
			return true
		}
	case "no-transform":
		if !d.hasValue {
			hdr.NoTransform = true
			return true
		}
	case "must-revalidate":
		if !d.hasValue {
			hdr.MustRevalidate = true
			return true
		}
	case "proxy-revalidate":
		if !d.hasValue {
			hdr.ProxyRevalidate = true
			return true
		}
	case "must-understand":
		if !d.hasValue {
			hdr.MustUnderstand = true
			return true
		}
	case "public":
		if !d.hasValue {
			hdr.Public = true
			return true
		}
	case "immutable":
		if !d.hasValue {
			hdr.Immutable = true
			return true
		}
	}
	return false
}

// readDirective consumes token [ "=" ( token / quoted-string ) ].
func readDirective(sc *grammar.Scanner) (extField, bool) {
	start := sc.Pos()
	name, ok := sc.ReadToken()
	if !ok {
		return extField{}, false
	}

	d := extField{name: util.LCase(name)}
	if sc.ReadChar('=') {
		if d.value, ok = sc.ReadTokenOrQuotedString(); !ok {
			sc.SetPos(start)
			return extField{}, false
		}
		d.hasValue = true
	}
	return d, true
}

// maxDeltaSeconds is 2^31, or the largest int where int is 32 bits wide.
const maxDeltaSeconds = min(math.MaxInt32+1, math.MaxInt)

// parseDeltaArg parses a delta-seconds argument (RFC 9111 Section 1.2.2).
// Values too large are capped to [maxDeltaSeconds].
func parseDeltaArg(d extField) (int, bool) {
	if !d.hasValue || d.value == "" {
		return 0, false
	}
	var n int64
	for i := range len(d.value) {
		c := d.value[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		if n < maxDeltaSeconds {
			n = n*10 + int64(c-'0')
		}
	}
	return int(min(n, maxDeltaSeconds)), true
}

// parseFieldListArg parses the optional field-name list argument of no-cache and private.
func parseFieldListArg(d extField) ([]string, bool) {
	if !d.hasValue {
		return nil, true
	}

	var fields []string
	for f := range strings.SplitSeq(d.value, ",") {
		f = util.TrimOWS(f)
		if f == "" {
			continue
		}
		if !httpguts.ValidHeaderFieldName(f) {
			return nil, false
		}
		fields = append(fields, string(CanonicName(f)))
	}
	return fields, true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](p1, p2 *T) bool {
	if p1 == nil || p2 == nil {
		return p1 == p2
	}
	return *p1 == *p2
}

func deltaValid(ps ...*int) bool {
	return !slices.ContainsFunc(ps, func(p *int) bool { return p != nil && (*p < 0 || *p > maxDeltaSeconds) })
}

func fieldNamesEqual(fs1, fs2 []string) bool {
	return slices.EqualFunc(fs1, fs2, func(f1, f2 string) bool { return util.EqFold(f1, f2) })
}

func fieldNamesValid(fs []string) bool {
	return !slices.ContainsFunc(fs, func(f string) bool { return !httpguts.ValidHeaderFieldName(f) })
}

// directiveWriter accumulates directives in the canonical order.
type directiveWriter struct {
	dirs []string
}

func (d *directiveWriter) flag(name string, on bool) {
	if on {
		d.dirs = append(d.dirs, name)
	}
}

func (d *directiveWriter) delta(name string, v *int) {
	if v != nil {
		d.dirs = append(d.dirs, name+"="+strconv.Itoa(*v))
	}
}

func (d *directiveWriter) fieldList(name string, on bool, fields []string) {
	switch {
	case len(fields) > 0:
		d.dirs = append(d.dirs, name+"="+grammar.Quote(strings.Join(fields, ", ")))
	case on:
		d.dirs = append(d.dirs, name)
	}
}

func (d *directiveWriter) writeTo(w io.Writer, ext ExtFields) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(renderHdrList(w, ", ", d.dirs, writeString)) })
	if len(d.dirs) > 0 && ext.Len() > 0 {
		cw.Fprint(", ")
	}
	cw.Call(ext.renderTo)
	return errtrace.Wrap2(cw.Result())
}

func writeString(s string, w io.Writer) (int, error) { return errtrace.Wrap2(io.WriteString(w, s)) }
