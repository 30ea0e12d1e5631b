package header

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"
)

// RequestCacheControl represents the Cache-Control header of a request (RFC 9111 Section 5.2.1).
//
// It shares the header name with [CacheControl], so [Lookup] resolves "Cache-Control"
// to the response form. Use [KindRequestCacheControl] or [ParseRequestCacheControl] explicitly.
type RequestCacheControl struct {
	MaxAge *int
	// MaxStale holds the max-stale argument. MaxStaleAny is set for max-stale without argument.
	MaxStale     *int
	MaxStaleAny  bool
	MinFresh     *int
	StaleIfError *int // RFC 5861
	NoCache      bool
	NoStore      bool
	NoTransform  bool
	OnlyIfCached bool
	Ext          ExtFields
}

func (*RequestCacheControl) CanonicName() Name { return "Cache-Control" }

func (hdr *RequestCacheControl) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr *RequestCacheControl) renderValueTo(w io.Writer) (num int, err error) {
	var d directiveWriter
	d.delta("max-age", hdr.MaxAge)
	if hdr.MaxStale != nil {
		d.delta("max-stale", hdr.MaxStale)
	} else {
		d.flag("max-stale", hdr.MaxStaleAny)
	}
	d.delta("min-fresh", hdr.MinFresh)
	d.flag("no-cache", hdr.NoCache)
	d.flag("no-store", hdr.NoStore)
	d.flag("no-transform", hdr.NoTransform)
	d.flag("only-if-cached", hdr.OnlyIfCached)
	d.delta("stale-if-error", hdr.StaleIfError)
	return errtrace.Wrap2(d.writeTo(w, hdr.Ext))
}

func (hdr *RequestCacheControl) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *RequestCacheControl) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *RequestCacheControl) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.renderValueTo)
}

func (hdr *RequestCacheControl) Format(f fmt.State, verb rune) {
	type hideMethods RequestCacheControl
	type RequestCacheControl hideMethods
	formatHdr(f, verb, hdr, (*RequestCacheControl)(hdr))
}

func (hdr *RequestCacheControl) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	hdr2.MaxAge = clonePtr(hdr.MaxAge)
	hdr2.MaxStale = clonePtr(hdr.MaxStale)
	hdr2.MinFresh = clonePtr(hdr.MinFresh)
	hdr2.StaleIfError = clonePtr(hdr.StaleIfError)
	hdr2.Ext = hdr.Ext.Clone()
	return &hdr2
}

func (hdr *RequestCacheControl) Equal(val any) bool {
	var other *RequestCacheControl
	switch v := val.(type) {
	case RequestCacheControl:
		other = &v
	case *RequestCacheControl:
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
		ptrEqual(hdr.MaxStale, other.MaxStale) &&
		hdr.MaxStaleAny == other.MaxStaleAny &&
		ptrEqual(hdr.MinFresh, other.MinFresh) &&
		ptrEqual(hdr.StaleIfError, other.StaleIfError) &&
		hdr.NoCache == other.NoCache &&
		hdr.NoStore == other.NoStore &&
		hdr.NoTransform == other.NoTransform &&
		hdr.OnlyIfCached == other.OnlyIfCached &&
		hdr.Ext.Equal(other.Ext)
}

// IsValid reports whether the header holds at least one directive and all directives are valid.
func (hdr *RequestCacheControl) IsValid() bool {
	return hdr != nil &&
		hdr.RenderValue() != "" &&
		!(hdr.MaxStale != nil && hdr.MaxStaleAny) &&
		deltaValid(hdr.MaxAge, hdr.MaxStale, hdr.MinFresh, hdr.StaleIfError) &&
		hdr.Ext.IsValid() &&
		!slices.ContainsFunc(hdr.Ext.items, func(d extField) bool { return new(RequestCacheControl).setDirective(d) })
}

func (hdr *RequestCacheControl) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

// UnmarshalJSON decodes the header value directly,
// since [FromJSON] resolves "Cache-Control" to the response form.
func (hdr *RequestCacheControl) UnmarshalJSON(data []byte) error {
	var hd *headerData
	if err := json.Unmarshal(data, &hd); err != nil {
		*hdr = RequestCacheControl{}
		return errtrace.Wrap(err)
	}
	if hd == nil {
		*hdr = RequestCacheControl{}
		return nil
	}

	h, err := ParseRequestCacheControl(hd.Value)
	if err != nil {
		*hdr = RequestCacheControl{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseRequestCacheControl parses the Cache-Control header value of a request.
func ParseRequestCacheControl(s string) (*RequestCacheControl, error) {
	return errtrace.Wrap2(parseHdr("Cache-Control", s, TryParseRequestCacheControl))
}

// TryParseRequestCacheControl parses the Cache-Control header value of a request, reporting failure with false.
func TryParseRequestCacheControl(s string) (*RequestCacheControl, bool) {
	dirs, ok := readNonEmptyHdrList(s, readDirective)
	if !ok {
		return nil, false
	}

	var hdr RequestCacheControl
	for _, d := range dirs {
		if !hdr.setDirective(d) {
			hdr.Ext.set(d)
		}
	}
	return &hdr, true
}

// setDirective stores a directive the type models and reports whether it did.
// Unknown directives and known ones with malformed arguments are left to the caller.
func (hdr *RequestCacheControl) setDirective(d extField) bool {
	switch d.name {
	case "max-age":
		if v, ok := parseDeltaArg(d); ok {
			hdr.MaxAge = &v
			return true
		}
	case "max-stale":
		if !d.hasValue {
			hdr.MaxStale, hdr.MaxStaleAny = nil, true
			return true
		}
		if v, ok := parseDeltaArg(d); ok {
			hdr.MaxStale, hdr.MaxStaleAny = &v, false
			return true
		}
	case "min-fresh":
		if v, ok := parseDeltaArg(d); ok {
			hdr.MinFresh = &v
			return true
		}
	case "stale-if-error":
		if v, ok := parseDeltaArg(d); ok {
			hdr.StaleIfError = &v
			return true
		}
	case "no-cache":
		if !d.hasValue {
			hdr.NoCache = true
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
	case "only-if-cached":
		if !d.hasValue {
			hdr.OnlyIfCached = true
			return true
		}
	}
	return false
}
