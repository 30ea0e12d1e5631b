package header

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// SameSite is the value of the Set-Cookie SameSite attribute.
type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

func (s SameSite) IsValid() bool {
	return s == SameSiteStrict || s == SameSiteLax || s == SameSiteNone
}

func parseSameSite(s string) (SameSite, bool) {
	for _, v := range []SameSite{SameSiteStrict, SameSiteLax, SameSiteNone} {
		if util.EqFold(s, v) {
			return v, true
		}
	}
	return "", false
}

// SetCookie represents the Set-Cookie response header (RFC 6265 Section 4.1).
// Each cookie is sent in its own header line, so the type is not a list.
//
// The zero Expires and nil MaxAge mean the attribute is absent.
type SetCookie struct {
	Name        string
	Value       string
	Path        string
	Domain      string
	MaxAge      *int
	Expires     time.Time
	SameSite    SameSite
	Secure      bool
	HttpOnly    bool
	Partitioned bool
}

// NewSetCookie creates a Set-Cookie header with the cookie name and value.
func NewSetCookie(name, value string) (*SetCookie, error) {
	hdr := &SetCookie{Name: name, Value: value}
	if !hdr.IsValid() {
		return nil, errtrace.Wrap(newInvalidArgumentError("invalid cookie %q=%q", name, value))
	}
	return hdr, nil
}

func (*SetCookie) CanonicName() Name { return "Set-Cookie" }

func (hdr *SetCookie) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr *SetCookie) renderValueTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdr.Name, "=", hdr.Value)
	if hdr.Path != "" {
		cw.Fprint("; Path=", hdr.Path)
	}
	if hdr.Domain != "" {
		cw.Fprint("; Domain=", hdr.Domain)
	}
	if !hdr.Expires.IsZero() {
		cw.Fprint("; Expires=", grammar.FormatHTTPDate(hdr.Expires))
	}
	if hdr.MaxAge != nil {
		cw.Fprint("; Max-Age=", strconv.Itoa(*hdr.MaxAge))
	}
	if hdr.HttpOnly {
		cw.Fprint("; HttpOnly")
	}
	if hdr.Secure {
		cw.Fprint("; Secure")
	}
	if hdr.SameSite != "" {
		cw.Fprint("; SameSite=", hdr.SameSite)
	}
	if hdr.Partitioned {
		cw.Fprint("; Partitioned")
	}
	return errtrace.Wrap2(cw.Result())
}

func (hdr *SetCookie) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *SetCookie) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr *SetCookie) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.renderValueTo)
}

func (hdr *SetCookie) Format(f fmt.State, verb rune) {
	type hideMethods SetCookie
	type SetCookie hideMethods
	formatHdr(f, verb, hdr, (*SetCookie)(hdr))
}

func (hdr *SetCookie) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	hdr2.MaxAge = clonePtr(hdr.MaxAge)
	return &hdr2
}

func (hdr *SetCookie) Equal(val any) bool {
	var other *SetCookie
	switch v := val.(type) {
	case SetCookie:
		other = &v
	case *SetCookie:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Name == other.Name &&
		hdr.Value == other.Value &&
		hdr.Path == other.Path &&
		util.EqFold(hdr.Domain, other.Domain) &&
		ptrEqual(hdr.MaxAge, other.MaxAge) &&
		hdr.Expires.Equal(other.Expires) &&
		hdr.SameSite == other.SameSite &&
		hdr.Secure == other.Secure &&
		hdr.HttpOnly == other.HttpOnly &&
		hdr.Partitioned == other.Partitioned
}

func (hdr *SetCookie) IsValid() bool {
	return hdr != nil &&
		grammar.IsCookieName(hdr.Name) &&
		grammar.IsCookieValue(hdr.Value) &&
		(hdr.Path == "" || isCookiePath(hdr.Path)) &&
		(hdr.Domain == "" || isCookieDomain(hdr.Domain)) &&
		(hdr.SameSite == "" || hdr.SameSite.IsValid())
}

func (hdr *SetCookie) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *SetCookie) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*SetCookie](data)
	if err != nil || h == nil {
		*hdr = SetCookie{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}

// ParseSetCookie parses the Set-Cookie header value.
func ParseSetCookie(s string) (*SetCookie, error) {
	return errtrace.Wrap2(parseHdr("Set-Cookie", s, TryParseSetCookie))
}

// TryParseSetCookie parses the Set-Cookie header value, reporting failure with false.
//
// Only the leading name=value pair is mandatory. Attributes follow RFC 6265 Section 5.2:
// unknown attributes and attributes with malformed values are ignored.
func TryParseSetCookie(s string) (*SetCookie, bool) {
	if strings.ContainsFunc(s, func(r rune) bool { return r < 0x20 && r != '\t' || r == 0x7F }) {
		return nil, false
	}

	pair, attrs, _ := strings.Cut(s, ";")
	name, value, ok := strings.Cut(pair, "=")
	if !ok {
		return nil, false
	}
	name = util.TrimOWS(name)
	if !grammar.IsCookieName(name) {
		return nil, false
	}

	hdr := &SetCookie{
		Name:  name,
		Value: grammar.TrimCookieQuotes(util.TrimOWS(value)),
	}
	for attr := range strings.SplitSeq(attrs, ";") {
		k, v, _ := strings.Cut(attr, "=")
		k, v = util.TrimOWS(k), util.TrimOWS(v)
		switch util.LCase(k) {
		case "path":
			if isCookiePath(v) {
				hdr.Path = v
			}
		case "domain":
			v = util.LCase(strings.TrimPrefix(v, "."))
			if isCookieDomain(v) {
				hdr.Domain = v
			}
		case "expires":
			if t, err := grammar.ParseHTTPDate(v); err == nil {
				hdr.Expires = t
			}
		case "max-age":
			if n, ok := parseMaxAge(v); ok {
				hdr.MaxAge = &n
			}
		case "samesite":
			if ss, ok := parseSameSite(v); ok {
				hdr.SameSite = ss
			}
		case "secure":
			hdr.Secure = true
		case "httponly":
			hdr.HttpOnly = true
		case "partitioned":
			hdr.Partitioned = true
		}
	}
	return hdr, true
}

func isCookiePath(s string) bool {
	return strings.HasPrefix(s, "/") && grammar.IsAttrValue(s)
}

func isCookieDomain(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	return grammar.IsDomainName(s)
}

// parseMaxAge parses "-"? 1*DIGIT. Values that do not fit int are rejected.
func parseMaxAge(s string) (int, bool) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, false
	}
	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
