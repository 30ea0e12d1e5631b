package header

import (
	"fmt"
	"io"
	"iter"
	"net/netip"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Forwarded represents the Forwarded header (RFC 7239).
// Each element describes one proxy hop, the first one is the closest to the client.
type Forwarded []ForwardedElem

// ForwardedElem is a single forwarded-element.
// Known parameters are stored in the corresponding fields, extension parameters in Ext.
// Values are kept as sent, e.g. By and For hold node identifiers like "192.0.2.60",
// "[2001:db8::1]:8080", "_hidden" or "unknown". Use [ForwardedElem.IsConforming]
// to check them against the RFC 7239 syntax.
type ForwardedElem struct {
	By    string
	For   string
	Host  string
	Proto string
	Ext   Params
}

func (Forwarded) CanonicName() Name { return "Forwarded" }

// All iterates elements in wire order.
func (hdr Forwarded) All() iter.Seq[ForwardedElem] { return slices.Values(hdr) }

func (hdr Forwarded) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Forwarded) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, ForwardedElem.renderTo))
}

func (hdr Forwarded) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Forwarded) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Forwarded) String() string { return hdr.RenderValue() }

func (hdr Forwarded) Format(f fmt.State, verb rune) {
	type hideMethods Forwarded
	type Forwarded hideMethods
	formatHdr(f, verb, hdr, Forwarded(hdr))
}

func (hdr Forwarded) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr Forwarded) Equal(val any) bool {
	var other Forwarded
	switch v := val.(type) {
	case Forwarded:
		other = v
	case *Forwarded:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, ForwardedElem.Equal)
}

func (hdr Forwarded) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(e ForwardedElem) bool { return !e.IsValid() })
}

// IsConforming reports whether every element is conforming, see [ForwardedElem.IsConforming].
func (hdr Forwarded) IsConforming() bool {
	return hdr.IsValid() && !slices.ContainsFunc(hdr, func(e ForwardedElem) bool { return !e.IsConforming() })
}

func (hdr Forwarded) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Forwarded) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Forwarded](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseForwarded parses the Forwarded header value.
func ParseForwarded(s string) (Forwarded, error) {
	return errtrace.Wrap2(parseHdr("Forwarded", s, TryParseForwarded))
}

// TryParseForwarded parses the Forwarded header value, reporting failure with false.
// Parameter values are opaque tokens or quoted strings.
// A parameter repeated within one element fails the whole header.
func TryParseForwarded(s string) (Forwarded, bool) {
	elems, ok := readNonEmptyHdrList(s, readForwardedElem)
	if !ok {
		return nil, false
	}
	return Forwarded(elems), true
}

// readForwardedElem parses forwarded-pair *( ";" forwarded-pair ).
func readForwardedElem(sc *grammar.Scanner) (ForwardedElem, bool) {
	var (
		elem ForwardedElem
		seen = make(map[string]struct{}, 4)
	)
	for {
		sc.SkipWS()
		name, ok := sc.ReadToken()
		if !ok || !sc.ReadChar('=') {
			return elem, false
		}
		value, ok := sc.ReadTokenOrQuotedString()
		if !ok || value == "" {
			return elem, false
		}

		name = util.LCase(name)
		if _, dup := seen[name]; dup {
			return elem, false
		}
		seen[name] = struct{}{}

		switch name {
		case "by":
			elem.By = value
		case "for":
			elem.For = value
		case "host":
			elem.Host = value
		case "proto":
			elem.Proto = util.LCase(value)
		default:
			elem.Ext.set(name, value)
		}

		save := sc.Pos()
		sc.SkipWS()
		if !sc.ReadChar(';') {
			sc.SetPos(save)
			return elem, true
		}
	}
}

// NewForwardedElem creates a forwarded-element with the "for" node identifier.
// The node must follow RFC 7239 Section 6.
func NewForwardedElem(forNode string) (ForwardedElem, error) {
	elem := ForwardedElem{For: forNode}
	if !elem.IsConforming() {
		return ForwardedElem{}, errtrace.Wrap(newInvalidArgumentError("invalid node %q", forNode))
	}
	return elem, nil
}

func (e ForwardedElem) String() string { return renderToString(e.renderTo) }

func (e ForwardedElem) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	sep := ""
	pair := func(name, value string) {
		if value == "" {
			return
		}
		cw.Fprint(sep, name, "=", grammar.QuoteIfNeeded(value))
		sep = ";"
	}
	pair("for", e.For)
	pair("by", e.By)
	pair("host", e.Host)
	pair("proto", e.Proto)
	for k, v := range e.Ext.All() {
		pair(k, v)
	}
	return errtrace.Wrap2(cw.Result())
}

func (e ForwardedElem) Clone() ForwardedElem {
	e.Ext = e.Ext.Clone()
	return e
}

func (e ForwardedElem) Equal(other ForwardedElem) bool {
	return e.By == other.By &&
		e.For == other.For &&
		util.EqFold(e.Host, other.Host) &&
		util.EqFold(e.Proto, other.Proto) &&
		e.Ext.Equal(other.Ext)
}

// IsValid reports whether the element has at least one parameter and all of them are valid.
func (e ForwardedElem) IsValid() bool {
	if e.By == "" && e.For == "" && e.Host == "" && e.Proto == "" && e.Ext.Len() == 0 {
		return false
	}
	for k := range e.Ext.All() {
		switch k {
		case "by", "for", "host", "proto":
			return false
		}
	}
	return grammar.IsQuotable(e.By) &&
		grammar.IsQuotable(e.For) &&
		grammar.IsQuotable(e.Host) &&
		grammar.IsQuotable(e.Proto) &&
		e.Ext.IsValid()
}

// IsConforming reports whether the element is valid and its known parameters follow RFC 7239:
// By and For are node identifiers, Host is uri-host [ ":" port ] and Proto is a URI scheme.
func (e ForwardedElem) IsConforming() bool {
	return e.IsValid() &&
		(e.By == "" || isForwardedNode(e.By)) &&
		(e.For == "" || isForwardedNode(e.For)) &&
		(e.Host == "" || grammar.IsHostPort(e.Host)) &&
		(e.Proto == "" || isURIScheme(e.Proto))
}

// isForwardedNode reports whether s is a node: nodename [ ":" node-port ] (RFC 7239 Section 6).
func isForwardedNode(s string) bool {
	node, port := s, ""
	if strings.HasPrefix(s, "[") {
		i := strings.IndexByte(s, ']')
		if i < 0 {
			return false
		}
		node, port = s[:i+1], s[i+1:]
		if port != "" {
			if port[0] != ':' {
				return false
			}
			port = port[1:]
			if port == "" {
				return false
			}
		}
	} else if i := strings.IndexByte(s, ':'); i >= 0 {
		node, port = s[:i], s[i+1:]
		if port == "" {
			return false
		}
	}
	return isForwardedNodeName(node) && (port == "" || isForwardedPort(port))
}

func isForwardedNodeName(s string) bool {
	switch {
	case util.EqFold(s, "unknown"):
		return true
	case strings.HasPrefix(s, "_"):
		return isObfuscated(s)
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		addr, err := netip.ParseAddr(s[1 : len(s)-1])
		return err == nil && addr.Is6()
	default:
		addr, err := netip.ParseAddr(s)
		return err == nil && addr.Is4()
	}
}

func isForwardedPort(s string) bool {
	if strings.HasPrefix(s, "_") {
		return isObfuscated(s)
	}
	if len(s) > 5 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 65535
}

// isObfuscated reports whether s is "_" 1*( ALPHA / DIGIT / "." / "_" / "-" ).
func isObfuscated(s string) bool {
	if len(s) < 2 || s[0] != '_' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '.' || c == '_' || c == '-') {
			return false
		}
	}
	return true
}

// isURIScheme reports whether s is ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isURIScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		alpha := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}
