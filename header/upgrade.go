package header

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Upgrade represents the Upgrade header (RFC 9110 Section 7.8).
// It is an ordered set of protocols "name[/version]" compared case-insensitively,
// the casing seen first is kept.
type Upgrade []string

// NewUpgrade creates an Upgrade header from protocols, dropping duplicates.
func NewUpgrade(protos ...string) (Upgrade, error) {
	return errtrace.Wrap2(Upgrade{}.Add(protos...))
}

func (Upgrade) CanonicName() Name { return "Upgrade" }

func (hdr Upgrade) Has(proto string) bool { return ciIndex(hdr, proto) >= 0 }

func (hdr Upgrade) Len() int { return len(hdr) }

// All iterates protocols in wire order.
func (hdr Upgrade) All() iter.Seq[string] { return slices.Values(hdr) }

// Add returns a copy of the header with missing protocols appended.
func (hdr Upgrade) Add(protos ...string) (Upgrade, error) {
	for _, p := range protos {
		if !isProtocol(p) {
			return hdr, errtrace.Wrap(newInvalidArgumentError("invalid protocol %q", p))
		}
	}
	return ciAppend(slices.Clone(hdr), protos...), nil
}

// Remove returns a copy of the header without the protocol.
func (hdr Upgrade) Remove(proto string) Upgrade {
	return slices.DeleteFunc(slices.Clone(hdr), func(p string) bool { return util.EqFold(p, proto) })
}

func (hdr Upgrade) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, hdr.renderValueTo))
}

func (hdr Upgrade) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", hdr, writeString))
}

func (hdr Upgrade) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr Upgrade) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Upgrade) String() string { return hdr.RenderValue() }

func (hdr Upgrade) Format(f fmt.State, verb rune) {
	type hideMethods Upgrade
	type Upgrade hideMethods
	formatHdr(f, verb, hdr, Upgrade(hdr))
}

func (hdr Upgrade) Clone() Header { return slices.Clone(hdr) }

// Equal reports whether both headers list the same protocols, regardless of order and case.
func (hdr Upgrade) Equal(val any) bool {
	var other Upgrade
	switch v := val.(type) {
	case Upgrade:
		other = v
	case *Upgrade:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ciEqual(hdr, other)
}

func (hdr Upgrade) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(p string) bool { return !isProtocol(p) })
}

func (hdr Upgrade) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Upgrade) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[Upgrade](data)
	if err != nil {
		*hdr = nil
		return errtrace.Wrap(err)
	}
	*hdr = h
	return nil
}

// ParseUpgrade parses the Upgrade header value.
func ParseUpgrade(s string) (Upgrade, error) {
	return errtrace.Wrap2(parseHdr("Upgrade", s, TryParseUpgrade))
}

// TryParseUpgrade parses the Upgrade header value, reporting failure with false.
func TryParseUpgrade(s string) (Upgrade, bool) {
	protos, ok := readNonEmptyHdrList(s, readProtocol)
	if !ok {
		return nil, false
	}
	return ciAppend(make(Upgrade, 0, len(protos)), protos...), true
}

// readProtocol parses protocol-name [ "/" protocol-version ].
func readProtocol(sc *grammar.Scanner) (string, bool) {
	start := sc.Pos()
	if _, ok := sc.ReadToken(); !ok {
		return "", false
	}
	if sc.ReadChar('/') {
		if _, ok := sc.ReadToken(); !ok {
			sc.SetPos(start)
			return "", false
		}
	}
	return sc.Slice(start, sc.Pos()), true
}

func isProtocol(s string) bool {
	sc := grammar.NewScanner(s)
	_, ok := readProtocol(sc)
	return ok && !sc.HasNext()
}
