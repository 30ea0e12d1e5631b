package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/util"
)

// Any implements a generic header.
// It holds the raw value of any header that has no registered [Kind].
type Any struct {
	Name  string
	Value string
}

func (hdr *Any) CanonicName() Name { return CanonicName(hdr.Name) }

func (hdr *Any) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdrTo(w, hdr.CanonicName(), opts, func(w io.Writer) (int, error) {
		return errtrace.Wrap2(io.WriteString(w, hdr.Value))
	}))
}

func (hdr *Any) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}

	return renderHdr(hdr, opts)
}

func (hdr *Any) String() string {
	return hdr.RenderValue()
}

// RenderValue returns the header value without the name prefix.
func (hdr *Any) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return hdr.Value
}

func (hdr *Any) Format(f fmt.State, verb rune) {
	type hideMethods Any
	type Any hideMethods
	formatHdr(f, verb, hdr, (*Any)(hdr))
}

func (hdr *Any) Clone() Header {
	if hdr == nil {
		return nil
	}

	hdr2 := *hdr
	return &hdr2
}

func (hdr *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return util.EqFold(hdr.Name, other.Name) && hdr.Value == other.Value
}

func (hdr *Any) IsValid() bool {
	return hdr != nil &&
		httpguts.ValidHeaderFieldName(hdr.Name) &&
		httpguts.ValidHeaderFieldValue(hdr.Value)
}

func (hdr *Any) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Any) UnmarshalJSON(data []byte) error {
	h, err := hdrFromJSON[*Any](data)
	if err != nil || h == nil {
		*hdr = Any{}
		return errtrace.Wrap(err)
	}
	*hdr = *h
	return nil
}
