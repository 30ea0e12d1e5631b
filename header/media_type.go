package header

import (
	"errors"
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// MediaType holds media type information: "type/subtype" plus parameters.
// Type and subtype are stored in lower case. Either may be the wildcard "*"
// when the media type is used as a range in Accept.
type MediaType struct {
	typ    string
	sub    string
	params Params
}

// NewMediaType creates a media type from type, subtype and parameter name/value pairs.
func NewMediaType(typ, sub string, params ...string) (MediaType, error) {
	if !grammar.IsToken(typ) || !grammar.IsToken(sub) {
		return MediaType{}, errtrace.Wrap(newInvalidArgumentError("invalid media type %q", typ+"/"+sub))
	}
	ps, err := NewParams(params...)
	if err != nil {
		return MediaType{}, errtrace.Wrap(err)
	}
	return MediaType{typ: util.LCase(typ), sub: util.LCase(sub), params: ps}, nil
}

// MustMediaType is like [NewMediaType] but panics on error.
func MustMediaType(typ, sub string, params ...string) MediaType {
	return util.Must2(NewMediaType(typ, sub, params...))
}

func (mt MediaType) Type() string { return mt.typ }

func (mt MediaType) Subtype() string { return mt.sub }

// Essence returns "type/subtype" without parameters.
func (mt MediaType) Essence() string {
	if mt.IsZero() {
		return ""
	}
	return mt.typ + "/" + mt.sub
}

// Params returns a copy of media type parameters.
func (mt MediaType) Params() Params { return mt.params.Clone() }

func (mt MediaType) Param(name string) (string, bool) { return mt.params.Get(name) }

// WithParam returns a copy of the media type with the parameter set.
func (mt MediaType) WithParam(name, value string) (MediaType, error) {
	ps := mt.params.Clone()
	if err := ps.Set(name, value); err != nil {
		return mt, errtrace.Wrap(err)
	}
	mt.params = ps
	return mt, nil
}

// WithoutParam returns a copy of the media type without the parameter.
func (mt MediaType) WithoutParam(name string) MediaType {
	ps := mt.params.Clone()
	ps.Del(name)
	mt.params = ps
	return mt
}

// IsWildcard reports whether the type or subtype is "*".
func (mt MediaType) IsWildcard() bool { return mt.typ == "*" || mt.sub == "*" }

// Matches matches the media type against the media range rng.
// It returns the specificity score of the match: "*/*" scores lowest,
// "type/*" and "*/subtype" score higher and "type/subtype" scores highest.
// Within a tier the number of matched range parameters increases the score.
// Every range parameter must be present in mt with the same value.
func (mt MediaType) Matches(rng MediaType) (int, bool) {
	tier := 3
	if rng.typ == "*" {
		tier--
	} else if !util.EqFold(rng.typ, mt.typ) {
		return 0, false
	}
	if rng.sub == "*" {
		tier--
	} else if !util.EqFold(rng.sub, mt.sub) {
		return 0, false
	}

	for name, want := range rng.params.All() {
		got, ok := mt.params.Get(name)
		if !ok || !paramValueEqual(name, got, want) {
			return 0, false
		}
	}
	return tier<<8 | rng.params.Len(), true
}

func paramValueEqual(name, v1, v2 string) bool {
	if name == "charset" {
		return util.EqFold(v1, v2)
	}
	return v1 == v2
}

func (mt MediaType) String() string { return renderToString(mt.renderTo) }

func (mt MediaType) renderTo(w io.Writer) (num int, err error) {
	if mt.IsZero() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(mt.typ, "/", mt.sub)
	cw.Call(mt.params.renderSuffixTo)
	return errtrace.Wrap2(cw.Result())
}

func (mt MediaType) Format(f fmt.State, verb rune) {
	type hideMethods MediaType
	type MediaType hideMethods
	formatElem(f, verb, mt.String(), MediaType(mt))
}

func (mt MediaType) Equal(val any) bool {
	var other MediaType
	switch v := val.(type) {
	case MediaType:
		other = v
	case *MediaType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if mt.typ != other.typ || mt.sub != other.sub || mt.params.Len() != other.params.Len() {
		return false
	}
	for name, v := range mt.params.All() {
		if ov, ok := other.params.Get(name); !ok || !paramValueEqual(name, v, ov) {
			return false
		}
	}
	return true
}

func (mt MediaType) IsValid() bool {
	return grammar.IsToken(mt.typ) &&
		grammar.IsToken(mt.sub) &&
		mt.params.IsValid()
}

func (mt MediaType) IsZero() bool {
	return mt.typ == "" &&
		mt.sub == "" &&
		mt.params.Len() == 0
}

func (mt MediaType) Clone() MediaType {
	mt.params = mt.params.Clone()
	return mt
}

func (mt MediaType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

func (mt *MediaType) UnmarshalText(data []byte) error {
	v, err := ParseMediaType(string(data))
	if err != nil {
		*mt = MediaType{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}
	*mt = v
	return nil
}

// ParseMediaType parses a media type, e.g. "text/html; charset=utf-8".
func ParseMediaType(s string) (MediaType, error) {
	if util.TrimOWS(s) == "" {
		return MediaType{}, errtrace.Wrap(grammar.ErrEmptyInput)
	}
	mt, ok := TryParseMediaType(s)
	if !ok {
		return MediaType{}, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, "media type %q", s))
	}
	return mt, nil
}

// TryParseMediaType is like [ParseMediaType] but reports failure with false.
func TryParseMediaType(s string) (MediaType, bool) {
	sc := grammar.NewScanner(s)
	sc.SkipWS()
	mt, _, ok := readMediaType(sc, false)
	if !ok {
		return MediaType{}, false
	}
	sc.SkipWS()
	if sc.HasNext() {
		return MediaType{}, false
	}
	return mt, true
}

// readMediaType consumes type "/" subtype *( OWS ";" OWS parameter ).
// With weighted set the "q" parameter is returned as weight.
func readMediaType(sc *grammar.Scanner, weighted bool) (MediaType, Weight, bool) {
	start := sc.Pos()
	typ, ok := sc.ReadToken()
	if !ok || !sc.ReadChar('/') {
		sc.SetPos(start)
		return MediaType{}, Weight{}, false
	}
	sub, ok := sc.ReadToken()
	if !ok {
		sc.SetPos(start)
		return MediaType{}, Weight{}, false
	}

	mt := MediaType{typ: util.LCase(typ), sub: util.LCase(sub)}
	w, ok := readParams(sc, &mt.params, weighted)
	if !ok {
		sc.SetPos(start)
		return MediaType{}, Weight{}, false
	}
	return mt, w, true
}
