package header

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/ioutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

type param struct {
	name  string
	value string
}

// Params is an ordered set of header parameters, e.g. "; charset=utf-8".
// Names are case-insensitive and stored in lower case, values are kept as is.
// The zero value is an empty set ready to use.
type Params struct {
	items []param
}

// NewParams builds Params from name/value pairs.
func NewParams(kvs ...string) (Params, error) {
	if len(kvs)%2 != 0 {
		return Params{}, errtrace.Wrap(newInvalidArgumentError("odd number of parameter arguments"))
	}

	var ps Params
	for i := 0; i < len(kvs); i += 2 {
		if err := ps.Set(kvs[i], kvs[i+1]); err != nil {
			return Params{}, errtrace.Wrap(err)
		}
	}
	return ps, nil
}

func (ps *Params) index(name string) int {
	for i := range ps.items {
		if util.EqFold(ps.items[i].name, name) {
			return i
		}
	}
	return -1
}

// Set sets the parameter value, keeping the original position of an existing parameter.
// The name must be a token and the value must be representable as a quoted-string,
// otherwise Params is left unchanged and an error is returned.
func (ps *Params) Set(name, value string) error {
	if !grammar.IsToken(name) {
		return errtrace.Wrap(newInvalidArgumentError("invalid parameter name %q", name))
	}
	if !grammar.IsQuotable(value) {
		return errtrace.Wrap(newInvalidArgumentError("invalid parameter %q value %q", name, value))
	}
	ps.set(name, value)
	return nil
}

func (ps *Params) set(name, value string) {
	if i := ps.index(name); i >= 0 {
		ps.items[i].value = value
		return
	}
	ps.items = append(ps.items, param{util.LCase(name), value})
}

func (ps Params) Get(name string) (string, bool) {
	if i := ps.index(name); i >= 0 {
		return ps.items[i].value, true
	}
	return "", false
}

func (ps Params) Has(name string) bool { return ps.index(name) >= 0 }

// Del removes the parameter, reporting whether it was present.
func (ps *Params) Del(name string) bool {
	i := ps.index(name)
	if i < 0 {
		return false
	}
	ps.items = append(ps.items[:i:i], ps.items[i+1:]...)
	return true
}

func (ps Params) Len() int { return len(ps.items) }

// All iterates parameters in insertion order.
func (ps Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range ps.items {
			if !yield(p.name, p.value) {
				return
			}
		}
	}
}

func (ps Params) Clone() Params {
	if ps.items == nil {
		return Params{}
	}
	return Params{items: append([]param(nil), ps.items...)}
}

// Equal reports whether both sets hold the same parameters, regardless of order.
func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if ps.Len() != other.Len() {
		return false
	}
	for _, p := range ps.items {
		if v, ok := other.Get(p.name); !ok || v != p.value {
			return false
		}
	}
	return true
}

func (ps Params) IsValid() bool {
	for _, p := range ps.items {
		if !grammar.IsToken(p.name) || !grammar.IsQuotable(p.value) {
			return false
		}
	}
	return true
}

// String renders parameters as "name=value" pairs joined by "; ".
func (ps Params) String() string { return renderToString(ps.renderTo) }

func (ps Params) renderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, "; ", ps.items, renderParam))
}

// renderSuffixTo writes parameters as a "; name=value" suffix of another element.
func (ps Params) renderSuffixTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, p := range ps.items {
		cw.Fprint("; ")
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(renderParam(p, w)) })
	}
	return errtrace.Wrap2(cw.Result())
}

func renderParam(p param, w io.Writer) (int, error) {
	return errtrace.Wrap2(fmt.Fprint(w, p.name, "=", grammar.QuoteIfNeeded(p.value)))
}

func (ps Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(f, ps.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(ps.String()))
	default:
		fmt.Fprintf(f, "%%!%c(header.Params=%s)", verb, ps.String())
	}
}

// readParams consumes *( OWS ";" OWS [ name "=" value ] ) and stores parameters into ps.
// With weighted set, a parameter named "q" is parsed as a weight instead of being stored.
func readParams(sc *grammar.Scanner, ps *Params, weighted bool) (w Weight, ok bool) {
	for {
		save := sc.Pos()
		sc.SkipWS()
		if !sc.ReadChar(';') {
			sc.SetPos(save)
			return w, true
		}
		sc.SkipWS()

		name, ok := sc.ReadToken()
		if !ok {
			continue
		}
		if !sc.ReadChar('=') {
			return w, false
		}
		value, ok := sc.ReadTokenOrQuotedString()
		if !ok {
			return w, false
		}

		if weighted && util.EqFold(name, "q") {
			q, ok := parseQValue(value)
			if !ok {
				return w, false
			}
			w = Weight{q: q, set: true}
			continue
		}
		if ps == nil {
			return w, false
		}
		ps.set(name, value)
	}
}

type extField struct {
	name     string
	value    string
	hasValue bool
}

// ExtFields is an ordered set of extension directives with optional values,
// e.g. "community=UCI, no-transform".
// Names are case-insensitive and stored in lower case.
// The zero value is an empty set ready to use.
type ExtFields struct {
	items []extField
}

func (fs *ExtFields) index(name string) int {
	for i := range fs.items {
		if util.EqFold(fs.items[i].name, name) {
			return i
		}
	}
	return -1
}

// Set sets a directive with a value.
func (fs *ExtFields) Set(name, value string) error {
	if !grammar.IsToken(name) {
		return errtrace.Wrap(newInvalidArgumentError("invalid directive name %q", name))
	}
	if !grammar.IsQuotable(value) {
		return errtrace.Wrap(newInvalidArgumentError("invalid directive %q value %q", name, value))
	}
	fs.set(extField{name, value, true})
	return nil
}

// SetFlag sets a directive without a value.
func (fs *ExtFields) SetFlag(name string) error {
	if !grammar.IsToken(name) {
		return errtrace.Wrap(newInvalidArgumentError("invalid directive name %q", name))
	}
	fs.set(extField{name: name})
	return nil
}

func (fs *ExtFields) set(f extField) {
	f.name = util.LCase(f.name)
	if i := fs.index(f.name); i >= 0 {
		fs.items[i] = f
		return
	}
	fs.items = append(fs.items, f)
}

// Get returns the directive value. A directive set by [ExtFields.SetFlag] has an empty value.
func (fs ExtFields) Get(name string) (string, bool) {
	if i := fs.index(name); i >= 0 {
		return fs.items[i].value, true
	}
	return "", false
}

func (fs ExtFields) Has(name string) bool { return fs.index(name) >= 0 }

// HasValue reports whether the directive is present and carries a value.
func (fs ExtFields) HasValue(name string) bool {
	i := fs.index(name)
	return i >= 0 && fs.items[i].hasValue
}

func (fs *ExtFields) Del(name string) bool {
	i := fs.index(name)
	if i < 0 {
		return false
	}
	fs.items = append(fs.items[:i:i], fs.items[i+1:]...)
	return true
}

func (fs ExtFields) Len() int { return len(fs.items) }

// All iterates directives in insertion order.
func (fs ExtFields) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range fs.items {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

func (fs ExtFields) Clone() ExtFields {
	if fs.items == nil {
		return ExtFields{}
	}
	return ExtFields{items: append([]extField(nil), fs.items...)}
}

// Equal reports whether both sets hold the same directives, regardless of order.
func (fs ExtFields) Equal(val any) bool {
	var other ExtFields
	switch v := val.(type) {
	case ExtFields:
		other = v
	case *ExtFields:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if fs.Len() != other.Len() {
		return false
	}
	for _, f := range fs.items {
		i := other.index(f.name)
		if i < 0 || other.items[i] != f {
			return false
		}
	}
	return true
}

func (fs ExtFields) IsValid() bool {
	for _, f := range fs.items {
		if !grammar.IsToken(f.name) || !grammar.IsQuotable(f.value) {
			return false
		}
	}
	return true
}

// String renders directives joined by ", ".
func (fs ExtFields) String() string { return renderToString(fs.renderTo) }

func (fs ExtFields) renderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrList(w, ", ", fs.items, func(f extField, w io.Writer) (int, error) {
		if !f.hasValue {
			return errtrace.Wrap2(io.WriteString(w, f.name))
		}
		return errtrace.Wrap2(fmt.Fprint(w, f.name, "=", grammar.QuoteIfNeeded(f.value)))
	}))
}

func (fs ExtFields) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(f, fs.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(fs.String()))
	default:
		fmt.Fprintf(f, "%%!%c(header.ExtFields=%s)", verb, fs.String())
	}
}
