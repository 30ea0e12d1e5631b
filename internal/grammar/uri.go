package grammar

import (
	"github.com/qmuntal/stateless"
)

type uriState uint8

const (
	uriInit uriState = iota
	uriLAngle
	uriBody
	uriRAngle
)

type uriTrigger uint8

const (
	uriTrigLAngle uriTrigger = iota
	uriTrigRAngle
	uriTrigChar
)

// IsURIChar reports whether c may appear in an RFC 3986 URI-reference.
func IsURIChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', // unreserved
		':', '/', '?', '#', '[', ']', '@', // gen-delims
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', // sub-delims
		'%':
		return true
	}
	return false
}

func uriTriggerOf(c byte) (uriTrigger, bool) {
	switch {
	case c == '<':
		return uriTrigLAngle, true
	case c == '>':
		return uriTrigRAngle, true
	case IsURIChar(c):
		return uriTrigChar, true
	default:
		return 0, false
	}
}

func newURIMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(uriInit)
	sm.Configure(uriInit).
		Permit(uriTrigLAngle, uriLAngle)
	sm.Configure(uriLAngle).
		Permit(uriTrigChar, uriBody).
		Permit(uriTrigRAngle, uriRAngle)
	sm.Configure(uriBody).
		PermitReentry(uriTrigChar).
		Permit(uriTrigRAngle, uriRAngle)
	return sm
}

// ReadURIReference consumes "<" URI-Reference ">" and returns the reference.
func ReadURIReference(sc *Scanner) (string, bool) {
	start := sc.Pos()
	sm := newURIMachine()

	for sc.HasNext() {
		c, _ := sc.Peek()
		trg, ok := uriTriggerOf(c)
		if !ok {
			break
		}
		if err := sm.Fire(trg); err != nil {
			break
		}
		sc.pos++

		if sm.MustState().(uriState) == uriRAngle { //nolint:forcetypeassert
			ref := sc.s[start+1 : sc.pos-1]
			if !IsURIReference(ref) {
				break
			}
			return ref, true
		}
	}

	sc.SetPos(start)
	return "", false
}

// IsURIReference reports whether s matches the RFC 3986 URI-reference rule.
// The empty string is a valid same-document reference.
func IsURIReference(s string) bool {
	for i := range len(s) {
		if !IsURIChar(s[i]) {
			return false
		}
	}
	return s == "" || matchesAll(uriReference, s)
}
