package grammar

import "github.com/qmuntal/stateless"

type etagState uint8

const (
	etagInit etagState = iota
	etagWeakW
	etagWeakSlash
	etagValueStart
	etagValueBody
	etagValueEnd
)

type etagTrigger uint8

const (
	etagTrigW etagTrigger = iota
	etagTrigSlash
	etagTrigDQuote
	etagTrigChar
)

// IsEtagc reports whether c may appear inside an opaque-tag.
func IsEtagc(c byte) bool { return c == 0x21 || (c >= 0x23 && c <= 0x7E) || isObsText(c) }

func etagTriggerOf(c byte) (etagTrigger, bool) {
	switch {
	case c == 'W':
		return etagTrigW, true
	case c == '/':
		return etagTrigSlash, true
	case c == '"':
		return etagTrigDQuote, true
	case IsEtagc(c):
		return etagTrigChar, true
	default:
		return 0, false
	}
}

func newETagMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(etagInit)
	sm.Configure(etagInit).
		Permit(etagTrigW, etagWeakW).
		Permit(etagTrigDQuote, etagValueStart)
	sm.Configure(etagWeakW).
		Permit(etagTrigSlash, etagWeakSlash)
	sm.Configure(etagWeakSlash).
		Permit(etagTrigDQuote, etagValueStart)
	sm.Configure(etagValueStart).
		Permit(etagTrigW, etagValueBody).
		Permit(etagTrigSlash, etagValueBody).
		Permit(etagTrigChar, etagValueBody).
		Permit(etagTrigDQuote, etagValueEnd)
	sm.Configure(etagValueBody).
		PermitReentry(etagTrigW).
		PermitReentry(etagTrigSlash).
		PermitReentry(etagTrigChar).
		Permit(etagTrigDQuote, etagValueEnd)
	return sm
}

// ReadETag consumes an entity-tag: [ "W/" ] DQUOTE *etagc DQUOTE.
// It returns the opaque value without quotes and the weakness flag.
func ReadETag(sc *Scanner) (value string, weak, ok bool) {
	start := sc.Pos()
	sm := newETagMachine()

	valStart := -1
	for sc.HasNext() {
		c, _ := sc.Peek()
		trg, ok := etagTriggerOf(c)
		if !ok {
			break
		}
		if err := sm.Fire(trg); err != nil {
			break
		}
		sc.pos++

		switch sm.MustState().(etagState) { //nolint:forcetypeassert
		case etagWeakW:
			weak = true
		case etagValueStart:
			valStart = sc.pos
		case etagValueEnd:
			return sc.s[valStart : sc.pos-1], weak, true
		}
	}

	sc.SetPos(start)
	return "", false, false
}

// IsOpaqueTag reports whether s can be used as an entity-tag value (without quotes).
func IsOpaqueTag(s string) bool {
	for i := range len(s) {
		if !IsEtagc(s[i]) || s[i] == '"' {
			return false
		}
	}
	return true
}
