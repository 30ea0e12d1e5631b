package grammar

import "strconv"

// Scanner is a cursor over a single header field value.
//
// Every Read method either consumes the production it recognizes or leaves
// the cursor untouched, so callers can try alternative productions without
// manual bookkeeping. Pos and SetPos allow explicit backtracking over
// several productions.
type Scanner struct {
	s   string
	pos int
}

func NewScanner(s string) *Scanner { return &Scanner{s: s} }

func (sc *Scanner) Pos() int { return sc.pos }

// SetPos moves the cursor to p, clamped to the input bounds.
func (sc *Scanner) SetPos(p int) {
	sc.pos = max(0, min(p, len(sc.s)))
}

func (sc *Scanner) Len() int { return len(sc.s) }

func (sc *Scanner) HasNext() bool { return sc.pos < len(sc.s) }

// Rest returns the unconsumed part of the input.
func (sc *Scanner) Rest() string { return sc.s[sc.pos:] }

// Slice returns the input between positions from and to.
func (sc *Scanner) Slice(from, to int) string { return sc.s[from:to] }

func (sc *Scanner) Peek() (byte, bool) {
	if !sc.HasNext() {
		return 0, false
	}
	return sc.s[sc.pos], true
}

// Next consumes one byte.
func (sc *Scanner) Next() (byte, bool) {
	c, ok := sc.Peek()
	if ok {
		sc.pos++
	}
	return c, ok
}

// ReadChar consumes c if it is the next byte.
func (sc *Scanner) ReadChar(c byte) bool {
	if b, ok := sc.Peek(); ok && b == c {
		sc.pos++
		return true
	}
	return false
}

// ReadWhile consumes the maximal run of bytes accepted by pred.
func (sc *Scanner) ReadWhile(pred func(byte) bool) string {
	start := sc.pos
	for sc.pos < len(sc.s) && pred(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// ReadUntil consumes bytes up to, not including, the first byte in stop.
func (sc *Scanner) ReadUntil(stop ...byte) string {
	return sc.ReadWhile(func(c byte) bool {
		for _, s := range stop {
			if c == s {
				return false
			}
		}
		return true
	})
}

// SkipWS consumes optional whitespace.
func (sc *Scanner) SkipWS() { sc.ReadWhile(IsOWS) }

// ReadToken consumes a maximal run of token characters.
func (sc *Scanner) ReadToken() (string, bool) {
	tok := sc.ReadWhile(IsTchar)
	return tok, tok != ""
}

// ReadQuotedString consumes a quoted-string and returns its unescaped content.
func (sc *Scanner) ReadQuotedString() (string, bool) {
	start := sc.pos
	if !sc.ReadChar('"') {
		return "", false
	}

	var (
		buf     []byte
		escaped bool
		from    = sc.pos
	)
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		switch {
		case c == '"':
			var v string
			if escaped {
				v = string(append(buf, sc.s[from:sc.pos]...))
			} else {
				v = sc.s[from:sc.pos]
			}
			sc.pos++
			return v, true
		case c == '\\':
			if sc.pos+1 >= len(sc.s) || !isQuotedPairChar(sc.s[sc.pos+1]) {
				sc.pos = start
				return "", false
			}
			buf = append(buf, sc.s[from:sc.pos]...)
			buf = append(buf, sc.s[sc.pos+1])
			escaped = true
			sc.pos += 2
			from = sc.pos
		case IsQdtext(c):
			sc.pos++
		default:
			sc.pos = start
			return "", false
		}
	}
	sc.pos = start
	return "", false
}

// ReadTokenOrQuotedString consumes either a token or a quoted-string.
func (sc *Scanner) ReadTokenOrQuotedString() (string, bool) {
	if c, ok := sc.Peek(); ok && c == '"' {
		return sc.ReadQuotedString()
	}
	return sc.ReadToken()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ReadDigits consumes a maximal run of decimal digits.
func (sc *Scanner) ReadDigits() (string, bool) {
	ds := sc.ReadWhile(isDigit)
	return ds, ds != ""
}

// ReadNumber consumes a non-negative decimal number: 1*DIGIT [ "." *DIGIT ].
func (sc *Scanner) ReadNumber() (float64, bool) {
	start := sc.pos
	if _, ok := sc.ReadDigits(); !ok {
		return 0, false
	}
	if sc.ReadChar('.') {
		sc.ReadDigits()
	}
	n, err := strconv.ParseFloat(sc.s[start:sc.pos], 64)
	if err != nil {
		sc.pos = start
		return 0, false
	}
	return n, true
}

// ReadListSep consumes a list delimiter: OWS "," OWS.
// Empty list elements are skipped, as lists allow them.
func (sc *Scanner) ReadListSep() bool {
	start := sc.pos
	sc.SkipWS()
	if !sc.ReadChar(',') {
		sc.pos = start
		return false
	}
	for {
		sc.SkipWS()
		if !sc.ReadChar(',') {
			return true
		}
	}
}
