// Package grammar implements the lexical primitives shared by all HTTP header grammars:
// a cursor scanner, character classes, quoting helpers, HTTP dates, cookie octets and
// small finite-state readers for entity tags and URI references.
package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httphdr/internal/util"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

// IsTchar reports whether c is an RFC 9110 token character.
func IsTchar(c byte) bool { return c < 0x80 && httpguts.IsTokenRune(rune(c)) }

// IsOWS reports whether c is optional whitespace (SP / HTAB).
func IsOWS(c byte) bool { return c == ' ' || c == '\t' }

// IsVchar reports whether c is a visible US-ASCII character.
func IsVchar(c byte) bool { return c >= 0x21 && c <= 0x7E }

func isObsText(c byte) bool { return c >= 0x80 }

// IsQdtext reports whether c may appear unescaped inside a quoted-string.
func IsQdtext(c byte) bool {
	return c == '\t' || c == ' ' || c == 0x21 ||
		(c >= 0x23 && c <= 0x5B) || (c >= 0x5D && c <= 0x7E) ||
		isObsText(c)
}

func isQuotedPairChar(c byte) bool {
	return c == '\t' || c == ' ' || IsVchar(c) || isObsText(c)
}

func IsToken[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := range len(s) {
		if !IsTchar(s[i]) {
			return false
		}
	}
	return true
}

// IsQuotable reports whether s can be represented as a quoted-string.
func IsQuotable[T ~string | ~[]byte](s T) bool {
	for i := range len(s) {
		if !isQuotedPairChar(s[i]) {
			return false
		}
	}
	return true
}

// IsQuoted reports whether s is a complete quoted-string.
func IsQuoted[T ~string | ~[]byte](s T) bool {
	if len(s) < 2 {
		return false
	}
	sc := NewScanner(string(s))
	_, ok := sc.ReadQuotedString()
	return ok && !sc.HasNext()
}

// Quote always renders s as a quoted-string, escaping DQUOTE and backslash.
func Quote(s string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := range len(s) {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// QuoteIfNeeded returns s unchanged if it is a token, otherwise a quoted-string.
func QuoteIfNeeded(s string) string {
	if IsToken(s) {
		return s
	}
	return Quote(s)
}

// Unquote strips the surrounding DQUOTEs and resolves quoted-pairs.
// Input that is not a complete quoted-string is returned unchanged.
func Unquote(s string) string {
	if !strings.HasPrefix(s, `"`) {
		return s
	}
	sc := NewScanner(s)
	if v, ok := sc.ReadQuotedString(); ok && !sc.HasNext() {
		return v
	}
	return s
}
