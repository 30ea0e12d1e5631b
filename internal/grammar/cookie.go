package grammar

// IsCookieOctet reports whether c is an RFC 6265 cookie-octet.
func IsCookieOctet(c byte) bool {
	return c == 0x21 ||
		(c >= 0x23 && c <= 0x2B) ||
		(c >= 0x2D && c <= 0x3A) ||
		(c >= 0x3C && c <= 0x5B) ||
		(c >= 0x5D && c <= 0x7E)
}

// IsCookieName reports whether s is a valid cookie-name (a token).
func IsCookieName(s string) bool { return IsToken(s) }

// IsCookieValue reports whether s is a valid unquoted cookie-value (*cookie-octet).
// The DQUOTE-wrapped form exists only on the wire, see [TrimCookieQuotes].
func IsCookieValue(s string) bool {
	for i := range len(s) {
		if !IsCookieOctet(s[i]) {
			return false
		}
	}
	return true
}

// IsAttrValue reports whether s can be used as a Set-Cookie attribute value:
// any CHAR except CTLs or ";".
func IsAttrValue(s string) bool {
	for i := range len(s) {
		if c := s[i]; c < 0x20 || c == 0x7F || c == ';' || c >= 0x80 {
			return false
		}
	}
	return true
}

// TrimCookieQuotes removes one pair of surrounding DQUOTEs, if present.
func TrimCookieQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
