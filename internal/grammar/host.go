package grammar

import (
	"net/netip"
	"strings"

	"github.com/miekg/dns"
)

func isHostnameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_'
}

// IsDomainName reports whether s is a syntactically valid DNS name,
// as used by the Set-Cookie Domain attribute.
func IsDomainName(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") {
		return false
	}
	for i := range len(s) {
		if !isHostnameChar(s[i]) {
			return false
		}
	}
	_, ok := dns.IsDomainName(s)
	return ok
}

// IsHost reports whether s is a domain name, an IPv4 address or a bracketed IPv6 address.
func IsHost(s string) bool {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		addr, err := netip.ParseAddr(s[1 : len(s)-1])
		return err == nil && addr.Is6()
	}
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.Is4()
	}
	return IsDomainName(s)
}

// IsHostPort reports whether s is a host with an optional port: host [ ":" port ].
func IsHostPort(s string) bool {
	host := s
	if i := strings.LastIndexByte(s, ':'); i >= 0 && i > strings.LastIndexByte(s, ']') {
		host = s[:i]
		port := s[i+1:]
		if port == "" || len(port) > 5 {
			return false
		}
		for j := range len(port) {
			if !isDigit(port[j]) {
				return false
			}
		}
	}
	return IsHost(host)
}
