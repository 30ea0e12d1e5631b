package grammar

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/abnf"
)

// RFC 3986 Appendix A rules used by [IsURIReference].

func lit(s string) abnf.Operator { return abnf.Literal(strconv.Quote(s), []byte(s)) }

func rng(lo, hi byte) abnf.Operator {
	return abnf.Range(fmt.Sprintf("%%x%02X-%02X", lo, hi), []byte{lo}, []byte{hi})
}

func oneOf(key, set string) abnf.Operator {
	ops := make([]abnf.Operator, len(set))
	for i := range len(set) {
		ops[i] = lit(set[i : i+1])
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

var (
	uriAlpha  = abnf.AltFirst("ALPHA", rng('A', 'Z'), rng('a', 'z'))
	uriDigit  = rng('0', '9')
	uriHexdig = abnf.AltFirst("HEXDIG", uriDigit, rng('A', 'F'), rng('a', 'f'))

	uriUnreserved = abnf.AltFirst("unreserved", uriAlpha, uriDigit, oneOf("unreserved-mark", "-._~"))
	uriSubDelims  = oneOf("sub-delims", "!$&'()*+,;=")
	uriPctEncoded = abnf.Concat("pct-encoded", lit("%"), uriHexdig, uriHexdig)
	uriPchar      = abnf.AltFirst("pchar", uriUnreserved, uriPctEncoded, uriSubDelims, oneOf("pchar-mark", ":@"))

	uriScheme = abnf.Concat("scheme",
		uriAlpha,
		abnf.Repeat0Inf("scheme-tail", abnf.AltFirst("scheme-char", uriAlpha, uriDigit, oneOf("scheme-mark", "+-."))),
	)

	uriUserinfo = abnf.Repeat0Inf("userinfo",
		abnf.AltFirst("userinfo-char", uriUnreserved, uriPctEncoded, uriSubDelims, lit(":")),
	)

	uriDecOctet = abnf.Alt("dec-octet",
		abnf.Concat("dec-octet-250", lit("25"), rng('0', '5')),
		abnf.Concat("dec-octet-200", lit("2"), rng('0', '4'), uriDigit),
		abnf.Concat("dec-octet-100", lit("1"), uriDigit, uriDigit),
		abnf.Concat("dec-octet-10", rng('1', '9'), uriDigit),
		uriDigit,
	)
	uriIPv4Address = abnf.Concat("IPv4address",
		uriDecOctet, lit("."), uriDecOctet, lit("."), uriDecOctet, lit("."), uriDecOctet,
	)

	uriH16      = abnf.Repeat("h16", 1, 4, uriHexdig)
	uriH16Colon = abnf.Concat("h16-colon", uriH16, lit(":"))
	uriLs32     = abnf.Alt("ls32", abnf.Concat("ls32-h16", uriH16, lit(":"), uriH16), uriIPv4Address)

	uriIPv6Address = abnf.Alt("IPv6address",
		abnf.Concat("IPv6-full", abnf.Repeat("h16-colons", 6, 6, uriH16Colon), uriLs32),
		abnf.Concat("IPv6-lead", lit("::"), abnf.Repeat("h16-colons", 5, 5, uriH16Colon), uriLs32),
		abnf.Concat("IPv6-4", ipv6Head(0), lit("::"), abnf.Repeat("h16-colons", 4, 4, uriH16Colon), uriLs32),
		abnf.Concat("IPv6-3", ipv6Head(1), lit("::"), abnf.Repeat("h16-colons", 3, 3, uriH16Colon), uriLs32),
		abnf.Concat("IPv6-2", ipv6Head(2), lit("::"), abnf.Repeat("h16-colons", 2, 2, uriH16Colon), uriLs32),
		abnf.Concat("IPv6-1", ipv6Head(3), lit("::"), uriH16Colon, uriLs32),
		abnf.Concat("IPv6-ls32", ipv6Head(4), lit("::"), uriLs32),
		abnf.Concat("IPv6-h16", ipv6Head(5), lit("::"), uriH16),
		abnf.Concat("IPv6-tail", ipv6Head(6), lit("::")),
	)

	uriIPvFuture = abnf.Concat("IPvFuture",
		lit("v"),
		abnf.Repeat1Inf("IPvFuture-version", uriHexdig),
		lit("."),
		abnf.Repeat1Inf("IPvFuture-addr", abnf.AltFirst("IPvFuture-char", uriUnreserved, uriSubDelims, lit(":"))),
	)
	uriIPLiteral = abnf.Concat("IP-literal", lit("["), abnf.Alt("IP-addr", uriIPv6Address, uriIPvFuture), lit("]"))

	uriRegName = abnf.Repeat0Inf("reg-name", abnf.AltFirst("reg-name-char", uriUnreserved, uriPctEncoded, uriSubDelims))
	uriHost    = abnf.Alt("host", uriIPLiteral, uriIPv4Address, uriRegName)
	uriPort    = abnf.Repeat0Inf("port", uriDigit)

	uriAuthority = abnf.Concat("authority",
		abnf.Optional("userinfo-at", abnf.Concat("userinfo-at", uriUserinfo, lit("@"))),
		uriHost,
		abnf.Optional("port-part", abnf.Concat("port-part", lit(":"), uriPort)),
	)

	uriSegment        = abnf.Repeat0Inf("segment", uriPchar)
	uriSegmentNz      = abnf.Repeat1Inf("segment-nz", uriPchar)
	uriSegmentNzNc    = abnf.Repeat1Inf("segment-nz-nc", abnf.AltFirst("segment-nz-nc-char", uriUnreserved, uriPctEncoded, uriSubDelims, lit("@")))
	uriSlashSegments  = abnf.Repeat0Inf("slash-segments", abnf.Concat("slash-segment", lit("/"), uriSegment))
	uriPathAbempty    = uriSlashSegments
	uriPathAbsolute   = abnf.Concat("path-absolute", lit("/"), abnf.Optional("path-absolute-tail", abnf.Concat("path-absolute-tail", uriSegmentNz, uriSlashSegments)))
	uriPathNoscheme   = abnf.Concat("path-noscheme", uriSegmentNzNc, uriSlashSegments)
	uriPathRootless   = abnf.Concat("path-rootless", uriSegmentNz, uriSlashSegments)
	uriNetPath        = abnf.Concat("net-path", lit("//"), uriAuthority, uriPathAbempty)
	uriQueryFragChars = abnf.Repeat0Inf("query-chars", abnf.AltFirst("query-char", uriPchar, oneOf("query-mark", "/?")))
	uriQueryFragment  = abnf.Concat("query-fragment",
		abnf.Optional("query-part", abnf.Concat("query-part", lit("?"), uriQueryFragChars)),
		abnf.Optional("fragment-part", abnf.Concat("fragment-part", lit("#"), uriQueryFragChars)),
	)

	// path-empty is the omitted alternative of hier-part and relative-part.
	uriAbsolute = abnf.Concat("URI",
		uriScheme,
		lit(":"),
		abnf.Optional("hier-part", abnf.Alt("hier-part", uriNetPath, uriPathAbsolute, uriPathRootless)),
		uriQueryFragment,
	)
	uriRelativeRef = abnf.Concat("relative-ref",
		abnf.Optional("relative-part", abnf.Alt("relative-part", uriNetPath, uriPathAbsolute, uriPathNoscheme)),
		uriQueryFragment,
	)

	uriReference = abnf.Alt("URI-reference", uriAbsolute, uriRelativeRef)
)

// ipv6Head matches [ *n( h16 ":" ) h16 ], the part of IPv6address before "::".
func ipv6Head(n uint) abnf.Operator {
	return abnf.Optional("IPv6-head", abnf.Concat("IPv6-head",
		abnf.Repeat("h16-colons", 0, n, uriH16Colon),
		uriH16,
	))
}

func matchesAll(op abnf.Operator, s string) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
