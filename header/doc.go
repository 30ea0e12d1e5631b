// Package header provides typed HTTP header field values defined by RFC 9110, RFC 9111,
// RFC 6265, RFC 7239, RFC 8288 and related extensions.
//
// This package offers parsing, validation, comparison, rendering, and cloning of
// header values and their parameters, plus a generic content negotiation algorithm.
// It does not deal with transport: callers hand single field values to the parsers
// and take rendered values back.
//
// # Overview
//
// Concrete types are provided for Accept, Accept-Encoding, Accept-Language,
// Cache-Control (response and request forms), Content-Type, Cookie, Set-Cookie,
// ETag, If-Match, If-None-Match, Forwarded, Link, Upgrade and Vary.
// Other headers are kept as raw values in [Any].
//
// All header types implement the [Header] interface, which combines [types.Renderer],
// [types.Cloneable[Header]], [types.ValidFlag], and [types.Equalable].
//
// # Parsing
//
// Every header type X has a pair of parsers:
//
//	ct, err := header.ParseContentType("text/html; charset=utf-8")
//	ct, ok := header.TryParseContentType("text/html; charset=utf-8")
//
// ParseX wraps TryParseX and reports malformed input with a [*ParseError]
// carrying the canonical header name and the raw value. It is the only error
// a malformed value produces, and it always wraps [ErrInvalidHeader].
//
// [Parse] parses a whole "Name: value" line and dispatches on the name:
//
//	hdr, err := header.Parse("Vary: Accept-Encoding, Origin")
//
// # Registry
//
// Supported header types are enumerated by [Kind]. A static table maps each kind
// to its canonical name and parser, see [Lookup] and [KindOf].
// [Get], [TryGet] and [GetAll] read typed headers from any [Source],
// e.g. [net/http.Header]; [Put] and [Append] write them to a [Sink].
//
//	accept, ok := header.TryGet[header.Accept](req.Header, nil)
//	if ok {
//		types := accept.Negotiate([]string{"application/json", "text/html"}, nil)
//	}
//
// # Negotiation
//
// [Negotiate] ranks candidates against accepted alternatives by specificity,
// then by quality and then by the candidate position. Candidates rejected with q=0
// are dropped. [Accept.Negotiate], [AcceptEncoding.Negotiate] and
// [AcceptLanguage.Negotiate] are typed shortcuts.
//
// # Header Naming and Canonicalization
//
// Header names are canonicalized using [textproto.CanonicalMIMEHeaderKey] combined
// with an internal mapping for conventional spellings such as "ETag" and "WWW-Authenticate".
// [RenderOptions.LowerName] renders lower-case names as used by HTTP/2 and HTTP/3.
//
// # Mutation
//
// Constructors and setters validate their input and return [ErrInvalidArgument]
// leaving the value unchanged. Headers with immutable invariants,
// e.g. [ContentType], expose With* methods returning a new value instead.
//
// # JSON
//
// Headers are encoded to JSON as {"name": ..., "value": ...} objects, see [ToJSON] and [FromJSON].
package header
