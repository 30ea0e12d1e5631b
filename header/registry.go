package header

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// Kind identifies a header type supported by the package.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAccept
	KindAcceptEncoding
	KindAcceptLanguage
	KindAllow
	KindCacheControl
	KindRequestCacheControl
	KindContentEncoding
	KindContentLanguage
	KindContentLength
	KindContentType
	KindCookie
	KindDate
	KindETag
	KindForwarded
	KindIfMatch
	KindIfNoneMatch
	KindLink
	KindSetCookie
	KindUpgrade
	KindVary
)

type kindInfo struct {
	name Name
	// sep joins repeated field lines into one value, empty when lines can not be combined.
	sep      string
	tryParse func(string) (Header, bool)
}

func tryParser[H Header](fn func(string) (H, bool)) func(string) (Header, bool) {
	return func(s string) (Header, bool) {
		h, ok := fn(s)
		if !ok {
			return nil, false
		}
		return h, true
	}
}

var kinds = [...]kindInfo{
	KindAccept:              {"Accept", ", ", tryParser(TryParseAccept)},
	KindAcceptEncoding:      {"Accept-Encoding", ", ", tryParser(TryParseAcceptEncoding)},
	KindAcceptLanguage:      {"Accept-Language", ", ", tryParser(TryParseAcceptLanguage)},
	KindAllow:               {"Allow", ", ", tryParser(TryParseAllow)},
	KindCacheControl:        {"Cache-Control", ", ", tryParser(TryParseCacheControl)},
	KindRequestCacheControl: {"Cache-Control", ", ", tryParser(TryParseRequestCacheControl)},
	KindContentEncoding:     {"Content-Encoding", ", ", tryParser(TryParseContentEncoding)},
	KindContentLanguage:     {"Content-Language", ", ", tryParser(TryParseContentLanguage)},
	KindContentLength:       {"Content-Length", ", ", tryParser(TryParseContentLength)},
	KindContentType:         {"Content-Type", "", tryParser(TryParseContentType)},
	KindCookie:              {"Cookie", "; ", tryParser(TryParseCookie)},
	KindDate:                {"Date", "", tryParser(TryParseDate)},
	KindETag:                {"ETag", "", tryParser(TryParseETag)},
	KindForwarded:           {"Forwarded", ", ", tryParser(TryParseForwarded)},
	KindIfMatch:             {"If-Match", ", ", tryParser(TryParseIfMatch)},
	KindIfNoneMatch:         {"If-None-Match", ", ", tryParser(TryParseIfNoneMatch)},
	KindLink:                {"Link", ", ", tryParser(TryParseLink)},
	KindSetCookie:           {"Set-Cookie", "", tryParser(TryParseSetCookie)},
	KindUpgrade:             {"Upgrade", ", ", tryParser(TryParseUpgrade)},
	KindVary:                {"Vary", ", ", tryParser(TryParseVary)},
}

// kindsByName maps lower-case header names to kinds.
// "cache-control" resolves to the response form.
var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k := KindAccept; int(k) < len(kinds); k++ {
		if k == KindRequestCacheControl {
			continue
		}
		m[string(kinds[k].name.Lower())] = k
	}
	return m
}()

func (k Kind) info() (kindInfo, bool) {
	if k == KindUnknown || int(k) >= len(kinds) {
		return kindInfo{}, false
	}
	return kinds[k], true
}

// IsValid reports whether the kind is a known header kind.
func (k Kind) IsValid() bool {
	_, ok := k.info()
	return ok
}

// Name returns the canonical header name, or an empty name for unknown kinds.
func (k Kind) Name() Name {
	ki, _ := k.info()
	return ki.name
}

// IsList reports whether repeated field lines of the header can be combined into one value.
func (k Kind) IsList() bool {
	ki, _ := k.info()
	return ki.sep != ""
}

func (k Kind) String() string {
	switch k {
	case KindRequestCacheControl:
		return "Cache-Control (request)"
	default:
		if ki, ok := k.info(); ok {
			return string(ki.name)
		}
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Parse parses the header value, returning a [ParseError] on malformed input.
func (k Kind) Parse(s string) (Header, error) {
	ki, ok := k.info()
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedHeader, "kind %d", uint8(k)))
	}
	return errtrace.Wrap2(parseHdr(ki.name, s, ki.tryParse))
}

// TryParse parses the header value, reporting failure with false.
func (k Kind) TryParse(s string) (Header, bool) {
	ki, ok := k.info()
	if !ok {
		return nil, false
	}
	return ki.tryParse(s)
}

// Lookup returns the kind registered for the header name, the name is case-insensitive.
// "Cache-Control" resolves to [KindCacheControl].
func Lookup[T ~string](name T) (Kind, bool) {
	k, ok := kindsByName[util.LCase(util.TrimOWS(string(name)))]
	return k, ok
}

// KindOf returns the kind of the header, or [KindUnknown] for unsupported headers.
func KindOf(hdr Header) Kind {
	switch hdr.(type) {
	case Accept:
		return KindAccept
	case AcceptEncoding:
		return KindAcceptEncoding
	case AcceptLanguage:
		return KindAcceptLanguage
	case Allow:
		return KindAllow
	case *CacheControl:
		return KindCacheControl
	case *RequestCacheControl:
		return KindRequestCacheControl
	case ContentEncoding:
		return KindContentEncoding
	case ContentLanguage:
		return KindContentLanguage
	case ContentLength:
		return KindContentLength
	case *ContentType:
		return KindContentType
	case Cookie:
		return KindCookie
	case *Date:
		return KindDate
	case *ETag:
		return KindETag
	case Forwarded:
		return KindForwarded
	case *IfMatch:
		return KindIfMatch
	case *IfNoneMatch:
		return KindIfNoneMatch
	case Link:
		return KindLink
	case *SetCookie:
		return KindSetCookie
	case Upgrade:
		return KindUpgrade
	case Vary:
		return KindVary
	default:
		return KindUnknown
	}
}

// IsHeader reports whether v is a header value, i.e. it exposes the canonical header name.
func IsHeader(v any) bool {
	_, ok := v.(interface{ CanonicName() Name })
	return ok
}
