package grammar

import (
	"net/http"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/errorutil"
	"github.com/ghettovoice/httphdr/internal/util"
)

// HTTP-date layouts accepted on input, preferred first.
var dateLayouts = []string{
	http.TimeFormat,
	time.RFC850,
	time.ANSIC,
	// cookie-date variants still produced by some servers
	"Mon, 02-Jan-2006 15:04:05 GMT",
	"Mon, 02 Jan 06 15:04:05 GMT",
	"Mon, 02-Jan-06 15:04:05 GMT",
	time.RFC1123Z,
}

// ParseHTTPDate parses an HTTP-date (RFC 9110 Section 5.6.7) or
// a cookie-date as found in Set-Cookie Expires attributes.
// The result is always in UTC.
func ParseHTTPDate(s string) (time.Time, error) {
	s = util.TrimOWS(s)
	if s == "" {
		return time.Time{}, errtrace.Wrap(ErrEmptyInput)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedInput, "unknown date format %q", s))
}

// FormatHTTPDate renders t as an IMF-fixdate.
func FormatHTTPDate(t time.Time) string { return t.UTC().Format(http.TimeFormat) }
