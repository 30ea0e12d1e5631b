package grammar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

func TestParseHTTPDate(t *testing.T) {
	t.Parallel()

	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	cases := []struct {
		name string
		in   string
	}{
		{"IMF-fixdate", "Sun, 06 Nov 1994 08:49:37 GMT"},
		{"RFC 850", "Sunday, 06-Nov-94 08:49:37 GMT"},
		{"asctime", "Sun Nov  6 08:49:37 1994"},
		{"cookie date", "Sun, 06-Nov-1994 08:49:37 GMT"},
		{"surrounding whitespace", " Sun, 06 Nov 1994 08:49:37 GMT\t"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := grammar.ParseHTTPDate(c.in)
			if err != nil {
				t.Fatalf("grammar.ParseHTTPDate(%q) error = %v, want nil", c.in, err)
			}
			if !got.Equal(want) {
				t.Errorf("grammar.ParseHTTPDate(%q) = %v, want %v", c.in, got, want)
			}
		})
	}
}

func TestParseHTTPDate_Error(t *testing.T) {
	t.Parallel()

	if _, err := grammar.ParseHTTPDate(""); !errors.Is(err, grammar.ErrEmptyInput) {
		t.Errorf("grammar.ParseHTTPDate(\"\") error = %v, want %v", err, grammar.ErrEmptyInput)
	}
	if _, err := grammar.ParseHTTPDate("yesterday"); !errors.Is(err, grammar.ErrMalformedInput) {
		t.Errorf("grammar.ParseHTTPDate(\"yesterday\") error = %v, want %v", err, grammar.ErrMalformedInput)
	}
}

func TestFormatHTTPDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("X", 3*60*60)
	tm := time.Date(1994, time.November, 6, 11, 49, 37, 0, loc)
	if got, want := grammar.FormatHTTPDate(tm), "Sun, 06 Nov 1994 08:49:37 GMT"; got != want {
		t.Errorf("grammar.FormatHTTPDate(tm) = %q, want %q", got, want)
	}
}
