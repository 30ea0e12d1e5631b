package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseContentEncoding(t *testing.T) {
	t.Parallel()

	got, err := header.ParseContentEncoding("GZip, br")
	if err != nil {
		t.Fatalf("header.ParseContentEncoding() error = %v, want nil", err)
	}
	if diff := cmp.Diff(got, header.ContentEncoding{"gzip", "br"}); diff != "" {
		t.Errorf("header.ParseContentEncoding() mismatch: diff (-got +want):\n%v", diff)
	}
	if !got.Equal(header.ContentEncoding{"GZIP", "BR"}) || got.Equal(header.ContentEncoding{"br", "gzip"}) {
		t.Errorf("codings must compare case-insensitively in order")
	}

	for _, in := range []string{"", "gzip;q=1", "x y"} {
		if _, err := header.ParseContentEncoding(in); !errors.Is(err, header.ErrInvalidHeader) {
			t.Errorf("header.ParseContentEncoding(%q) error = %v, want %v", in, err, header.ErrInvalidHeader)
		}
	}
}

func TestParseContentLanguage(t *testing.T) {
	t.Parallel()

	got, err := header.ParseContentLanguage("mi, en-NZ")
	if err != nil {
		t.Fatalf("header.ParseContentLanguage() error = %v, want nil", err)
	}
	if diff := cmp.Diff(got, header.ContentLanguage{"mi", "en-nz"}); diff != "" {
		t.Errorf("header.ParseContentLanguage() mismatch: diff (-got +want):\n%v", diff)
	}

	for _, in := range []string{"", "*", "en-", "toolonglang"} {
		if _, err := header.ParseContentLanguage(in); !errors.Is(err, header.ErrInvalidHeader) {
			t.Errorf("header.ParseContentLanguage(%q) error = %v, want %v", in, err, header.ErrInvalidHeader)
		}
	}
}

func TestParseContentLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		want   header.ContentLength
		wantOk bool
	}{
		{"0", 0, true},
		{"3495", 3495, true},
		{" 42 ", 42, true},
		{"42, 42", 42, true},
		{"18446744073709551615", 18446744073709551615, true},
		{"42, 43", 0, false},
		{"18446744073709551616", 0, false},
		{"-1", 0, false},
		{"1e3", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := header.TryParseContentLength(c.in)
		if got != c.want || ok != c.wantOk {
			t.Errorf("header.TryParseContentLength(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
}
