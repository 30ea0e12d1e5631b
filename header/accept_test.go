package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func weight(t *testing.T, q float64) header.Weight {
	t.Helper()

	w, err := header.NewWeight(q)
	if err != nil {
		t.Fatalf("header.NewWeight(%v) error = %v", q, err)
	}
	return w
}

func TestParseAccept(t *testing.T) {
	t.Parallel()

	got, err := header.ParseAccept(`text/html, application/xhtml+xml;level=1, application/xml;q=0.9, image/*;Q=0.8, */*;q=0`)
	if err != nil {
		t.Fatalf("header.ParseAccept() error = %v, want nil", err)
	}
	want := header.Accept{
		{Media: header.MustMediaType("text", "html")},
		{Media: header.MustMediaType("application", "xhtml+xml", "level", "1")},
		{Media: header.MustMediaType("application", "xml"), Weight: weight(t, 0.9)},
		{Media: header.MustMediaType("image", "*"), Weight: weight(t, 0.8)},
		{Media: header.MustMediaType("*", "*"), Weight: weight(t, 0)},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("header.ParseAccept() mismatch: diff (-got +want):\n%v", diff)
	}
	if got[0].HasQ() || got[0].Q() != 1 {
		t.Errorf("got[0] weight = (%v, %v), want implicit 1", got[0].HasQ(), got[0].Q())
	}

	empty, err := header.ParseAccept("")
	if err != nil || len(empty) != 0 {
		t.Errorf("header.ParseAccept(\"\") = (%q, %v), want empty", empty, err)
	}

	for _, in := range []string{"text", "text/html;q=2", "text/html;q", "text/html text/plain"} {
		if _, err := header.ParseAccept(in); !errors.Is(err, header.ErrInvalidHeader) {
			t.Errorf("header.ParseAccept(%q) error = %v, want %v", in, err, header.ErrInvalidHeader)
		}
	}
}

func TestNewMediaRange(t *testing.T) {
	t.Parallel()

	rng, err := header.NewMediaRange("text", "html", "level", "1")
	if err != nil {
		t.Fatalf("header.NewMediaRange() error = %v, want nil", err)
	}
	if err := rng.SetQ(0.5); err != nil {
		t.Fatalf("rng.SetQ(0.5) error = %v, want nil", err)
	}
	if got, want := rng.String(), "text/html; level=1; q=0.5"; got != want {
		t.Errorf("rng.String() = %q, want %q", got, want)
	}

	for _, name := range []string{"q", "Q"} {
		if _, err := header.NewMediaRange("text", "html", name, "0.5"); !errors.Is(err, header.ErrInvalidArgument) {
			t.Errorf("header.NewMediaRange(%q param) error = %v, want %v", name, err, header.ErrInvalidArgument)
		}
	}

	mt, err := header.MustMediaType("text", "html").WithParam("q", "0.5")
	if err != nil {
		t.Fatalf("mt.WithParam(\"q\") error = %v, want nil", err)
	}
	if (header.MediaRange{Media: mt}).IsValid() {
		t.Errorf("media range with a q parameter IsValid() = true, want false")
	}
	if (header.Accept{{Media: mt}}).IsValid() {
		t.Errorf("Accept with a q parameter IsValid() = true, want false")
	}
}

func TestParseAcceptEncoding(t *testing.T) {
	t.Parallel()

	got, err := header.ParseAcceptEncoding("GZIP;q=1.0, deflate;q=0.5, *;q=0")
	if err != nil {
		t.Fatalf("header.ParseAcceptEncoding() error = %v, want nil", err)
	}
	want := header.AcceptEncoding{
		{Coding: "gzip", Weight: weight(t, 1)},
		{Coding: "deflate", Weight: weight(t, 0.5)},
		{Coding: "*", Weight: weight(t, 0)},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("header.ParseAcceptEncoding() mismatch: diff (-got +want):\n%v", diff)
	}
	if got, want := got.RenderValue(), "gzip; q=1, deflate; q=0.5, *; q=0"; got != want {
		t.Errorf("RenderValue() = %q, want %q", got, want)
	}

	for _, in := range []string{"gzip;level=9", "gzip;q=-1", "gz ip"} {
		if _, err := header.ParseAcceptEncoding(in); !errors.Is(err, header.ErrInvalidHeader) {
			t.Errorf("header.ParseAcceptEncoding(%q) error = %v, want %v", in, err, header.ErrInvalidHeader)
		}
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	got, err := header.ParseAcceptLanguage("da, en-GB;q=0.8, en;q=0.7, *;q=0.1, zh-Hant-TW")
	if err != nil {
		t.Fatalf("header.ParseAcceptLanguage() error = %v, want nil", err)
	}
	want := header.AcceptLanguage{
		{Tag: "da"},
		{Tag: "en-GB", Weight: weight(t, 0.8)},
		{Tag: "en", Weight: weight(t, 0.7)},
		{Tag: "*", Weight: weight(t, 0.1)},
		{Tag: "zh-Hant-TW"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("header.ParseAcceptLanguage() mismatch: diff (-got +want):\n%v", diff)
	}

	for _, in := range []string{"englishlang", "en-", "1en", "en_US", "en;x=1"} {
		if _, err := header.ParseAcceptLanguage(in); !errors.Is(err, header.ErrInvalidHeader) {
			t.Errorf("header.ParseAcceptLanguage(%q) error = %v, want %v", in, err, header.ErrInvalidHeader)
		}
	}
}

func TestLanguageRange_Compare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rng, cand string
		want      int
		wantOk    bool
	}{
		{"*", "fr", 1, true},
		{"en", "en", 2, true},
		{"en", "EN-us", 2, true},
		{"en-US", "en-us", 3, true},
		{"en-US", "en", 0, false},
		{"en", "english", 0, false},
	}
	for _, c := range cases {
		got, ok := header.LanguageRange{Tag: c.rng}.Compare(c.cand)
		if got != c.want || ok != c.wantOk {
			t.Errorf("LanguageRange{%q}.Compare(%q) = (%d, %v), want (%d, %v)", c.rng, c.cand, got, ok, c.want, c.wantOk)
		}
	}
}
