package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseContentType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    *header.ContentType
		wantErr error
	}{
		{
			"with charset",
			"Text/HTML; Charset=UTF-8",
			mustContentType(t, "text", "html", "charset", "UTF-8"),
			nil,
		},
		{
			"quoted param",
			`multipart/form-data; boundary="a b"`,
			mustContentType(t, "multipart", "form-data", "boundary", "a b"),
			nil,
		},
		{"wildcard subtype", "text/*", nil, header.ErrInvalidHeader},
		{"wildcard type", "*/*", nil, header.ErrInvalidHeader},
		{"two types", "text/plain, text/html", nil, header.ErrInvalidHeader},
		{"no subtype", "text", nil, header.ErrInvalidHeader},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseContentType(c.in)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("header.ParseContentType(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseContentType(%q) = %q, want %q\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestContentType_Params(t *testing.T) {
	t.Parallel()

	hdr := mustContentType(t, "application", "json")
	if _, ok := hdr.Charset(); ok {
		t.Errorf("hdr.Charset() ok = true, want false")
	}

	hdr2, err := hdr.WithParam("charset", "utf-8")
	if err != nil {
		t.Fatalf("hdr.WithParam() error = %v, want nil", err)
	}
	if cs, ok := hdr2.Charset(); !ok || cs != "utf-8" {
		t.Errorf("hdr2.Charset() = (%q, %v), want (\"utf-8\", true)", cs, ok)
	}
	if got, want := hdr2.Render(nil), "Content-Type: application/json; charset=utf-8"; got != want {
		t.Errorf("hdr2.Render(nil) = %q, want %q", got, want)
	}
	if got, want := hdr.RenderValue(), "application/json"; got != want {
		t.Errorf("hdr.WithParam() modified the receiver: %q, want %q", got, want)
	}

	if _, err := hdr.WithParam("bad name", "x"); !errors.Is(err, header.ErrInvalidArgument) {
		t.Errorf("hdr.WithParam(\"bad name\") error = %v, want %v", err, header.ErrInvalidArgument)
	}

	if got := hdr2.WithoutParam("CHARSET"); !got.Equal(hdr) {
		t.Errorf("hdr2.WithoutParam() = %q, want %q", got, hdr)
	}

	// charset values compare case-insensitively, other parameter values do not
	if !hdr2.Equal(mustContentType(t, "application", "json", "charset", "UTF-8")) {
		t.Errorf("charset comparison is case-sensitive")
	}
	if mustContentType(t, "text", "plain", "format", "flowed").Equal(mustContentType(t, "text", "plain", "format", "Flowed")) {
		t.Errorf("format comparison is case-insensitive")
	}

	mt := hdr2.MediaType()
	if mt.Essence() != "application/json" || hdr2.Type() != "application" || hdr2.Subtype() != "json" {
		t.Errorf("hdr2 accessors = %q %q %q", mt.Essence(), hdr2.Type(), hdr2.Subtype())
	}
}

func TestContentTypeOf(t *testing.T) {
	t.Parallel()

	if _, err := header.ContentTypeOf(header.MustMediaType("image", "*")); !errors.Is(err, header.ErrInvalidArgument) {
		t.Errorf("header.ContentTypeOf(image/*) error = %v, want %v", err, header.ErrInvalidArgument)
	}
	if _, err := header.ContentTypeOf(header.MediaType{}); !errors.Is(err, header.ErrInvalidArgument) {
		t.Errorf("header.ContentTypeOf(zero) error = %v, want %v", err, header.ErrInvalidArgument)
	}

	hdr, err := header.ContentTypeOf(header.MustMediaType("image", "png"))
	if err != nil {
		t.Fatalf("header.ContentTypeOf() error = %v, want nil", err)
	}
	if !hdr.IsValid() || hdr.Essence() != "image/png" {
		t.Errorf("header.ContentTypeOf() = %q, want valid image/png", hdr)
	}

	var nilHdr *header.ContentType
	if nilHdr.Essence() != "" || nilHdr.IsValid() || nilHdr.Clone() != nil {
		t.Errorf("nil Content-Type is not empty")
	}
}

func mustContentType(t *testing.T, typ, sub string, params ...string) *header.ContentType {
	t.Helper()

	hdr, err := header.NewContentType(typ, sub, params...)
	if err != nil {
		t.Fatalf("header.NewContentType() error = %v", err)
	}
	return hdr
}
