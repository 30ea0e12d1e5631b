package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func extFields(t *testing.T, kvs ...string) header.ExtFields {
	t.Helper()

	var fs header.ExtFields
	for i := 0; i < len(kvs); i += 2 {
		var err error
		if kvs[i+1] == "" {
			err = fs.SetFlag(kvs[i])
		} else {
			err = fs.Set(kvs[i], kvs[i+1])
		}
		if err != nil {
			t.Fatalf("build ext fields: %v", err)
		}
	}
	return fs
}

func TestParseCacheControl(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want func(t *testing.T) *header.CacheControl
	}{
		{
			"typical",
			"public, max-age=3600, must-revalidate",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{Public: true, MaxAge: header.Seconds(3600), MustRevalidate: true}
			},
		},
		{
			"case-insensitive names",
			"No-Store, S-MAXAGE=10",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{NoStore: true, SMaxAge: header.Seconds(10)}
			},
		},
		{
			"quoted delta",
			`max-age="60"`,
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{MaxAge: header.Seconds(60)}
			},
		},
		{
			"field lists",
			`no-cache="set-cookie, x-foo", private`,
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{NoCache: true, NoCacheFields: []string{"Set-Cookie", "X-Foo"}, Private: true}
			},
		},
		{
			"rfc 5861 and 8246",
			"stale-while-revalidate=30, stale-if-error=600, immutable",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{
					StaleWhileRevalidate: header.Seconds(30),
					StaleIfError:         header.Seconds(600),
					Immutable:            true,
				}
			},
		},
		{
			"delta overflow is capped",
			"max-age=99999999999999999999",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{MaxAge: header.Seconds(1 << 31)}
			},
		},
		{
			"largest delta kept",
			"s-maxage=2147483647",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{SMaxAge: header.Seconds(2147483647)}
			},
		},
		{
			"delta just above the cap",
			"s-maxage=21474836470",
			func(*testing.T) *header.CacheControl {
				return &header.CacheControl{SMaxAge: header.Seconds(1 << 31)}
			},
		},
		{
			"malformed known directives kept as extensions",
			"max-age=soon, public=yes, no-transform",
			func(t *testing.T) *header.CacheControl {
				return &header.CacheControl{
					NoTransform: true,
					Ext:         extFields(t, "max-age", "soon", "public", "yes"),
				}
			},
		},
		{
			"unknown directives",
			`community="UCI", no-magic, must-understand, no-store`,
			func(t *testing.T) *header.CacheControl {
				return &header.CacheControl{
					MustUnderstand: true,
					NoStore:        true,
					Ext:            extFields(t, "community", "UCI", "no-magic", ""),
				}
			},
		},
		{
			"empty elements",
			" , public,, ",
			func(*testing.T) *header.CacheControl { return &header.CacheControl{Public: true} },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseCacheControl(c.in)
			if err != nil {
				t.Fatalf("header.ParseCacheControl(%q) error = %v, want nil", c.in, err)
			}
			want := c.want(t)
			if diff := cmp.Diff(got, want); diff != "" {
				t.Errorf("header.ParseCacheControl(%q) = %q, want %q\ndiff (-got +want):\n%v", c.in, got, want, diff)
			}
		})
	}
}

func TestParseCacheControl_Error(t *testing.T) {
	t.Parallel()

	for _, in := range []string{";", "", " , ", "max-age=", `x="unterminated`, "a b"} {
		_, err := header.ParseCacheControl(in)
		var perr *header.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("header.ParseCacheControl(%q) error = %v, want *ParseError", in, err)
			continue
		}
		if perr.Name != "Cache-Control" || perr.Value != in {
			t.Errorf("header.ParseCacheControl(%q) error = %+v, want Name=Cache-Control Value=%q", in, perr, in)
		}
	}
}

func TestCacheControl_Render(t *testing.T) {
	t.Parallel()

	hdr := &header.CacheControl{
		Private:              true,
		PrivateFields:        []string{"Set-Cookie"},
		MaxAge:               header.Seconds(0),
		NoCache:              true,
		StaleWhileRevalidate: header.Seconds(5),
		Ext:                  extFields(t, "ext", "a b"),
	}
	want := `max-age=0, no-cache, private="Set-Cookie", stale-while-revalidate=5, ext="a b"`
	if got := hdr.RenderValue(); got != want {
		t.Errorf("hdr.RenderValue() = %q, want %q", got, want)
	}

	clone := hdr.Clone().(*header.CacheControl) //nolint:forcetypeassert
	*clone.MaxAge = 10
	clone.PrivateFields[0] = "X-Foo"
	if *hdr.MaxAge != 0 || hdr.PrivateFields[0] != "Set-Cookie" {
		t.Errorf("clone shares state with the original: %q", hdr)
	}

	if (&header.CacheControl{MaxAge: header.Seconds(-1)}).IsValid() {
		t.Errorf("negative max-age IsValid() = true, want false")
	}
	if (&header.CacheControl{}).IsValid() {
		t.Errorf("empty Cache-Control IsValid() = true, want false")
	}
}

func TestCacheControl_IsValid_Ext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ext  header.ExtFields
		want bool
	}{
		{"unknown directive", extFields(t, "community", "UCI"), true},
		{"malformed max-age", extFields(t, "max-age", "abc"), true},
		{"max-age without argument", extFields(t, "max-age", ""), true},
		{"public with argument", extFields(t, "public", "yes"), true},
		{"modelled flag", extFields(t, "no-store", ""), false},
		{"modelled delta", extFields(t, "max-age", "10"), false},
		{"modelled field list", extFields(t, "private", "x-foo"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			hdr := &header.CacheControl{Public: true, Ext: c.ext}
			if got := hdr.IsValid(); got != c.want {
				t.Errorf("Cache-Control %q IsValid() = %v, want %v", hdr, got, c.want)
			}
			if !c.want {
				return
			}
			got, err := header.ParseCacheControl(hdr.RenderValue())
			if err != nil {
				t.Fatalf("header.ParseCacheControl(%q) error = %v, want nil", hdr.RenderValue(), err)
			}
			if !got.Equal(hdr) {
				t.Errorf("header.ParseCacheControl(%q) = %+v, want %+v", hdr.RenderValue(), got, hdr)
			}
		})
	}

	rcc := &header.RequestCacheControl{NoCache: true, Ext: extFields(t, "only-if-cached", "")}
	if rcc.IsValid() {
		t.Errorf("request Cache-Control %q IsValid() = true, want false", rcc)
	}
	rcc.Ext = extFields(t, "max-stale", "")
	if rcc.IsValid() {
		t.Errorf("request Cache-Control %q IsValid() = true, want false", rcc)
	}
	rcc.Ext = extFields(t, "private", "")
	if !rcc.IsValid() {
		t.Errorf("request Cache-Control %q IsValid() = false, want true", rcc)
	}
}

func TestParseRequestCacheControl(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want *header.RequestCacheControl
	}{
		{
			"all directives",
			"max-age=0, max-stale=30, min-fresh=5, no-cache, no-store, no-transform, only-if-cached, stale-if-error=10",
			&header.RequestCacheControl{
				MaxAge:       header.Seconds(0),
				MaxStale:     header.Seconds(30),
				MinFresh:     header.Seconds(5),
				StaleIfError: header.Seconds(10),
				NoCache:      true,
				NoStore:      true,
				NoTransform:  true,
				OnlyIfCached: true,
			},
		},
		{"max-stale without value", "max-stale", &header.RequestCacheControl{MaxStaleAny: true}},
		{"last max-stale wins", "max-stale, max-stale=3", &header.RequestCacheControl{MaxStale: header.Seconds(3)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseRequestCacheControl(c.in)
			if err != nil {
				t.Fatalf("header.ParseRequestCacheControl(%q) error = %v, want nil", c.in, err)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("header.ParseRequestCacheControl(%q) = %q, want %q\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}

	got, err := header.ParseRequestCacheControl("no-cache=x, private")
	if err != nil {
		t.Fatalf("header.ParseRequestCacheControl() error = %v, want nil", err)
	}
	if got.NoCache || !got.Ext.Has("no-cache") || !got.Ext.Has("private") {
		t.Errorf("response-only and malformed directives are not kept as extensions: %q", got)
	}
}
