package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		want   header.Kind
		wantOk bool
	}{
		{"Accept", header.KindAccept, true},
		{"accept-encoding", header.KindAcceptEncoding, true},
		{" ETAG ", header.KindETag, true},
		{"cache-control", header.KindCacheControl, true},
		{"Set-Cookie", header.KindSetCookie, true},
		{"X-Request-Id", header.KindUnknown, false},
		{"", header.KindUnknown, false},
	}
	for _, c := range cases {
		got, ok := header.Lookup(c.name)
		if got != c.want || ok != c.wantOk {
			t.Errorf("header.Lookup(%q) = (%v, %v), want (%v, %v)", c.name, got, ok, c.want, c.wantOk)
		}
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind       header.Kind
		wantName   header.Name
		wantString string
		wantList   bool
		wantValid  bool
	}{
		{header.KindUnknown, "", "Kind(0)", false, false},
		{header.KindAccept, "Accept", "Accept", true, true},
		{header.KindCacheControl, "Cache-Control", "Cache-Control", true, true},
		{header.KindRequestCacheControl, "Cache-Control", "Cache-Control (request)", true, true},
		{header.KindContentType, "Content-Type", "Content-Type", false, true},
		{header.KindCookie, "Cookie", "Cookie", true, true},
		{header.KindSetCookie, "Set-Cookie", "Set-Cookie", false, true},
		{header.KindVary, "Vary", "Vary", true, true},
		{header.Kind(200), "", "Kind(200)", false, false},
	}
	for _, c := range cases {
		if got := c.kind.Name(); got != c.wantName {
			t.Errorf("Kind(%d).Name() = %q, want %q", c.kind, got, c.wantName)
		}
		if got := c.kind.String(); got != c.wantString {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.wantString)
		}
		if got := c.kind.IsList(); got != c.wantList {
			t.Errorf("Kind(%d).IsList() = %v, want %v", c.kind, got, c.wantList)
		}
		if got := c.kind.IsValid(); got != c.wantValid {
			t.Errorf("Kind(%d).IsValid() = %v, want %v", c.kind, got, c.wantValid)
		}
	}
}

func TestKind_Parse(t *testing.T) {
	t.Parallel()

	hdr, err := header.KindRequestCacheControl.Parse("only-if-cached, max-stale=5")
	if err != nil {
		t.Fatalf("KindRequestCacheControl.Parse() error = %v, want nil", err)
	}
	want := &header.RequestCacheControl{OnlyIfCached: true, MaxStale: header.Seconds(5)}
	if diff := cmp.Diff(hdr, header.Header(want)); diff != "" {
		t.Errorf("KindRequestCacheControl.Parse() mismatch: diff (-got +want):\n%v", diff)
	}

	if _, err := header.KindETag.Parse("nope"); !errors.Is(err, header.ErrInvalidHeader) {
		t.Errorf("KindETag.Parse(\"nope\") error = %v, want %v", err, header.ErrInvalidHeader)
	}
	if _, err := header.KindUnknown.Parse("x"); !errors.Is(err, header.ErrUnsupportedHeader) {
		t.Errorf("KindUnknown.Parse() error = %v, want %v", err, header.ErrUnsupportedHeader)
	}

	if _, ok := header.KindVary.TryParse("a b"); ok {
		t.Errorf("KindVary.TryParse(\"a b\") ok = true, want false")
	}
	if got, ok := header.KindVary.TryParse("Origin"); !ok || !got.Equal(header.Vary{"Origin"}) {
		t.Errorf("KindVary.TryParse(\"Origin\") = (%v, %v), want (Origin, true)", got, ok)
	}
	if _, ok := header.Kind(99).TryParse("x"); ok {
		t.Errorf("Kind(99).TryParse() ok = true, want false")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hdr  header.Header
		want header.Kind
	}{
		{header.Accept{}, header.KindAccept},
		{&header.CacheControl{}, header.KindCacheControl},
		{&header.RequestCacheControl{}, header.KindRequestCacheControl},
		{(*header.ETag)(nil), header.KindETag},
		{header.ContentLength(0), header.KindContentLength},
		{header.Forwarded{}, header.KindForwarded},
		{&header.Any{Name: "X-Foo"}, header.KindUnknown},
		{nil, header.KindUnknown},
	}
	for _, c := range cases {
		if got := header.KindOf(c.hdr); got != c.want {
			t.Errorf("header.KindOf(%T) = %v, want %v", c.hdr, got, c.want)
		}
	}

	// every registered kind parses into a header of the same kind
	for k := header.KindAccept; k.IsValid(); k++ {
		if got, ok := header.Lookup(k.Name()); !ok || (got != k && k != header.KindRequestCacheControl) {
			t.Errorf("header.Lookup(%q) = (%v, %v), want (%v, true)", k.Name(), got, ok, k)
		}
	}
}

func TestIsHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    any
		want bool
	}{
		{header.Vary{"Accept"}, true},
		{&header.ETag{Value: "x"}, true},
		{header.MustMediaType("text", "plain"), false},
		{"Vary: Accept", false},
		{nil, false},
	}
	for _, c := range cases {
		if got := header.IsHeader(c.v); got != c.want {
			t.Errorf("header.IsHeader(%T) = %v, want %v", c.v, got, c.want)
		}
	}
}
