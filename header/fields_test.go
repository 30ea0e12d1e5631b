package header_test

import (
	"bytes"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/httphdr/header"
	"github.com/ghettovoice/httphdr/internal/testutil/hdrmock"
)

var (
	_ header.Source = http.Header(nil)
	_ header.Sink   = http.Header(nil)
	_ header.Source = (*header.Fields)(nil)
	_ header.Sink   = (*header.Fields)(nil)
)

func TestFields(t *testing.T) {
	t.Parallel()

	var fs header.Fields
	fs.Add("accept", "text/html")
	fs.Add("X-Foo", "1")
	fs.Add("Accept", "*/*")
	fs.Add("x-foo", "2")

	if got, want := fs.Values("ACCEPT"), []string{"text/html", "*/*"}; !cmp.Equal(got, want) {
		t.Errorf("fs.Values(\"ACCEPT\") = %q, want %q", got, want)
	}
	if got, ok := fs.Get("x-foo"); !ok || got != "1" {
		t.Errorf("fs.Get(\"x-foo\") = (%q, %v), want (\"1\", true)", got, ok)
	}

	fs.Set("X-FOO", "3")
	wantLines := "Accept: text/html\r\nX-Foo: 3\r\nAccept: */*\r\n"
	if got := fs.String(); got != wantLines {
		t.Errorf("fs.String() = %q, want %q", got, wantLines)
	}

	fs.Set("Vary", "Origin")
	fs.Del("accept")
	if got, want := fs.Len(), 2; got != want {
		t.Errorf("fs.Len() = %d, want %d", got, want)
	}
	if got, want := maps.Collect(fs.All()), map[string]string{"X-Foo": "3", "Vary": "Origin"}; !cmp.Equal(got, want) {
		t.Errorf("fs.All() = %v, want %v", got, want)
	}

	fs.Clear()
	if fs.Len() != 0 || fs.String() != "" {
		t.Errorf("after fs.Clear(): Len() = %d, String() = %q, want 0, \"\"", fs.Len(), fs.String())
	}

	var nilFs *header.Fields
	if nilFs.Len() != 0 || nilFs.Values("a") != nil {
		t.Errorf("nil Fields is not empty")
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Add("Accept-Encoding", "gzip;q=0.5")
	h.Add("Accept-Encoding", "br")
	h.Add("Content-Type", "text/plain")
	h.Add("Content-Type", "text/html")
	h.Add("Cache-Control", "no-cache, max-stale=10")
	h.Add("Cookie", "a=1")
	h.Add("Cookie", "b=2")

	ae, ok, err := header.Get[header.AcceptEncoding](h, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[AcceptEncoding]() = (%v, %v, %v), want ok", ae, ok, err)
	}
	if got, want := ae.RenderValue(), "gzip; q=0.5, br"; got != want {
		t.Errorf("joined Accept-Encoding = %q, want %q", got, want)
	}

	ct, ok, err := header.Get[*header.ContentType](h, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[*ContentType]() = (%v, %v, %v), want ok", ct, ok, err)
	}
	if got, want := ct.Essence(), "text/plain"; got != want {
		t.Errorf("ct.Essence() = %q, want %q (first line)", got, want)
	}

	rcc, ok, err := header.Get[*header.RequestCacheControl](h, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[*RequestCacheControl]() = (%v, %v, %v), want ok", rcc, ok, err)
	}
	if rcc.MaxStale == nil || *rcc.MaxStale != 10 || !rcc.NoCache {
		t.Errorf("header.Get[*RequestCacheControl]() = %v, want no-cache and max-stale=10", rcc)
	}

	cookie, ok, err := header.Get[header.Cookie](h, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[Cookie]() = (%v, %v, %v), want ok", cookie, ok, err)
	}
	if diff := cmp.Diff(cookie, header.Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}); diff != "" {
		t.Errorf("header.Get[Cookie]() mismatch: diff (-got +want):\n%v", diff)
	}

	etag, ok, err := header.Get[*header.ETag](h, nil)
	if err != nil || ok || etag != nil {
		t.Errorf("header.Get[*ETag]() = (%v, %v, %v), want (nil, false, nil)", etag, ok, err)
	}

	if _, _, err := header.Get[*header.Any](h, nil); !errors.Is(err, header.ErrUnsupportedHeader) {
		t.Errorf("header.Get[*Any]() error = %v, want %v", err, header.ErrUnsupportedHeader)
	}
}

func TestGet_Malformed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := hdrmock.NewMockSource(ctrl)
	src.EXPECT().Values("ETag").Return([]string{"no-quotes"}).Times(2)

	_, ok, err := header.Get[*header.ETag](src, nil)
	var perr *header.ParseError
	if !errors.As(err, &perr) || ok {
		t.Fatalf("header.Get[*ETag]() = (%v, %v), want ParseError", ok, err)
	}
	if diff := cmp.Diff(perr, &header.ParseError{Name: "ETag", Value: "no-quotes"}); diff != "" {
		t.Errorf("parse error mismatch: diff (-got +want):\n%v", diff)
	}

	var buf bytes.Buffer
	opts := &header.GetOptions{
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	if etag, ok := header.TryGet[*header.ETag](src, opts); ok || etag != nil {
		t.Errorf("header.TryGet[*ETag]() = (%v, %v), want (nil, false)", etag, ok)
	}
	if !strings.Contains(buf.String(), "skip malformed header") {
		t.Errorf("log output %q does not mention the skipped header", buf.String())
	}
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := hdrmock.NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Values("Set-Cookie").Return([]string{
			"a=1; Path=/",
			"b=2; Expires=Wed, 09 Jun 2021 10:18:14 GMT; Secure",
		}),
		src.EXPECT().Values("Set-Cookie").Return([]string{"a=1", "=broken"}),
		src.EXPECT().Values("Vary").Return(nil),
	)

	cookies, err := header.GetAll[*header.SetCookie](src, nil)
	if err != nil {
		t.Fatalf("header.GetAll[*SetCookie]() error = %v, want nil", err)
	}
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	if want := []string{"a", "b"}; !slices.Equal(names, want) {
		t.Errorf("cookie names = %q, want %q", names, want)
	}
	if !cookies[1].Secure || cookies[1].Expires.IsZero() {
		t.Errorf("second cookie = %v, want Secure with Expires", cookies[1])
	}

	var buf bytes.Buffer
	opts := &header.GetOptions{
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	cookies, err = header.GetAll[*header.SetCookie](src, opts)
	if !strings.Contains(buf.String(), "=broken") {
		t.Errorf("log output %q does not mention the malformed line", buf.String())
	}
	if !errors.Is(err, header.ErrInvalidHeader) {
		t.Errorf("header.GetAll[*SetCookie]() error = %v, want %v", err, header.ErrInvalidHeader)
	}
	if len(cookies) != 1 || cookies[0].Name != "a" {
		t.Errorf("header.GetAll[*SetCookie]() = %v, want the well-formed line", cookies)
	}

	vary, err := header.GetAll[header.Vary](src, nil)
	if err != nil || len(vary) != 0 {
		t.Errorf("header.GetAll[Vary]() = (%v, %v), want (empty, nil)", vary, err)
	}
}

func TestPut(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sink := hdrmock.NewMockSink(ctrl)
	gomock.InOrder(
		sink.EXPECT().Set("Vary", "Accept-Encoding, Origin"),
		sink.EXPECT().Add("Set-Cookie", "id=1; Path=/"),
		sink.EXPECT().Add("Set-Cookie", "lang=en"),
		sink.EXPECT().Del("Cache-Control"),
	)

	vary, err := header.NewVary("Accept-Encoding", "Origin")
	if err != nil {
		t.Fatalf("header.NewVary() error = %v, want nil", err)
	}
	if err := header.Put(sink, vary); err != nil {
		t.Fatalf("header.Put() error = %v, want nil", err)
	}

	if err := header.Append(sink, &header.SetCookie{Name: "id", Value: "1", Path: "/"}); err != nil {
		t.Fatalf("header.Append() error = %v, want nil", err)
	}
	if err := header.Append(sink, &header.SetCookie{Name: "lang", Value: "en"}); err != nil {
		t.Fatalf("header.Append() error = %v, want nil", err)
	}

	header.Remove(sink, header.KindRequestCacheControl)
	header.Remove(sink, header.KindUnknown)
}

func TestPut_Rejects(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sink := hdrmock.NewMockSink(ctrl)

	cases := []struct {
		name string
		hdr  header.Header
	}{
		{"nil", nil},
		{"nil pointer", (*header.ETag)(nil)},
		{"invalid", header.Vary{"bad name"}},
		{"header injection", &header.Any{Name: "X-Foo", Value: "a\r\nSet-Cookie: x=1"}},
		{"empty cache control", &header.CacheControl{}},
	}
	for _, c := range cases {
		if err := header.Put(sink, c.hdr); !errors.Is(err, header.ErrInvalidArgument) {
			t.Errorf("header.Put(%s) error = %v, want %v", c.name, err, header.ErrInvalidArgument)
		}
		if err := header.Append(sink, c.hdr); !errors.Is(err, header.ErrInvalidArgument) {
			t.Errorf("header.Append(%s) error = %v, want %v", c.name, err, header.ErrInvalidArgument)
		}
	}
}

func TestPutGet_HTTPHeader(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	etag, err := header.NewETag("v1", true)
	if err != nil {
		t.Fatalf("header.NewETag() error = %v, want nil", err)
	}
	if err := header.Put(h, etag); err != nil {
		t.Fatalf("header.Put() error = %v, want nil", err)
	}
	if got, want := h.Get("ETag"), `W/"v1"`; got != want {
		t.Errorf("h.Get(\"ETag\") = %q, want %q", got, want)
	}

	got, ok, err := header.Get[*header.ETag](h, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[*ETag]() = (%v, %v, %v), want ok", got, ok, err)
	}
	if diff := cmp.Diff(got, etag); diff != "" {
		t.Errorf("header.Get[*ETag]() mismatch: diff (-got +want):\n%v", diff)
	}

	var fs header.Fields
	if err := header.Append(&fs, header.Link{{URI: "/a"}}); err != nil {
		t.Fatalf("header.Append() error = %v, want nil", err)
	}
	if err := header.Append(&fs, header.Link{{URI: "/b"}}); err != nil {
		t.Fatalf("header.Append() error = %v, want nil", err)
	}
	links, ok, err := header.Get[header.Link](&fs, nil)
	if err != nil || !ok {
		t.Fatalf("header.Get[Link]() = (%v, %v, %v), want ok", links, ok, err)
	}
	if got, want := links.RenderValue(), "</a>, </b>"; got != want {
		t.Errorf("links.RenderValue() = %q, want %q", got, want)
	}
}
