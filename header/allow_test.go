package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func TestParseAllow(t *testing.T) {
	t.Parallel()

	got, err := header.ParseAllow("GET, HEAD,PUT , custom")
	if err != nil {
		t.Fatalf("header.ParseAllow() error = %v, want nil", err)
	}
	want := header.Allow{header.MethodGet, header.MethodHead, header.MethodPut, "custom"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("header.ParseAllow() mismatch: diff (-got +want):\n%v", diff)
	}
	if !got.Has(header.MethodPut) || got.Has("put") {
		t.Errorf("methods must be matched case-sensitively: %q", got)
	}

	empty, err := header.ParseAllow("")
	if err != nil || empty == nil || !empty.IsValid() {
		t.Errorf("header.ParseAllow(\"\") = (%#v, %v), want valid empty list", empty, err)
	}
	if got, want := empty.Render(nil), "Allow: "; got != want {
		t.Errorf("empty.Render(nil) = %q, want %q", got, want)
	}

	if _, err := header.ParseAllow("GET POST"); !errors.Is(err, header.ErrInvalidHeader) {
		t.Errorf("header.ParseAllow(\"GET POST\") error = %v, want %v", err, header.ErrInvalidHeader)
	}
}
