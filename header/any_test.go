package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httphdr/header"
)

func TestAny(t *testing.T) {
	t.Parallel()

	hdr := &header.Any{Name: "x-request-id", Value: "f058ebd6-02f7-4d3f-942e-904344e8cde5"}
	if got, want := hdr.Render(nil), "X-Request-Id: f058ebd6-02f7-4d3f-942e-904344e8cde5"; got != want {
		t.Errorf("hdr.Render(nil) = %q, want %q", got, want)
	}
	if !hdr.Equal(&header.Any{Name: "X-REQUEST-ID", Value: hdr.Value}) {
		t.Errorf("names must compare case-insensitively")
	}
	if hdr.Equal(&header.Any{Name: hdr.Name, Value: "F058EBD6-02F7-4D3F-942E-904344E8CDE5"}) {
		t.Errorf("values must compare case-sensitively")
	}

	parsed, err := header.Parse("X-Custom:  a  b ")
	if err != nil {
		t.Fatalf("header.Parse() error = %v, want nil", err)
	}
	if diff := cmp.Diff(parsed, header.Header(&header.Any{Name: "X-Custom", Value: "a  b"})); diff != "" {
		t.Errorf("header.Parse() mismatch: diff (-got +want):\n%v", diff)
	}

	if (&header.Any{Name: "X Bad", Value: "1"}).IsValid() {
		t.Errorf("Any with invalid name IsValid() = true, want false")
	}
}
