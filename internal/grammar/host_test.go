package grammar_test

import (
	"testing"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

func TestIsDomainName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"example.com", true},
		{"sub.example.com", true},
		{"localhost", true},
		{".example.com", false},
		{"exa mple.com", false},
		{"example..com", false},
		{"ex;ample.com", false},
	}
	for _, c := range cases {
		if got := grammar.IsDomainName(c.in); got != c.want {
			t.Errorf("grammar.IsDomainName(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsHostPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"example.com", true},
		{"example.com:8080", true},
		{"192.0.2.43", true},
		{"192.0.2.43:80", true},
		{"[2001:db8:cafe::17]", true},
		{"[2001:db8:cafe::17]:4711", true},
		{"2001:db8:cafe::17", false},
		{"example.com:", false},
		{"example.com:abc", false},
		{"[192.0.2.43]", false},
	}
	for _, c := range cases {
		if got := grammar.IsHostPort(c.in); got != c.want {
			t.Errorf("grammar.IsHostPort(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
