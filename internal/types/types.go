// Package types declares the behaviours shared by header values.
package types

import "io"

// Renderer renders a value to a string or a writer.
type Renderer interface {
	Render(opts *RenderOptions) string
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions tune rendering of header lines.
type RenderOptions struct {
	// LowerName renders header field names in lower case,
	// as required for HTTP/2 and HTTP/3 field sections.
	LowerName bool `json:"lower_name,omitempty"`
}

type ValidFlag interface {
	IsValid() bool
}

// Equalable is implemented by values with their own equality rules,
// e.g. case-insensitive names. go-cmp picks such Equal methods up as well.
type Equalable interface {
	Equal(val any) bool
}

type Cloneable[T any] interface {
	Clone() T
}

// Byteseq is a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
