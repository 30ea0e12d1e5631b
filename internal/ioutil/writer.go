// Package ioutil contains helpers for rendering header values into an [io.Writer].
package ioutil

import (
	"fmt"
	"io"
	"sync"

	"braces.dev/errtrace"
)

// CountingWriter sums up bytes written by a sequence of render steps.
// After the first failed step all following steps are skipped.
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// Fprint writes operands in the default formats.
func (cw *CountingWriter) Fprint(args ...any) *CountingWriter {
	return cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(fmt.Fprint(w, args...)) })
}

// Call runs a RenderTo-style function against the underlying writer.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	n, err := fn(cw.w)
	cw.num += n
	if err != nil {
		cw.err = errtrace.Wrap(err)
	}
	return cw
}

// Result returns the total number of bytes written and the first error.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

// GetCountingWriter takes a writer from the pool. Return it with [FreeCountingWriter].
func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

func FreeCountingWriter(cw *CountingWriter) {
	*cw = CountingWriter{}
	cntWrtPool.Put(cw)
}

// Join renders elems separated by sep.
func Join[E any](w io.Writer, sep string, elems []E, elemTo func(E, io.Writer) (int, error)) (num int, err error) {
	cw := GetCountingWriter(w)
	defer FreeCountingWriter(cw)
	for i, e := range elems {
		if i > 0 {
			cw.Fprint(sep)
		}
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(elemTo(e, w)) })
	}
	return errtrace.Wrap2(cw.Result())
}
