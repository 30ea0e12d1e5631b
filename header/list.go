package header

import (
	"slices"

	"github.com/ghettovoice/httphdr/internal/grammar"
	"github.com/ghettovoice/httphdr/internal/util"
)

// readHdrList parses a comma-separated list: #element.
// Empty list elements are skipped. An empty input gives an empty, non-nil list.
func readHdrList[E any](s string, readElem func(*grammar.Scanner) (E, bool)) ([]E, bool) {
	sc := grammar.NewScanner(s)
	sc.SkipWS()
	for sc.ReadChar(',') {
		sc.SkipWS()
	}

	elems := make([]E, 0, 4)
	for sc.HasNext() {
		e, ok := readElem(sc)
		if !ok {
			return nil, false
		}
		elems = append(elems, e)

		sc.SkipWS()
		if !sc.HasNext() {
			break
		}
		if !sc.ReadListSep() {
			return nil, false
		}
	}
	return elems, true
}

// readNonEmptyHdrList parses a list with at least one element: 1#element.
func readNonEmptyHdrList[E any](s string, readElem func(*grammar.Scanner) (E, bool)) ([]E, bool) {
	elems, ok := readHdrList(s, readElem)
	if !ok || len(elems) == 0 {
		return nil, false
	}
	return elems, true
}

// ciIndex returns the index of v in s using case-insensitive comparison.
func ciIndex[S ~[]string](s S, v string) int {
	return slices.IndexFunc(s, func(e string) bool { return util.EqFold(e, v) })
}

// ciAppend appends values missing from s, keeping the casing seen first.
func ciAppend[S ~[]string](s S, vs ...string) S {
	for _, v := range vs {
		if ciIndex(s, v) < 0 {
			s = append(s, v)
		}
	}
	return s
}

// ciEqual reports whether both sets hold the same values ignoring order and case.
func ciEqual[S ~[]string](s1, s2 S) bool {
	if len(s1) != len(s2) {
		return false
	}
	for _, v := range s1 {
		if ciIndex(s2, v) < 0 {
			return false
		}
	}
	return true
}
