// Package source carries the byte-offset span information every AST node
// in this module is annotated with.
package source

import "fmt"

// Span is a half-open-by-convention pair of byte offsets into the original
// source text. Start is always <= End.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span, asserting the start <= end invariant spec.md §3
// requires of every AST node.
func NewSpan(start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("source: invalid span [%d, %d)", start, end))
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Text slices the original source by this span. Callers must pass the same
// string the span was computed from.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}
