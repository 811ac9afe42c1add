// Package ast defines the span-carrying syntax tree spec.md §3 specifies:
// modules, scripts, programs, declarations, types, expressions, commands,
// and the embedded spec-language nodes.
//
// Node shapes are the spec's own contract (spec.md §3), not an imitation of
// the teacher's language; only the Node/span idiom below is grounded on the
// teacher (compiler/internal/frontend/ast/ast.go's INode/Expr/Stmt marker
// methods over an embedded source.Location).
package ast

import "github.com/pilo290/moveir/internal/source"

// Node is any AST value that carries a source span.
type Node interface {
	Loc() source.Span
}

// span is embedded by every node to satisfy Node without repeating the
// accessor.
type span struct {
	Span source.Span
}

func (s span) Loc() source.Span { return s.Span }

func newSpan(start, end int) span {
	return span{Span: source.NewSpan(start, end)}
}
