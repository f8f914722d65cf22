// Package ast defines the parse tree that the MiniJava front end produces
// and every later compiler stage walks. In a production MiniJava toolchain
// this tree would be generated by an external parser generator; here the
// syntax package both defines and produces it, but the node types are kept
// deliberately dumb data (no behavior beyond a span) so that stages 1-4 only
// ever depend on this package's shapes, not on how they were built.
package ast

import "github.com/jounaidr/babycino-compiler/report"

// Node is the common interface implemented by every parse tree node.
type Node interface {
	// Span returns the range of source text the node was parsed from.
	Span() *report.Span
}

// base is embedded by every concrete node to provide its span.
type base struct {
	span *report.Span
}

// NewBase creates a node base over the given span.
func NewBase(span *report.Span) base {
	return base{span: span}
}

func (b base) Span() *report.Span {
	return b.span
}
