package ast

import "github.com/jounaidr/babycino-compiler/report"

// TypeNode is a syntactic type annotation as written in the source: the
// type position of a field, parameter, local, or method return type. It is
// resolved into a sem.Type by the symbol builder; TypeNode itself carries no
// semantics beyond what the grammar distinguishes.
type TypeNode interface {
	Node
	typeNode()
}

// IntType is the `int` type annotation.
type IntType struct {
	base
}

func NewIntType(span *report.Span) *IntType { return &IntType{NewBase(span)} }

func (*IntType) typeNode() {}

// BooleanType is the `boolean` type annotation.
type BooleanType struct {
	base
}

func NewBooleanType(span *report.Span) *BooleanType { return &BooleanType{NewBase(span)} }

func (*BooleanType) typeNode() {}

// IntArrayType is the `int[]` type annotation.
type IntArrayType struct {
	base
}

func NewIntArrayType(span *report.Span) *IntArrayType { return &IntArrayType{NewBase(span)} }

func (*IntArrayType) typeNode() {}

// ObjectType is a named class type annotation, e.g. `Fac` or `Object`.
type ObjectType struct {
	base
	Name string
}

func NewObjectType(span *report.Span, name string) *ObjectType {
	return &ObjectType{NewBase(span), name}
}

func (*ObjectType) typeNode() {}
