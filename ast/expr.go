package ast

import "github.com/jounaidr/babycino-compiler/report"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	expr()
}

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int
}

func NewIntLit(span *report.Span, value int) *IntLit { return &IntLit{NewBase(span), value} }

func (*IntLit) expr() {}

// BoolLit is a `true` or `false` literal.
type BoolLit struct {
	base
	Value bool
}

func NewBoolLit(span *report.Span, value bool) *BoolLit { return &BoolLit{NewBase(span), value} }

func (*BoolLit) expr() {}

// This is the `this` expression.
type This struct {
	base
}

func NewThis(span *report.Span) *This { return &This{NewBase(span)} }

func (*This) expr() {}

// NewIntArray is a `new int[Size]` expression.
type NewIntArray struct {
	base
	Size Expr
}

func NewNewIntArray(span *report.Span, size Expr) *NewIntArray { return &NewIntArray{NewBase(span), size} }

func (*NewIntArray) expr() {}

// NewObject is a `new ClassName()` expression.
type NewObject struct {
	base
	ClassName string
}

func NewNewObject(span *report.Span, className string) *NewObject {
	return &NewObject{NewBase(span), className}
}

func (*NewObject) expr() {}

// Not is a `!Operand` expression.
type Not struct {
	base
	Operand Expr
}

func NewNot(span *report.Span, operand Expr) *Not { return &Not{NewBase(span), operand} }

func (*Not) expr() {}

// Paren is a parenthesized `(Inner)` expression, kept as its own node so
// that its span covers the parens even though it otherwise passes straight
// through to Inner's type and value.
type Paren struct {
	base
	Inner Expr
}

func NewParen(span *report.Span, inner Expr) *Paren { return &Paren{NewBase(span), inner} }

func (*Paren) expr() {}

// ArrayLength is an `Array.length` expression.
type ArrayLength struct {
	base
	Array Expr
}

func NewArrayLength(span *report.Span, array Expr) *ArrayLength { return &ArrayLength{NewBase(span), array} }

func (*ArrayLength) expr() {}

// ArrayIndex is an `Array[Index]` expression.
type ArrayIndex struct {
	base
	Array Expr
	Index Expr
}

func NewArrayIndex(span *report.Span, array, index Expr) *ArrayIndex {
	return &ArrayIndex{NewBase(span), array, index}
}

func (*ArrayIndex) expr() {}

// BinOp is a binary operator expression: `Left Op Right`. Op is one of
// "&&", "<", "+", "-", "*".
type BinOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func NewBinOp(span *report.Span, op string, left, right Expr) *BinOp {
	return &BinOp{NewBase(span), op, left, right}
}

func (*BinOp) expr() {}

// MethodCall is a `Receiver.Method(Args...)` expression. Its static receiver
// class — the class used to resolve Method and generate a vtable dispatch —
// is recorded by the type checker into the symbol table's call-site side
// table, keyed by this node's identity, rather than stored on the node
// itself.
type MethodCall struct {
	base
	Receiver   Expr
	Method     string
	MethodPos  *report.Span
	Args       []Expr
}

func NewMethodCall(span *report.Span, receiver Expr, method string, methodPos *report.Span, args []Expr) *MethodCall {
	return &MethodCall{NewBase(span), receiver, method, methodPos, args}
}

func (*MethodCall) expr() {}

// IdentifierUse is a bare name reference: a local, a parameter, or a field
// of the enclosing class (resolved in that order).
type IdentifierUse struct {
	base
	Name string
}

func NewIdentifierUse(span *report.Span, name string) *IdentifierUse {
	return &IdentifierUse{NewBase(span), name}
}

func (*IdentifierUse) expr() {}
