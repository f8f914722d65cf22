// Package check implements the Type Checker stage: it walks the parse
// tree bottom-up, assigns a type to every expression, checks every
// statement, and annotates each method-call node with its static receiver
// type in the symbol table. Unlike the original listener-driven walker,
// which threaded a null-sentinel operand stack through enter/exit
// callbacks, this checker recurses directly: checkExpr returns the Type of
// the subtree it just checked, and checkStmt returns nothing, which
// satisfies the "operand stack empty at exit" invariant by construction
// rather than by runtime assertion.
package check

import (
	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/sem"
)

// Checker walks a single class or method body at a time, tracking which
// class and method are currently in scope so that identifier lookups and
// `this` can resolve.
type Checker struct {
	sym *sem.SymbolTable
	src *report.Source

	current *sem.Class
	method  *sem.Method
}

// NewChecker creates a type checker over an already-built symbol table.
func NewChecker(src *report.Source, sym *sem.SymbolTable) *Checker {
	return &Checker{sym: sym, src: src}
}

// Check type-checks every method body and the main class body in prog.
// Each top-level body is checked under its own report.CatchErrors boundary
// so that an internal error in one method does not prevent the rest of
// the program from being checked. Call report.Die() after Check returns to
// learn whether any user errors were recorded.
func Check(src *report.Source, sym *sem.SymbolTable, prog *ast.Program) {
	c := NewChecker(src, sym)
	c.checkMainClass(prog.Main)
	for _, cd := range prog.Classes {
		c.checkClass(cd)
	}
}

func (c *Checker) checkMainClass(main *ast.MainClass) {
	defer report.CatchErrors(c.src)

	c.current = c.sym.Get(main.Name)
	c.method = c.current.GetOwnMethod("main")
	defer func() {
		c.current = nil
		c.method = nil
	}()

	c.checkStmt(main.Body)
}

func (c *Checker) checkClass(cd *ast.ClassDecl) {
	c.current = c.sym.Get(cd.Name)
	defer func() { c.current = nil }()

	for _, md := range cd.Methods {
		c.checkMethod(md)
	}
}

func (c *Checker) checkMethod(md *ast.MethodDecl) {
	defer report.CatchErrors(c.src)

	c.method = c.current.GetOwnMethod(md.Name)
	defer func() { c.method = nil }()

	for _, stmt := range md.Body {
		c.checkStmt(stmt)
	}

	retType := c.method.Return
	actual := c.checkExpr(md.ReturnExpr)
	c.check(retType.CompatibleWith(actual), md.ReturnExpr.Span(),
		"return type of %s expected to be compatible with %s; actual type: %s",
		c.method.GetQualifiedName(), retType, actual)
}

// -----------------------------------------------------------------------------
// Statements.

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
	case *ast.If:
		t := c.checkExpr(s.Cond)
		c.check(t.IsBoolean(), s.Cond.Span(), "expected condition of if statement to be boolean; actual type: %s", t)
		c.checkStmt(s.Then)
		c.checkStmt(s.Else)
	case *ast.While:
		t := c.checkExpr(s.Cond)
		c.check(t.IsBoolean(), s.Cond.Span(), "expected condition of while statement to be boolean; actual type: %s", t)
		c.checkStmt(s.Body)
	case *ast.DoWhile:
		c.checkStmt(s.Body)
		t := c.checkExpr(s.Cond)
		c.check(t.IsBoolean(), s.Cond.Span(), "expected condition of do-while statement to be boolean; actual type: %s", t)
	case *ast.Print:
		t := c.checkExpr(s.Value)
		c.check(t.IsInt(), s.Value.Span(), "expected argument of println to be int; actual type: %s", t)
	case *ast.Assign:
		lhs := c.identifierType(s.Name, s.NamePos)
		rhs := c.checkExpr(s.Value)
		c.check(lhs.CompatibleWith(rhs), s.Span(), "assignment of value of type %s to variable of incompatible type %s", rhs, lhs)
	case *ast.ArrayAssign:
		lhs := c.identifierType(s.Name, s.NamePos)
		index := c.checkExpr(s.Index)
		rhs := c.checkExpr(s.Value)
		c.check(lhs.IsIntArray(), s.Span(), "expected target of array index to be int[]; actual type: %s", lhs)
		c.check(index.IsInt(), s.Index.Span(), "expected array index to be int; actual type: %s", index)
		c.check(rhs.IsInt(), s.Value.Span(), "expected int to be assigned to int array element; actual type: %s", rhs)
	default:
		report.ICE("unhandled statement node %T", stmt)
	}
}

// -----------------------------------------------------------------------------
// Expressions.

func (c *Checker) checkExpr(expr ast.Expr) sem.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return sem.NewType(sem.INT)
	case *ast.BoolLit:
		return sem.NewType(sem.BOOLEAN)
	case *ast.This:
		return sem.NewObjectType(c.current)
	case *ast.NewIntArray:
		t := c.checkExpr(e.Size)
		c.check(t.IsInt(), e.Size.Span(), "expected int for new array size; actual type: %s", t)
		return sem.NewType(sem.INTARRAY)
	case *ast.NewObject:
		obj := c.sym.Get(e.ClassName)
		if obj == nil {
			c.error(e.Span(), "unrecognised class name for new object: %s", e.ClassName)
			obj = c.sym.Get(sem.ObjectClassName)
		}
		return sem.NewObjectType(obj)
	case *ast.Not:
		t := c.checkExpr(e.Operand)
		c.check(t.IsBoolean(), e.Operand.Span(), "expected boolean for argument to not; actual type: %s", t)
		return sem.NewType(sem.BOOLEAN)
	case *ast.Paren:
		return c.checkExpr(e.Inner)
	case *ast.ArrayLength:
		t := c.checkExpr(e.Array)
		c.check(t.IsIntArray(), e.Array.Span(), "expected length to be applied to expression of type int[]; actual type: %s", t)
		return sem.NewType(sem.INT)
	case *ast.ArrayIndex:
		arr := c.checkExpr(e.Array)
		index := c.checkExpr(e.Index)
		c.check(arr.IsIntArray(), e.Array.Span(), "expected int[] for target of array lookup; actual type: %s", arr)
		c.check(index.IsInt(), e.Index.Span(), "expected int for index in array lookup; actual type: %s", index)
		return sem.NewType(sem.INT)
	case *ast.BinOp:
		return c.checkBinOp(e)
	case *ast.MethodCall:
		return c.checkMethodCall(e)
	case *ast.IdentifierUse:
		return c.identifierType(e.Name, e.Span())
	default:
		report.ICE("unhandled expression node %T", expr)
		panic("unreachable")
	}
}

func (c *Checker) checkBinOp(e *ast.BinOp) sem.Type {
	lhs := c.checkExpr(e.Left)
	rhs := c.checkExpr(e.Right)

	if e.Op == "&&" {
		c.check(lhs.IsBoolean(), e.Left.Span(), "expected boolean as 1st argument to &&; actual type: %s", lhs)
		c.check(rhs.IsBoolean(), e.Right.Span(), "expected boolean as 2nd argument to &&; actual type: %s", rhs)
		return sem.NewType(sem.BOOLEAN)
	}

	c.check(lhs.IsInt(), e.Left.Span(), "expected int as 1st argument to %s; actual type: %s", e.Op, lhs)
	c.check(rhs.IsInt(), e.Right.Span(), "expected int as 2nd argument to %s; actual type: %s", e.Op, rhs)

	if e.Op == "<" {
		return sem.NewType(sem.BOOLEAN)
	}
	return sem.NewType(sem.INT)
}

// checkMethodCall checks a method call's receiver and argument expressions
// directly (no sentinel is needed since recursion naturally delimits the
// argument group), resolves the method by name on the receiver's static
// class, and records that static receiver type into the symbol table for
// the lowering stage to consume.
func (c *Checker) checkMethodCall(e *ast.MethodCall) sem.Type {
	recvType := c.checkExpr(e.Receiver)

	argTypes := make([]sem.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.checkExpr(arg)
	}

	if !recvType.IsObject() {
		c.error(e.Receiver.Span(), "expected object type for method call; actual type: %s", recvType)
		return sem.NewObjectType(c.sym.Get(sem.ObjectClassName))
	}

	target := recvType.Object().GetAnyMethod(e.Method)
	if target == nil {
		c.error(e.MethodPos, "class %s has no matching method: %s", recvType.Object().Name, e.Method)
		return sem.NewObjectType(c.sym.Get(sem.ObjectClassName))
	}

	c.sym.SetReceiverType(e, recvType)

	params := target.Params()
	if len(params) != len(argTypes) {
		c.error(e.Span(), "method %s has %d parameter(s); call has %d argument(s)",
			target.GetQualifiedName(), len(params), len(argTypes))
		return target.Return
	}

	for i, pname := range params {
		ptype, _ := target.ParamType(pname)
		c.check(ptype.CompatibleWith(argTypes[i]), e.Args[i].Span(),
			"argument of type %s incompatible with parameter %s of type %s", argTypes[i], pname, ptype)
	}

	return target.Return
}

// identifierType resolves a bare name: method local, then parameter
// (both via Method.HasVar), then field of the current class or an
// ancestor. An undeclared name is an error with a conservative Object
// recovery type.
func (c *Checker) identifierType(name string, span *report.Span) sem.Type {
	if c.method != nil && c.method.HasVar(name) {
		t, _ := c.method.GetVarType(name)
		return t
	}
	if c.current != nil && c.current.HasAnyVar(name) {
		t, _ := c.current.GetVarType(name)
		return t
	}
	c.error(span, "undeclared variable: %s", name)
	return sem.NewObjectType(c.sym.Get(sem.ObjectClassName))
}

// -----------------------------------------------------------------------------
// Error logging and recording.

// check asserts a condition, reporting error as a formatted message at
// span if it is false.
func (c *Checker) check(condition bool, span *report.Span, format string, args ...interface{}) {
	if !condition {
		c.error(span, format, args...)
	}
}

// error unconditionally reports a user compile error at span.
func (c *Checker) error(span *report.Span, format string, args ...interface{}) {
	report.ReportError(c.src, span, format, args...)
}
