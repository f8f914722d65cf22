package main

import (
	"fmt"
	"io"

	"github.com/kr/pretty"

	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/sem"
)

// dumpSymbolTable pretty-prints every class's field and method layout.
// sem.Class/sem.Method are plain structs, which kr/pretty renders as a
// readable struct dump without needing a bespoke formatter.
func dumpSymbolTable(w io.Writer, prog *ast.Program, symtab *sem.SymbolTable) {
	for _, c := range symtab.Classes() {
		fmt.Fprintf(w, "class %s", c.Name)
		if c.Super != nil {
			fmt.Fprintf(w, " extends %s", c.Super.Name)
		}
		fmt.Fprintln(w, " {")
		fmt.Fprintf(w, "  fields (layout): %v\n", c.FieldLayout())
		fmt.Fprintf(w, "  methods (vtable): %v\n", c.MethodLayout())
		for _, m := range c.OwnMethods() {
			fmt.Fprintf(w, "  %# v\n", pretty.Formatter(m))
		}
		fmt.Fprintln(w, "}")
	}
}

// dumpReceiverTypes prints the static receiver type the type checker
// resolved for every method-call node in prog, in source order. The
// receiver type itself isn't stored on the call node (see ast.MethodCall)
// but in the symbol table's call-site side table, so reading it back means
// walking the same tree the checker walked and looking each call up there.
func dumpReceiverTypes(w io.Writer, prog *ast.Program, symtab *sem.SymbolTable) {
	visit := func(call *ast.MethodCall) {
		line := call.Span().StartLine + 1
		t, ok := symtab.ReceiverType(call)
		if !ok {
			fmt.Fprintf(w, "line %d: %s(...) receiver type unresolved\n", line, call.Method)
			return
		}
		fmt.Fprintf(w, "line %d: %s(...) receiver type %s\n", line, call.Method, t)
	}

	walkStmt(prog.Main.Body, visit)
	for _, cd := range prog.Classes {
		for _, md := range cd.Methods {
			for _, stmt := range md.Body {
				walkStmt(stmt, visit)
			}
			walkExpr(md.ReturnExpr, visit)
		}
	}
}

// walkStmt and walkExpr recurse through every node reachable from a
// statement or expression, invoking visit on each ast.MethodCall found.
// This mirrors check.Checker's statement/expression dispatch shape, with
// the type-checking logic stripped out since all that's needed here is
// finding every call site.

func walkStmt(stmt ast.Stmt, visit func(*ast.MethodCall)) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			walkStmt(inner, visit)
		}
	case *ast.If:
		walkExpr(s.Cond, visit)
		walkStmt(s.Then, visit)
		walkStmt(s.Else, visit)
	case *ast.While:
		walkExpr(s.Cond, visit)
		walkStmt(s.Body, visit)
	case *ast.DoWhile:
		walkStmt(s.Body, visit)
		walkExpr(s.Cond, visit)
	case *ast.Print:
		walkExpr(s.Value, visit)
	case *ast.Assign:
		walkExpr(s.Value, visit)
	case *ast.ArrayAssign:
		walkExpr(s.Index, visit)
		walkExpr(s.Value, visit)
	}
}

func walkExpr(expr ast.Expr, visit func(*ast.MethodCall)) {
	switch e := expr.(type) {
	case *ast.NewIntArray:
		walkExpr(e.Size, visit)
	case *ast.Not:
		walkExpr(e.Operand, visit)
	case *ast.Paren:
		walkExpr(e.Inner, visit)
	case *ast.ArrayLength:
		walkExpr(e.Array, visit)
	case *ast.ArrayIndex:
		walkExpr(e.Array, visit)
		walkExpr(e.Index, visit)
	case *ast.BinOp:
		walkExpr(e.Left, visit)
		walkExpr(e.Right, visit)
	case *ast.MethodCall:
		walkExpr(e.Receiver, visit)
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
		visit(e)
	}
}
