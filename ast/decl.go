package ast

import "github.com/jounaidr/babycino-compiler/report"

// Program is the root of the parse tree: one main class followed by zero or
// more ordinary class declarations, matching the MiniJava grammar's
// `Goal -> MainClass ClassDecl*`.
type Program struct {
	base
	Main    *MainClass
	Classes []*ClassDecl
}

func NewProgram(span *report.Span, main *MainClass, classes []*ClassDecl) *Program {
	return &Program{NewBase(span), main, classes}
}

// MainClass is the distinguished `class C { public static void main(String[]
// a) { Stmt } }` declaration every MiniJava program has exactly one of.
type MainClass struct {
	base
	Name      string
	ArgName   string
	ArgNamePos *report.Span
	Body      Stmt
}

func NewMainClass(span *report.Span, name, argName string, argNamePos *report.Span, body Stmt) *MainClass {
	return &MainClass{NewBase(span), name, argName, argNamePos, body}
}

// ClassDecl is an ordinary class declaration, optionally extending another
// class. MiniJava supports only single inheritance.
type ClassDecl struct {
	base
	Name        string
	NamePos     *report.Span
	Extends     string
	ExtendsPos  *report.Span
	Fields      []*VarDecl
	Methods     []*MethodDecl
}

func NewClassDecl(span *report.Span, name string, namePos *report.Span, extends string, extendsPos *report.Span, fields []*VarDecl, methods []*MethodDecl) *ClassDecl {
	return &ClassDecl{NewBase(span), name, namePos, extends, extendsPos, fields, methods}
}

// VarDecl declares a single name with a type. The same node shape is reused
// for fields, method parameters, and method locals — the symbol builder
// decides which symbol kind to register it as based on where it appears.
type VarDecl struct {
	base
	Type    TypeNode
	Name    string
	NamePos *report.Span
}

func NewVarDecl(span *report.Span, typ TypeNode, name string, namePos *report.Span) *VarDecl {
	return &VarDecl{NewBase(span), typ, name, namePos}
}

// MethodDecl is a single `public <Type> <name>(<params>) { <locals> <stmts>
// return <expr>; }` declaration.
type MethodDecl struct {
	base
	Name       string
	NamePos    *report.Span
	ReturnType TypeNode
	Params     []*VarDecl
	Locals     []*VarDecl
	Body       []Stmt
	ReturnExpr Expr
}

func NewMethodDecl(span *report.Span, name string, namePos *report.Span, returnType TypeNode, params, locals []*VarDecl, body []Stmt, returnExpr Expr) *MethodDecl {
	return &MethodDecl{NewBase(span), name, namePos, returnType, params, locals, body, returnExpr}
}
