// Package syntax implements the MiniJava Front End: a hand-written
// rune-at-a-time lexer and a recursive-descent parser, one function per
// grammar production, producing an ast.Program. This package is the one
// implementation of the "parse-tree interface" every later stage treats as
// externally supplied.
package syntax

import (
	"strconv"

	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
)

// Parser is a recursive-descent parser for a single MiniJava source file.
// Parsing functions assume the parser is positioned on the first token of
// their production and leave it positioned on the next token after it.
type Parser struct {
	src   *report.Source
	lexer *Lexer
	tok   *Token
}

// NewParser creates a parser over src and positions it on the first token.
func NewParser(src *report.Source) *Parser {
	p := &Parser{src: src, lexer: NewLexer(src)}
	p.next()
	return p
}

// Parse parses a complete MiniJava program: one main class declaration
// followed by zero or more auxiliary class declarations. A syntax error
// panics with a *report.CompileError, which the caller's report.CatchErrors
// boundary turns into a reported diagnostic — this function does not
// itself recover, so parsing stops at the first syntax error, since one
// makes the rest of the file impossible to parse meaningfully.
func Parse(src *report.Source) *ast.Program {
	p := NewParser(src)
	return p.parseProgram()
}

func (p *Parser) next() {
	p.tok = p.lexer.NextToken()
}

func (p *Parser) got(kind TokenKind) bool {
	return p.tok.Kind == kind
}

// expect consumes the current token if it has the given kind, and panics
// with a *report.CompileError otherwise.
func (p *Parser) expect(kind TokenKind) *Token {
	if !p.got(kind) {
		panic(report.Raise(p.tok.Span, "expected %s; found %s", kind, p.describeCurrent()))
	}
	tok := p.tok
	p.next()
	return tok
}

func (p *Parser) describeCurrent() string {
	if p.tok.Kind == TOK_IDENT || p.tok.Kind == TOK_INTLIT {
		return p.tok.Value
	}
	return p.tok.Kind.String()
}

// -----------------------------------------------------------------------------
// Goal -> MainClass ClassDecl*

func (p *Parser) parseProgram() *ast.Program {
	startSpan := p.tok.Span
	main := p.parseMainClass()

	var classes []*ast.ClassDecl
	for p.got(TOK_CLASS) {
		classes = append(classes, p.parseClassDecl())
	}
	p.expect(TOK_EOF)

	return ast.NewProgram(report.Over(startSpan, main.Span()), main, classes)
}

// MainClass -> class Identifier { public static void main ( String [] Identifier ) { Statement } }
func (p *Parser) parseMainClass() *ast.MainClass {
	start := p.expect(TOK_CLASS)
	name := p.expect(TOK_IDENT)
	p.expect(TOK_LBRACE)
	p.expect(TOK_PUBLIC)
	p.expect(TOK_STATIC)
	p.expect(TOK_VOID)
	p.expect(TOK_MAIN)
	p.expect(TOK_LPAREN)
	p.expect(TOK_STRING)
	p.expect(TOK_LBRACKET)
	p.expect(TOK_RBRACKET)
	argName := p.expect(TOK_IDENT)
	p.expect(TOK_RPAREN)
	p.expect(TOK_LBRACE)
	body := p.parseStmt()
	p.expect(TOK_RBRACE)
	end := p.expect(TOK_RBRACE)

	return ast.NewMainClass(report.Over(start.Span, end.Span), name.Value, argName.Value, argName.Span, body)
}

// ClassDecl -> class Identifier (extends Identifier)? { VarDecl* MethodDecl* }
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	start := p.expect(TOK_CLASS)
	name := p.expect(TOK_IDENT)

	var extends string
	var extendsPos *report.Span
	if p.got(TOK_EXTENDS) {
		p.next()
		superTok := p.expect(TOK_IDENT)
		extends = superTok.Value
		extendsPos = superTok.Span
	}

	p.expect(TOK_LBRACE)

	var fields []*ast.VarDecl
	for p.startsType() {
		fields = append(fields, p.parseVarDecl())
		p.expect(TOK_SEMI)
	}

	var methods []*ast.MethodDecl
	for p.got(TOK_PUBLIC) {
		methods = append(methods, p.parseMethodDecl())
	}

	end := p.expect(TOK_RBRACE)

	return ast.NewClassDecl(report.Over(start.Span, end.Span), name.Value, name.Span, extends, extendsPos, fields, methods)
}

// MethodDecl -> public Type Identifier ( ParamList? ) { VarDecl* Statement* return Expr ; }
func (p *Parser) parseMethodDecl() *ast.MethodDecl {
	start := p.expect(TOK_PUBLIC)
	retType := p.parseType()
	name := p.expect(TOK_IDENT)

	p.expect(TOK_LPAREN)
	var params []*ast.VarDecl
	if !p.got(TOK_RPAREN) {
		params = append(params, p.parseParam())
		for p.got(TOK_COMMA) {
			p.next()
			params = append(params, p.parseParam())
		}
	}
	p.expect(TOK_RPAREN)

	p.expect(TOK_LBRACE)

	var locals []*ast.VarDecl
	for p.startsType() {
		locals = append(locals, p.parseVarDecl())
		p.expect(TOK_SEMI)
	}

	var body []ast.Stmt
	for p.startsStmt() {
		body = append(body, p.parseStmt())
	}

	p.expect(TOK_RETURN)
	retExpr := p.parseExpr()
	p.expect(TOK_SEMI)

	end := p.expect(TOK_RBRACE)

	return ast.NewMethodDecl(report.Over(start.Span, end.Span), name.Value, name.Span, retType, params, locals, body, retExpr)
}

func (p *Parser) parseParam() *ast.VarDecl {
	t := p.parseType()
	name := p.expect(TOK_IDENT)
	return ast.NewVarDecl(report.Over(t.Span(), name.Span), t, name.Value, name.Span)
}

// VarDecl -> Type Identifier
func (p *Parser) parseVarDecl() *ast.VarDecl {
	t := p.parseType()
	name := p.expect(TOK_IDENT)
	return ast.NewVarDecl(report.Over(t.Span(), name.Span), t, name.Value, name.Span)
}

// startsType reports whether the current token can begin a Type, used to
// decide whether a `Type Identifier ;` field/local declaration follows
// (versus the first statement or method of the enclosing body).
func (p *Parser) startsType() bool {
	if p.got(TOK_INT) || p.got(TOK_BOOLEAN) {
		return true
	}
	// A bare identifier starts a type only when followed immediately by
	// another identifier (the variable's name); `id = e;` and `id.m();`
	// statements also start with an identifier, so one token of lookahead
	// is not enough — MiniJava's grammar resolves this ambiguity the same
	// way: a declaration is only a class type when the parser is in a
	// position (class/method body prologue) where a statement cannot
	// start with a bare type name as an expression. boolean/int/object
	// field and local declarations always precede the statement list, so
	// callers only invoke startsType there.
	return p.got(TOK_IDENT) && p.identStartsDecl()
}

// identStartsDecl disambiguates `Identifier Identifier` (a class-typed
// declaration) from `Identifier = ...` / `Identifier [ ... ] = ...` /
// `Identifier . ...` (an assignment or call statement) by peeking one
// token past the identifier without consuming anything.
func (p *Parser) identStartsDecl() bool {
	save := *p.lexer
	saveTok := p.tok

	p.next()
	isDecl := p.got(TOK_IDENT)

	*p.lexer = save
	p.tok = saveTok
	return isDecl
}

// Type -> int | int [] | boolean | Identifier
func (p *Parser) parseType() ast.TypeNode {
	switch {
	case p.got(TOK_INT):
		tok := p.tok
		p.next()
		if p.got(TOK_LBRACKET) {
			p.next()
			end := p.expect(TOK_RBRACKET)
			return ast.NewIntArrayType(report.Over(tok.Span, end.Span))
		}
		return ast.NewIntType(tok.Span)
	case p.got(TOK_BOOLEAN):
		tok := p.tok
		p.next()
		return ast.NewBooleanType(tok.Span)
	case p.got(TOK_IDENT):
		tok := p.tok
		p.next()
		return ast.NewObjectType(tok.Span, tok.Value)
	default:
		panic(report.Raise(p.tok.Span, "expected a type; found %s", p.describeCurrent()))
	}
}

// -----------------------------------------------------------------------------
// Statements.

func (p *Parser) startsStmt() bool {
	switch p.tok.Kind {
	case TOK_LBRACE, TOK_IF, TOK_WHILE, TOK_DO, TOK_SYSTEM:
		return true
	case TOK_IDENT:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_IF:
		return p.parseIf()
	case TOK_WHILE:
		return p.parseWhile()
	case TOK_DO:
		return p.parseDoWhile()
	case TOK_SYSTEM:
		return p.parsePrint()
	case TOK_IDENT:
		return p.parseAssignOrArrayAssign()
	default:
		panic(report.Raise(p.tok.Span, "expected a statement; found %s", p.describeCurrent()))
	}
}

// Block -> { Statement* }
func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(TOK_LBRACE)
	var stmts []ast.Stmt
	for p.startsStmt() {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(TOK_RBRACE)
	return ast.NewBlock(report.Over(start.Span, end.Span), stmts)
}

// If -> if ( Expr ) Statement else Statement
func (p *Parser) parseIf() *ast.If {
	start := p.expect(TOK_IF)
	p.expect(TOK_LPAREN)
	cond := p.parseExpr()
	p.expect(TOK_RPAREN)
	then := p.parseStmt()
	p.expect(TOK_ELSE)
	els := p.parseStmt()
	return ast.NewIf(report.Over(start.Span, els.Span()), cond, then, els)
}

// While -> while ( Expr ) Statement
func (p *Parser) parseWhile() *ast.While {
	start := p.expect(TOK_WHILE)
	p.expect(TOK_LPAREN)
	cond := p.parseExpr()
	p.expect(TOK_RPAREN)
	body := p.parseStmt()
	return ast.NewWhile(report.Over(start.Span, body.Span()), cond, body)
}

// DoWhile -> do Statement while ( Expr ) ;
func (p *Parser) parseDoWhile() *ast.DoWhile {
	start := p.expect(TOK_DO)
	body := p.parseStmt()
	p.expect(TOK_WHILE)
	p.expect(TOK_LPAREN)
	cond := p.parseExpr()
	p.expect(TOK_RPAREN)
	end := p.expect(TOK_SEMI)
	return ast.NewDoWhile(report.Over(start.Span, end.Span), body, cond)
}

// Print -> System . out . println ( Expr ) ;
func (p *Parser) parsePrint() *ast.Print {
	start := p.expect(TOK_SYSTEM)
	p.expect(TOK_DOT)
	out := p.expect(TOK_IDENT)
	if out.Value != "out" {
		panic(report.Raise(out.Span, "expected \"out\"; found %s", out.Value))
	}
	p.expect(TOK_DOT)
	p.expect(TOK_PRINTLN)
	p.expect(TOK_LPAREN)
	value := p.parseExpr()
	p.expect(TOK_RPAREN)
	end := p.expect(TOK_SEMI)
	return ast.NewPrint(report.Over(start.Span, end.Span), value)
}

// Assign -> Identifier = Expr ; | Identifier [ Expr ] = Expr ;
func (p *Parser) parseAssignOrArrayAssign() ast.Stmt {
	name := p.expect(TOK_IDENT)

	if p.got(TOK_LBRACKET) {
		p.next()
		index := p.parseExpr()
		p.expect(TOK_RBRACKET)
		p.expect(TOK_ASSIGN)
		value := p.parseExpr()
		end := p.expect(TOK_SEMI)
		return ast.NewArrayAssign(report.Over(name.Span, end.Span), name.Value, name.Span, index, value)
	}

	p.expect(TOK_ASSIGN)
	value := p.parseExpr()
	end := p.expect(TOK_SEMI)
	return ast.NewAssign(report.Over(name.Span, end.Span), name.Value, name.Span, value)
}

// -----------------------------------------------------------------------------
// Expressions, by ascending precedence: &&, then <, then + and -, then *,
// then unary/postfix/primary; each level binds tighter than the one before.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAnd()
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseCompare()
	for p.got(TOK_AND) {
		op := p.tok
		p.next()
		right := p.parseCompare()
		left = ast.NewBinOp(report.Over(left.Span(), right.Span()), op.Value, left, right)
	}
	return left
}

func (p *Parser) parseCompare() ast.Expr {
	left := p.parseAdditive()
	for p.got(TOK_LT) {
		op := p.tok
		p.next()
		right := p.parseAdditive()
		left = ast.NewBinOp(report.Over(left.Span(), right.Span()), op.Value, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.got(TOK_PLUS) || p.got(TOK_MINUS) {
		op := p.tok
		p.next()
		right := p.parseMultiplicative()
		left = ast.NewBinOp(report.Over(left.Span(), right.Span()), op.Value, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.got(TOK_STAR) {
		op := p.tok
		p.next()
		right := p.parseUnary()
		left = ast.NewBinOp(report.Over(left.Span(), right.Span()), op.Value, left, right)
	}
	return left
}

// Unary -> ! Unary | Postfix
func (p *Parser) parseUnary() ast.Expr {
	if p.got(TOK_NOT) {
		start := p.tok
		p.next()
		operand := p.parseUnary()
		return ast.NewNot(report.Over(start.Span, operand.Span()), operand)
	}
	return p.parsePostfix()
}

// Postfix -> Primary ( .length | .Identifier ( ArgList? ) | [ Expr ] )*
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.got(TOK_DOT):
			p.next()
			if p.got(TOK_IDENT) && p.tok.Value == "length" {
				end := p.tok
				p.next()
				expr = ast.NewArrayLength(report.Over(expr.Span(), end.Span), expr)
				continue
			}
			method := p.expect(TOK_IDENT)
			p.expect(TOK_LPAREN)
			var args []ast.Expr
			if !p.got(TOK_RPAREN) {
				args = append(args, p.parseExpr())
				for p.got(TOK_COMMA) {
					p.next()
					args = append(args, p.parseExpr())
				}
			}
			end := p.expect(TOK_RPAREN)
			expr = ast.NewMethodCall(report.Over(expr.Span(), end.Span), expr, method.Value, method.Span, args)
		case p.got(TOK_LBRACKET):
			p.next()
			index := p.parseExpr()
			end := p.expect(TOK_RBRACKET)
			expr = ast.NewArrayIndex(report.Over(expr.Span(), end.Span), expr, index)
		default:
			return expr
		}
	}
}

// Primary -> IntLit | true | false | this | Identifier | new int [ Expr ]
//          | new Identifier ( ) | ( Expr )
func (p *Parser) parsePrimary() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		tok := p.tok
		p.next()
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			panic(report.Raise(tok.Span, "invalid integer literal: %s", tok.Value))
		}
		return ast.NewIntLit(tok.Span, n)
	case TOK_TRUE:
		tok := p.tok
		p.next()
		return ast.NewBoolLit(tok.Span, true)
	case TOK_FALSE:
		tok := p.tok
		p.next()
		return ast.NewBoolLit(tok.Span, false)
	case TOK_THIS:
		tok := p.tok
		p.next()
		return ast.NewThis(tok.Span)
	case TOK_IDENT:
		tok := p.tok
		p.next()
		return ast.NewIdentifierUse(tok.Span, tok.Value)
	case TOK_NEW:
		return p.parseNew()
	case TOK_LPAREN:
		start := p.tok
		p.next()
		inner := p.parseExpr()
		end := p.expect(TOK_RPAREN)
		return ast.NewParen(report.Over(start.Span, end.Span), inner)
	default:
		panic(report.Raise(p.tok.Span, "expected an expression; found %s", p.describeCurrent()))
	}
}

// New -> new int [ Expr ] | new Identifier ( )
func (p *Parser) parseNew() ast.Expr {
	start := p.expect(TOK_NEW)

	if p.got(TOK_INT) {
		p.next()
		p.expect(TOK_LBRACKET)
		size := p.parseExpr()
		end := p.expect(TOK_RBRACKET)
		return ast.NewNewIntArray(report.Over(start.Span, end.Span), size)
	}

	name := p.expect(TOK_IDENT)
	p.expect(TOK_LPAREN)
	end := p.expect(TOK_RPAREN)
	return ast.NewNewObject(report.Over(start.Span, end.Span), name.Value)
}
