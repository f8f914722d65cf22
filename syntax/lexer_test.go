package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jounaidr/babycino-compiler/report"
)

func lexAll(t *testing.T, text string) []*Token {
	t.Helper()
	src := report.NewSource("<test>", text)
	l := NewLexer(src)
	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func TestLexer_keywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "class Foo extends Bar")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{TOK_CLASS, TOK_IDENT, TOK_EXTENDS, TOK_IDENT, TOK_EOF}, kinds)
	assert.Equal(t, "Foo", toks[1].Value)
}

func TestLexer_andIsTwoCharToken(t *testing.T) {
	toks := lexAll(t, "a && b")
	require.Len(t, toks, 4)
	assert.Equal(t, TOK_AND, toks[1].Kind)
	assert.Equal(t, "&&", toks[1].Value)
}

func TestLexer_intLiteral(t *testing.T) {
	toks := lexAll(t, "12345")
	require.Len(t, toks, 2)
	assert.Equal(t, TOK_INTLIT, toks[0].Kind)
	assert.Equal(t, "12345", toks[0].Value)
}

func TestLexer_skipsLineAndBlockComments(t *testing.T) {
	toks := lexAll(t, "1 // comment\n+ /* skip\nthis */ 2")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{TOK_INTLIT, TOK_PLUS, TOK_INTLIT, TOK_EOF}, kinds)
}

func TestLexer_unterminatedBlockCommentPanics(t *testing.T) {
	src := report.NewSource("<test>", "/* never closes")
	l := NewLexer(src)
	assert.Panics(t, func() { l.NextToken() })
}

func TestLexer_unexpectedCharacterPanics(t *testing.T) {
	src := report.NewSource("<test>", "@")
	l := NewLexer(src)
	assert.Panics(t, func() { l.NextToken() })
}
