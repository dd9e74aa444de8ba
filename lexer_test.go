package avon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexBasicTokens(t *testing.T) {
	toks, err := Lex(`let x = 1 + 2 in x`)
	require.Nil(t, err)
	var kinds []TokenType
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenType{
		TokenKeyword, TokenIdent, TokenAssign, TokenInt, TokenPlus, TokenInt,
		TokenKeyword, TokenIdent, TokenEOF,
	}, kinds)
}

func TestLexErrorReportsPosition(t *testing.T) {
	_, err := Lex("let x = $")
	require.NotNil(t, err)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 9, err.Column)
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`"unterminated`)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "unterminated string")
}

func TestLexFileTemplateBody(t *testing.T) {
	toks, err := Lex(`@greet.txt {{ "hello, " }}{{ name }}`)
	require.Nil(t, err)
	var kinds []TokenType
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, TokenPipe2)
	assert.Contains(t, kinds, TokenPipe2End)
	assert.Contains(t, kinds, TokenTemplateEnd)
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`"a\nb\tc\"d"`)
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\tc\"d", toks[0].Val)
}
