package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCleanSourceYieldsNoDiagnostics(t *testing.T) {
	assert.Empty(t, Check(`let x = 1 in x + 1`))
}

func TestCheckReportsZeroBasedPositions(t *testing.T) {
	diags := Check(`let x = "unterminated`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "Lex", d.Stage)
	assert.Equal(t, "avon", d.Source)
	assert.Equal(t, 0, d.Line)
	assert.Equal(t, 8, d.Column)
	assert.Contains(t, d.Message, "unterminated string")
}

func TestCheckReportsEvalErrors(t *testing.T) {
	diags := Check(`missing + 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Eval", diags[0].Stage)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestTokenizeSurvivesValidSource(t *testing.T) {
	toks, d := Tokenize(`1 + 2`)
	require.Nil(t, d)
	assert.NotEmpty(t, toks)
}

func TestCompletionNamesIncludesCoreBuiltins(t *testing.T) {
	names := CompletionNames()
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	for _, want := range []string{"map", "filter", "fold", "get", "set", "to_string"} {
		assert.True(t, set[want], want)
	}
}
