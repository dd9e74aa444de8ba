package avon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avon-lang/avon/diag"
)

func mustEval(t *testing.T, src string) *Value {
	t.Helper()
	node, err := Parse(src)
	require.Nil(t, err, "parse error: %v", err)
	v, evalErr := Eval(node, NewGlobalEnv(nil))
	require.Nil(t, evalErr, "eval error: %v", evalErr)
	return v
}

func TestEvalCurriedSum(t *testing.T) {
	v := mustEval(t, `let add = \x \y x + y in (add 3) 4`)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(7), v.Int)
}

func TestEvalDivisionAlwaysPromotesToFloat(t *testing.T) {
	v := mustEval(t, `4 / 2`)
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, 2.0, v.Float)
}

func TestEvalFloorDivisionYieldsInt(t *testing.T) {
	v := mustEval(t, `-7 // 2`)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(-4), v.Int)
}

func TestEvalPowerStaysIntWhenExact(t *testing.T) {
	v := mustEval(t, `2 ** 10`)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(1024), v.Int)
}

func TestEvalDivisionByZeroErrors(t *testing.T) {
	node, err := Parse(`1 / 0`)
	require.Nil(t, err)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
	assert.Contains(t, evalErr.Message, "division by zero")
}

func TestEvalIfElse(t *testing.T) {
	v := mustEval(t, `if 1 < 2 then "yes" else "no"`)
	assert.Equal(t, "yes", v.Str)
}

func TestEvalMatchWithGuard(t *testing.T) {
	v := mustEval(t, `let n = 4 in match n | x if x > 10 -> "big" | x -> "small"`)
	assert.Equal(t, "small", v.Str)
}

func TestEvalListPatternRest(t *testing.T) {
	v := mustEval(t, `match [1, 2, 3] | [head, ...rest] -> head`)
	assert.Equal(t, int64(1), v.Int)
}

func TestEvalDictSetPreservesPosition(t *testing.T) {
	v := mustEval(t, `set "a" 99 (set "b" 2 (set "a" 1 {}))`)
	require.Equal(t, KindDict, v.Kind)
	assert.Equal(t, []string{"a", "b"}, v.Dict.Keys())
	got, _ := v.Dict.Get("a")
	assert.Equal(t, int64(99), got.Int)
}

func TestEvalFieldAccessMissingKeyIsNone(t *testing.T) {
	v := mustEval(t, `{name: "avon"}.missing`)
	assert.Equal(t, KindNone, v.Kind)
}

func TestEvalPmapMatchesMap(t *testing.T) {
	seq := mustEval(t, `map (\x x * 2) [1, 2, 3, 4, 5]`)
	par := mustEval(t, `pmap (\x x * 2) [1, 2, 3, 4, 5]`)
	eq, err := Equal(seq, par)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestEvalTemplatePlaceholderErrorHasTemplateKind(t *testing.T) {
	node, err := Parse(`@out.txt {{ missing_name }}`)
	require.Nil(t, err)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
	assert.Equal(t, diag.Template, evalErr.Kind)
	assert.Contains(t, evalErr.Message, "missing_name")
}

func TestEvalPfilterMatchesFilter(t *testing.T) {
	seq := mustEval(t, `filter (\x x > 2) [1, 2, 3, 4, 5]`)
	par := mustEval(t, `pfilter (\x x > 2) [1, 2, 3, 4, 5]`)
	eq, err := Equal(seq, par)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestEvalFileTemplateSplicesScope(t *testing.T) {
	v := mustEval(t, `let name = "world" in @greet.txt {{ "hello, " }}{{ name }}`)
	require.Equal(t, KindFileTemplate, v.Kind)
	rendered, err := v.FileTpl.Body.Render()
	require.NoError(t, err)
	assert.Equal(t, "hello, world", rendered)
}
