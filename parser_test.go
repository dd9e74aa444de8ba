package avon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	node, err := Parse(src)
	require.Nil(t, err, "unexpected parse error: %v", err)
	return node
}

func TestParseArithmeticPrecedence(t *testing.T) {
	node := mustParse(t, "1 + 2 * 3")
	bin, ok := node.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	rhs, ok := bin.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	node := mustParse(t, "2 ** 3 ** 2")
	bin := node.(*BinaryExpr)
	assert.Equal(t, "**", bin.Op)
	_, leftIsBinary := bin.Left.(*BinaryExpr)
	assert.False(t, leftIsBinary)
	_, rightIsBinary := bin.Right.(*BinaryExpr)
	assert.True(t, rightIsBinary)
}

func TestParseCurriedApplication(t *testing.T) {
	node := mustParse(t, "add 1 2")
	outer, ok := node.(*AppExpr)
	require.True(t, ok)
	inner, ok := outer.Fn.(*AppExpr)
	require.True(t, ok)
	_, ok = inner.Fn.(*IdentExpr)
	require.True(t, ok)
}

func TestParsePipelineDesugarsToApplication(t *testing.T) {
	node := mustParse(t, "5 |> double")
	app, ok := node.(*AppExpr)
	require.True(t, ok)
	fn, ok := app.Fn.(*IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "double", fn.Name)
	arg, ok := app.Arg.(*IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), arg.Value)
}

func TestParseMultiParamLambdaDesugars(t *testing.T) {
	node := mustParse(t, `\x \y x + y`)
	outer, ok := node.(*LambdaExpr)
	require.True(t, ok)
	assert.Equal(t, "x", outer.Param)
	inner, ok := outer.Body.(*LambdaExpr)
	require.True(t, ok)
	assert.Equal(t, "y", inner.Param)
}

func TestParseMatchWithListPatternAndRest(t *testing.T) {
	node := mustParse(t, `match xs | [] -> 0 | [head, ...rest] -> head`)
	m, ok := node.(*MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
	lp, ok := m.Arms[1].Pattern.(ListPattern)
	require.True(t, ok)
	require.Len(t, lp.Elems, 1)
	assert.True(t, lp.HasRest)
	assert.Equal(t, "rest", lp.Rest)
}

func TestParseFileTemplateLiteral(t *testing.T) {
	node := mustParse(t, `@greet.txt {{ "hello, " }}{{ name }}`)
	ft, ok := node.(*FileTemplateExpr)
	require.True(t, ok)
	assert.Equal(t, "greet.txt", ft.Path)
	var exprSegs int
	for _, seg := range ft.Segments {
		if seg.IsExpr {
			exprSegs++
		}
	}
	assert.Equal(t, 2, exprSegs)
}

func TestParseUnaryBindsLooserThanApplication(t *testing.T) {
	node := mustParse(t, "-f x")
	unary, ok := node.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, "-", unary.Op)
	_, ok = unary.Operand.(*AppExpr)
	assert.True(t, ok)
}
