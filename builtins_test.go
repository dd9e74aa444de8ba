package avon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCurryingMatchesFunctionCurrying(t *testing.T) {
	v := mustEval(t, `let partial = concat "hello, " in partial "world"`)
	assert.Equal(t, "hello, world", v.Str)
}

func TestBuiltinMapFilterSumPipeline(t *testing.T) {
	v := mustEval(t, `[1,2,3,4] |> map (\x x*x) |> filter (\x x>4) |> sum`)
	assert.Equal(t, int64(25), v.Int)
}

func TestBuiltinListPipeline(t *testing.T) {
	v := mustEval(t, `
		[1, 2, 3, 4, 5]
		|> filter (\x x > 2)
		|> map (\x x * 10)
		|> fold (\acc \x acc + x) 0
	`)
	assert.Equal(t, int64(120), v.Int)
}

func TestBuiltinJSONRoundTripThroughFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	v := mustEval(t, `format_json {a: 1, b: [1, 2, 3]}`)
	require.NoError(t, os.WriteFile(path, []byte(v.Str), 0o644))

	parsed := mustEval(t, `json_parse "`+path+`"`)
	require.Equal(t, KindDict, parsed.Kind)
	a, _ := parsed.Dict.Get("a")
	assert.Equal(t, int64(1), a.Int)
	b, _ := parsed.Dict.Get("b")
	require.Equal(t, KindList, b.Kind)
	require.Len(t, b.List, 3)
}

func TestBuiltinJSONParseMissingFileNamesIt(t *testing.T) {
	node, parseErr := Parse(`json_parse "no-such-file.json"`)
	require.Nil(t, parseErr)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
	assert.Contains(t, evalErr.Message, "no-such-file.json")
}

func TestBuiltinYAMLParseReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\nhosts:\n  - a\n  - b\n"), 0o644))

	v := mustEval(t, `yaml_parse "`+path+`"`)
	require.Equal(t, KindDict, v.Kind)
	port, _ := v.Dict.Get("port")
	assert.Equal(t, int64(8080), port.Int)
	hosts, _ := v.Dict.Get("hosts")
	require.Equal(t, KindList, hosts.Kind)
	require.Len(t, hosts.List, 2)
}

func TestBuiltinCSVParseReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	v := mustEval(t, `csv_parse "`+path+`"`)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 2)
	assert.Equal(t, "a", v.List[0].List[0].Str)
	assert.Equal(t, "2", v.List[1].List[1].Str)
}

func TestBuiltinDateAddAndDiff(t *testing.T) {
	v := mustEval(t, `date_add "2026-08-02T00:00:00Z" "90m"`)
	assert.Equal(t, "2026-08-02T01:30:00Z", v.Str)

	v = mustEval(t, `date_add "2026-08-02T00:00:00Z" "1w"`)
	assert.Equal(t, "2026-08-09T00:00:00Z", v.Str)

	v = mustEval(t, `date_diff "2026-08-02T00:01:00Z" "2026-08-02T00:00:00Z"`)
	assert.Equal(t, int64(60), v.Int)

	node, parseErr := Parse(`date_add "2026-08-02T00:00:00Z" "5q"`)
	require.Nil(t, parseErr)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
	assert.Contains(t, evalErr.Message, "invalid duration")
}

func TestBuiltinGlobMatch(t *testing.T) {
	v := mustEval(t, `glob "*.txt" "report.txt"`)
	assert.True(t, v.Bool)
}

func TestBuiltinSortUsesLanguageOrdering(t *testing.T) {
	v := mustEval(t, `sort [3, 1, 2]`)
	require.Equal(t, KindList, v.Kind)
	assert.Equal(t, int64(1), v.List[0].Int)
	assert.Equal(t, int64(2), v.List[1].Int)
	assert.Equal(t, int64(3), v.List[2].Int)
}

func TestBuiltinMinMaxOnEmptyListReturnNone(t *testing.T) {
	v := mustEval(t, `min []`)
	assert.Equal(t, KindNone, v.Kind)
	v = mustEval(t, `max []`)
	assert.Equal(t, KindNone, v.Kind)
	v = mustEval(t, `min [3, 1, 2]`)
	assert.Equal(t, int64(1), v.Int)
	v = mustEval(t, `max [3, 1, 2]`)
	assert.Equal(t, int64(3), v.Int)
}

func TestBuiltinSumProductOnEmptyList(t *testing.T) {
	v := mustEval(t, `sum []`)
	assert.Equal(t, int64(0), v.Int)
	v = mustEval(t, `product []`)
	assert.Equal(t, int64(1), v.Int)
}

func TestBuiltinIsEmpty(t *testing.T) {
	v := mustEval(t, `is_empty ""`)
	assert.True(t, v.Bool)
	v = mustEval(t, `is_empty "x"`)
	assert.False(t, v.Bool)
}

func TestBuiltinFlatmapAndZipWith(t *testing.T) {
	v := mustEval(t, `flatmap (\x [x, x]) [1, 2]`)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 4)
	assert.Equal(t, int64(1), v.List[0].Int)
	assert.Equal(t, int64(1), v.List[1].Int)

	v = mustEval(t, `zip_with (\a \b a + b) [1, 2, 3] [10, 20]`)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(11), v.List[0].Int)
	assert.Equal(t, int64(22), v.List[1].Int)
}

func TestBuiltinScanWithAndWithoutGroups(t *testing.T) {
	v := mustEval(t, `scan "[0-9]+" "a1 b22"`)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 2)
	assert.Equal(t, "1", v.List[0].Str)
	assert.Equal(t, "22", v.List[1].Str)

	v = mustEval(t, `scan "([a-z]+)=([0-9]+)" "x=1 y=2"`)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 2)
	require.Equal(t, KindList, v.List[0].Kind)
	assert.Equal(t, "x", v.List[0].List[0].Str)
	assert.Equal(t, "1", v.List[0].List[1].Str)
}

func TestBuiltinAssertReturnsValueOrRaises(t *testing.T) {
	v := mustEval(t, `assert true 42`)
	assert.Equal(t, int64(42), v.Int)

	node, parseErr := Parse(`assert false "boom"`)
	require.Nil(t, parseErr)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
}

func TestBuiltinTakeDropSplitAt(t *testing.T) {
	v := mustEval(t, `take 2 [1, 2, 3, 4]`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(2), v.List[1].Int)

	v = mustEval(t, `drop 2 [1, 2, 3, 4]`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(3), v.List[0].Int)

	v = mustEval(t, `take 10 [1, 2]`)
	require.Len(t, v.List, 2)
	v = mustEval(t, `drop 10 [1, 2]`)
	require.Len(t, v.List, 0)

	v = mustEval(t, `split_at 1 [1, 2, 3]`)
	require.Len(t, v.List, 2)
	require.Len(t, v.List[0].List, 1)
	require.Len(t, v.List[1].List, 2)
}

func TestBuiltinPartitionAndEnumerate(t *testing.T) {
	v := mustEval(t, `partition (\x x > 2) [1, 2, 3, 4]`)
	require.Len(t, v.List, 2)
	require.Len(t, v.List[0].List, 2)
	assert.Equal(t, int64(3), v.List[0].List[0].Int)
	require.Len(t, v.List[1].List, 2)
	assert.Equal(t, int64(1), v.List[1].List[0].Int)

	v = mustEval(t, `enumerate ["a", "b"]`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(0), v.List[0].List[0].Int)
	assert.Equal(t, "b", v.List[1].List[1].Str)
}

func TestBuiltinUniqueAndSortBy(t *testing.T) {
	v := mustEval(t, `unique [1, 2, 1, 3, 2]`)
	require.Len(t, v.List, 3)
	assert.Equal(t, int64(1), v.List[0].Int)
	assert.Equal(t, int64(3), v.List[2].Int)

	v = mustEval(t, `sort_by (\d d.age) [{age: 30}, {age: 10}, {age: 20}]`)
	require.Len(t, v.List, 3)
	first, _ := v.List[0].Dict.Get("age")
	assert.Equal(t, int64(10), first.Int)
}

func TestBuiltinUnzipPairs(t *testing.T) {
	v := mustEval(t, `unzip (zip [1, 2] ["a", "b"])`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(1), v.List[0].List[0].Int)
	assert.Equal(t, "b", v.List[1].List[1].Str)
}

func TestBuiltinStringShaping(t *testing.T) {
	v := mustEval(t, `pad_left "7" 3 "0"`)
	assert.Equal(t, "007", v.Str)

	v = mustEval(t, `pad_right "ab" 4 "-"`)
	assert.Equal(t, "ab--", v.Str)

	v = mustEval(t, `center "hi" 6`)
	assert.Equal(t, "  hi  ", v.Str)

	v = mustEval(t, `truncate "hello world" 8`)
	assert.Equal(t, "hello...", v.Str)

	v = mustEval(t, `indent "a\nb" 2`)
	assert.Equal(t, "  a\n  b", v.Str)

	v = mustEval(t, `repeat "ab" 3`)
	assert.Equal(t, "ababab", v.Str)

	v = mustEval(t, `slice "hello" 1 3`)
	assert.Equal(t, "el", v.Str)

	v = mustEval(t, `slice [1, 2, 3, 4] 1 3`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(2), v.List[0].Int)
}

func TestBuiltinCharClassesFalseOnEmpty(t *testing.T) {
	for _, name := range []string{"is_alpha", "is_digit", "is_alphanumeric", "is_lowercase", "is_uppercase", "is_whitespace"} {
		v := mustEval(t, name+` ""`)
		assert.False(t, v.Bool, name)
	}
	assert.True(t, mustEval(t, `is_alpha "abc"`).Bool)
	assert.False(t, mustEval(t, `is_alpha "ab1"`).Bool)
	assert.True(t, mustEval(t, `is_digit "123"`).Bool)
	assert.True(t, mustEval(t, `is_whitespace " \t"`).Bool)
}

func TestBuiltinTypePredicates(t *testing.T) {
	assert.True(t, mustEval(t, `is_int 1`).Bool)
	assert.True(t, mustEval(t, `is_float 1.5`).Bool)
	assert.True(t, mustEval(t, `is_number 1.5`).Bool)
	assert.False(t, mustEval(t, `is_string 1`).Bool)
	assert.True(t, mustEval(t, `is_list []`).Bool)
	assert.True(t, mustEval(t, `is_dict {}`).Bool)
	assert.True(t, mustEval(t, `is_function map`).Bool)
	assert.True(t, mustEval(t, `is_function (\x x)`).Bool)
	assert.False(t, mustEval(t, `to_bool ""`).Bool)
	assert.True(t, mustEval(t, `to_bool [0]`).Bool)
}

func TestBuiltinMarkdownAndHTMLHelpers(t *testing.T) {
	assert.Equal(t, "## Title", mustEval(t, `md_heading 2 "Title"`).Str)
	assert.Equal(t, "[home](https://example.com)", mustEval(t, `md_link "home" "https://example.com"`).Str)
	assert.Equal(t, "`x`", mustEval(t, "md_code \"x\"").Str)
	assert.Equal(t, "- a\n- b", mustEval(t, `md_list ["a", "b"]`).Str)
	assert.Equal(t, `class="a&#34;b"`, mustEval(t, `html_attr "class" "a\"b"`).Str)
	assert.Equal(t, "<p>hi</p>", mustEval(t, `html_tag "p" "hi"`).Str)
}

func TestBuiltinFillTemplateSubstitutesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "email.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello {{name}}! Order {{order_id}} ({{unknown}})"), 0o644))

	v := mustEval(t, `fill_template "`+path+`" {name: "Ada", order_id: 7}`)
	assert.Equal(t, "Hello Ada! Order 7 ({{unknown}})", v.Str)
}

func TestBuiltinPfoldMatchesFold(t *testing.T) {
	seq := mustEval(t, `fold (\acc \x acc + x) 0 (range 0 100)`)
	par := mustEval(t, `pfold (\acc \x acc + x) 0 (range 0 100)`)
	assert.Equal(t, seq.Int, par.Int)

	v := mustEval(t, `pfold (\acc \x acc + x) 0 []`)
	assert.Equal(t, int64(0), v.Int)

	v = mustEval(t, `pfold (\acc \x acc * x) 1 [2, 3, 4]`)
	assert.Equal(t, int64(24), v.Int)
}

func TestBuiltinFormattingNumbers(t *testing.T) {
	assert.Equal(t, "007", mustEval(t, `format_int 7 3`).Str)
	assert.Equal(t, "-07", mustEval(t, `format_int (neg 7) 3`).Str)
	assert.Equal(t, "3.14", mustEval(t, `format_float 3.14159 2`).Str)
	assert.Equal(t, "ff", mustEval(t, `format_hex 255`).Str)
	assert.Equal(t, "100", mustEval(t, `format_octal 64`).Str)
	assert.Equal(t, "1111", mustEval(t, `format_binary 15`).Str)
	assert.Equal(t, "1.23e4", mustEval(t, `format_scientific 12345 2`).Str)
	assert.Equal(t, "4.20e-4", mustEval(t, `format_scientific 0.00042 2`).Str)
	assert.Equal(t, "500 B", mustEval(t, `format_bytes 500`).Str)
	assert.Equal(t, "1.00 KB", mustEval(t, `format_bytes 1024`).Str)
	assert.Equal(t, "$19.99", mustEval(t, `format_currency 19.99 "$"`).Str)
	assert.Equal(t, "85.60%", mustEval(t, `format_percent 0.856 2`).Str)
	assert.Equal(t, "50%", mustEval(t, `format_percent 0.5 0`).Str)
}

func TestBuiltinFormattingStructures(t *testing.T) {
	assert.Equal(t, "Yes", mustEval(t, `format_bool true "yes/no"`).Str)
	assert.Equal(t, "No", mustEval(t, `format_bool false "yes/no"`).Str)
	assert.Equal(t, "a, b, 3", mustEval(t, `format_list ["a", "b", 3] ", "`).Str)
	assert.Equal(t, "Name | Age\nAlice | 30", mustEval(t, `format_table [["Name", "Age"], ["Alice", "30"]] " | "`).Str)
	assert.Equal(t, "name: Alice", mustEval(t, `format_table {name: "Alice"} ": "`).Str)
	assert.Equal(t, "name,age\nAlice,30\nBob,25\n", mustEval(t, `format_csv [{name: "Alice", age: 30}, {name: "Bob", age: 25}]`).Str)
	assert.Equal(t, "Alice,30\n", mustEval(t, `format_csv [["Alice", 30]]`).Str)
}

func TestBuiltinMathExtras(t *testing.T) {
	assert.Equal(t, int64(8), mustEval(t, `pow 2 3`).Int)
	v := mustEval(t, `pow 2 (neg 1)`)
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, 0.5, v.Float)
	assert.Equal(t, int64(4), mustEval(t, `gcd 12 8`).Int)
	assert.Equal(t, int64(1), mustEval(t, `gcd 17 5`).Int)
	assert.Equal(t, int64(12), mustEval(t, `lcm 4 6`).Int)
	assert.Equal(t, 2.0, mustEval(t, `log10 100`).Float)
	assert.Equal(t, 0.0, mustEval(t, `log 1`).Float)
}

func TestBuiltinCombinatorics(t *testing.T) {
	v := mustEval(t, `chunks 2 [1, 2, 3, 4, 5]`)
	require.Len(t, v.List, 3)
	require.Len(t, v.List[2].List, 1)
	assert.Equal(t, int64(5), v.List[2].List[0].Int)

	v = mustEval(t, `windows 2 [1, 2, 3, 4]`)
	require.Len(t, v.List, 3)
	assert.Equal(t, int64(2), v.List[0].List[1].Int)

	v = mustEval(t, `transpose [[1, 2], [3, 4]]`)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(3), v.List[0].List[1].Int)

	v = mustEval(t, `intersperse 0 [1, 2, 3]`)
	require.Len(t, v.List, 5)
	assert.Equal(t, int64(0), v.List[1].Int)

	v = mustEval(t, `combinations 2 [1, 2, 3]`)
	require.Len(t, v.List, 3)
	assert.Equal(t, int64(1), v.List[0].List[0].Int)
	assert.Equal(t, int64(2), v.List[0].List[1].Int)

	v = mustEval(t, `permutations [1, 2, 3]`)
	require.Len(t, v.List, 6)
}

func TestBuiltinListSearchAndGrouping(t *testing.T) {
	assert.Equal(t, int64(3), mustEval(t, `last [1, 2, 3]`).Int)
	assert.Equal(t, KindNone, mustEval(t, `last []`).Kind)

	assert.Equal(t, int64(7), mustEval(t, `find (\x x > 5) [1, 3, 7, 2, 9]`).Int)
	assert.Equal(t, KindNone, mustEval(t, `find (\x x > 100) [1, 2, 3]`).Kind)

	assert.Equal(t, int64(2), mustEval(t, `find_index (\x x > 5) [1, 3, 7, 2, 9]`).Int)
	assert.Equal(t, KindNone, mustEval(t, `find_index (\x x > 100) [1, 2]`).Kind)

	v := mustEval(t, `group_by (\x x // 2) [0, 1, 2, 3, 4]`)
	require.Equal(t, KindDict, v.Kind)
	zero, _ := v.Dict.Get("0")
	require.Len(t, zero.List, 2)
	two, _ := v.Dict.Get("2")
	require.Len(t, two.List, 1)
}

func TestBuiltinLinesAndWords(t *testing.T) {
	v := mustEval(t, `lines "a\r\nb\nc\n"`)
	require.Len(t, v.List, 3)
	assert.Equal(t, "b", v.List[1].Str)

	v = mustEval(t, `words "  hello   world "`)
	require.Len(t, v.List, 2)
	assert.Equal(t, "world", v.List[1].Str)

	assert.Equal(t, "a b", mustEval(t, `unwords ["a", "b"]`).Str)
	assert.Equal(t, "a\nb", mustEval(t, `unlines ["a", "b"]`).Str)
}

func TestBuiltinRegexSplit(t *testing.T) {
	v := mustEval(t, `regex_split "[,;] *" "a, b;c"`)
	require.Len(t, v.List, 3)
	assert.Equal(t, "c", v.List[2].Str)
}

func TestBuiltinRandomShapes(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := mustEval(t, `random_int 1 10`)
		require.Equal(t, KindInt, v.Kind)
		assert.GreaterOrEqual(t, v.Int, int64(1))
		assert.LessOrEqual(t, v.Int, int64(10))
	}

	v := mustEval(t, `random_float 0.0 1.0`)
	require.Equal(t, KindFloat, v.Kind)
	assert.GreaterOrEqual(t, v.Float, 0.0)
	assert.Less(t, v.Float, 1.0)

	v = mustEval(t, `sort (shuffle [3, 1, 2])`)
	require.Len(t, v.List, 3)
	assert.Equal(t, int64(1), v.List[0].Int)

	v = mustEval(t, `sample 2 [1, 2, 3, 4]`)
	require.Len(t, v.List, 2)
	eq, _ := Equal(v.List[0], v.List[1])
	assert.False(t, eq)

	v = mustEval(t, `choice [42]`)
	assert.Equal(t, int64(42), v.Int)

	node, parseErr := Parse(`sample 5 [1, 2]`)
	require.Nil(t, parseErr)
	_, evalErr := Eval(node, NewGlobalEnv(nil))
	require.NotNil(t, evalErr)
}

func TestBuiltinUUIDShape(t *testing.T) {
	v := mustEval(t, `uuid`)
	require.Equal(t, KindString, v.Kind)
	assert.Len(t, v.Str, 36)
	assert.Equal(t, byte('-'), v.Str[8])
}

func TestBuiltinArgsReflectsProgramArgs(t *testing.T) {
	SetProgramArgs([]string{"file1.txt", "file2.txt"})
	defer SetProgramArgs(nil)
	v := mustEval(t, `args`)
	require.Len(t, v.List, 2)
	assert.Equal(t, "file2.txt", v.List[1].Str)
}
