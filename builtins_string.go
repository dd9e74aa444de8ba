package avon

import (
	"strings"
	"unicode"

	"github.com/avon-lang/avon/diag"
)

// coerceStr implements the "String functions also accept Template"
// rule: a Template is rendered through the same textual coercion as
// to_string before the string builtin runs. Anything else is a type
// error reported against fnName.
func coerceStr(fnName string, v *Value, line, col int) (string, *diag.Diagnostic) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindTemplate:
		return v.ToDisplayString(), nil
	}
	return "", typeError(line, col, fnName, "String or Template", v)
}

func init() {
	register(arityDef("concat", 2, "string", "concat a b: concatenate two strings.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		a, err := coerceStr("concat", args[0], line, col)
		if err != nil {
			return nil, err
		}
		b, err := coerceStr("concat", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(a + b), nil
	}))

	register(arityDef("split", 2, "string", "split sep s: split s on every occurrence of sep.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		sep, err := coerceStr("split", args[0], line, col)
		if err != nil {
			return nil, err
		}
		s, err := coerceStr("split", args[1], line, col)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		out := make([]*Value, len(parts))
		for i, p := range parts {
			out[i] = VString(p)
		}
		return VList(out), nil
	}))

	register(arityDef("join", 2, "string", "join sep list: join a list of strings with sep.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		sep, err := coerceStr("join", args[0], line, col)
		if err != nil {
			return nil, err
		}
		list := args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "join", "List", list)
		}
		parts := make([]string, len(list.List))
		for i, v := range list.List {
			p, err := coerceStr("join", v, line, col)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return VString(strings.Join(parts, sep)), nil
	}))

	register(arityDef("trim", 1, "string", "trim s: remove leading/trailing whitespace.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("trim", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.TrimSpace(s)), nil
	}))

	register(arityDef("upper", 1, "string", "upper s: uppercase a string.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("upper", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.ToUpper(s)), nil
	}))

	register(arityDef("lower", 1, "string", "lower s: lowercase a string.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("lower", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.ToLower(s)), nil
	}))

	register(arityDef("replace", 3, "string", "replace old new s: replace every occurrence of old with new in s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		oldS, err := coerceStr("replace", args[0], line, col)
		if err != nil {
			return nil, err
		}
		newS, err := coerceStr("replace", args[1], line, col)
		if err != nil {
			return nil, err
		}
		s, err := coerceStr("replace", args[2], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.ReplaceAll(s, oldS, newS)), nil
	}))

	register(arityDef("contains", 2, "string", "contains needle s: true if s contains needle.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		needle, err := coerceStr("contains", args[0], line, col)
		if err != nil {
			return nil, err
		}
		s, err := coerceStr("contains", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VBool(strings.Contains(s, needle)), nil
	}))

	register(arityDef("starts_with", 2, "string", "starts_with prefix s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		prefix, err := coerceStr("starts_with", args[0], line, col)
		if err != nil {
			return nil, err
		}
		s, err := coerceStr("starts_with", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VBool(strings.HasPrefix(s, prefix)), nil
	}))

	register(arityDef("ends_with", 2, "string", "ends_with suffix s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		suffix, err := coerceStr("ends_with", args[0], line, col)
		if err != nil {
			return nil, err
		}
		s, err := coerceStr("ends_with", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VBool(strings.HasSuffix(s, suffix)), nil
	}))

	register(arityDef("is_empty", 1, "string", "is_empty s: true for the empty string (the one predicate that returns true on empty).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("is_empty", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VBool(s == ""), nil
	}))

	register(arityDef("length", 1, "string", "length x: length of a String, List or Dict.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		switch args[0].Kind {
		case KindString:
			return VInt(int64(len([]rune(args[0].Str)))), nil
		case KindTemplate:
			return VInt(int64(len([]rune(args[0].ToDisplayString())))), nil
		case KindList:
			return VInt(int64(len(args[0].List))), nil
		case KindDict:
			return VInt(int64(args[0].Dict.Len())), nil
		}
		return nil, typeError(line, col, "length", "String, List or Dict", args[0])
	}))

	register(arityDef("to_string", 1, "string", "to_string x: convert any value to its textual form.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(args[0].ToDisplayString()), nil
	}))

	register(arityDef("chars", 1, "string", "chars s: split s into single-character strings.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("chars", args[0], line, col)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		out := make([]*Value, len(runes))
		for i, r := range runes {
			out[i] = VString(string(r))
		}
		return VList(out), nil
	}))

	register(arityDef("char_at", 2, "string", "char_at s i: the character at code-point index i, or None if out of range.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("char_at", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindInt {
			return nil, typeError(line, col, "char_at", "Int", args[1])
		}
		runes := []rune(s)
		i := args[1].Int
		if i < 0 || i >= int64(len(runes)) {
			return VNone(), nil
		}
		return VString(string(runes[i])), nil
	}))

	register(arityDef("repeat", 2, "string", "repeat s n: concatenate n copies of s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("repeat", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindInt {
			return nil, typeError(line, col, "repeat", "Int", args[1])
		}
		if args[1].Int < 0 {
			return nil, diag.New(diag.Eval, line, col, "repeat: count must be non-negative, got %d", args[1].Int)
		}
		return VString(strings.Repeat(s, int(args[1].Int))), nil
	}))

	register(arityDef("pad_left", 3, "string", "pad_left s width pad: prepend pad until s reaches width code points.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return padString("pad_left", args, line, col, true)
	}))

	register(arityDef("pad_right", 3, "string", "pad_right s width pad: append pad until s reaches width code points.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return padString("pad_right", args, line, col, false)
	}))

	register(arityDef("indent", 2, "string", "indent s n: prefix every non-empty line of s with n spaces.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("indent", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindInt || args[1].Int < 0 {
			return nil, typeError(line, col, "indent", "non-negative Int", args[1])
		}
		prefix := strings.Repeat(" ", int(args[1].Int))
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			if l != "" {
				lines[i] = prefix + l
			}
		}
		return VString(strings.Join(lines, "\n")), nil
	}))

	register(arityDef("center", 2, "string", "center s width: center s within width using spaces.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("center", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindInt {
			return nil, typeError(line, col, "center", "Int", args[1])
		}
		width := int(args[1].Int)
		n := len([]rune(s))
		if n >= width {
			return VString(s), nil
		}
		left := (width - n) / 2
		right := width - n - left
		return VString(strings.Repeat(" ", left) + s + strings.Repeat(" ", right)), nil
	}))

	register(arityDef("truncate", 2, "string", "truncate s max: cut s to max code points, ending in \"...\" when cut.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("truncate", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindInt {
			return nil, typeError(line, col, "truncate", "Int", args[1])
		}
		max := int(args[1].Int)
		runes := []rune(s)
		if len(runes) <= max {
			return VString(s), nil
		}
		if max <= 3 {
			return VString(string(runes[:max])), nil
		}
		return VString(string(runes[:max-3]) + "..."), nil
	}))

	register(arityDef("slice", 3, "string", "slice x start end: the sub-string or sub-list in [start, end).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		start, end := args[1], args[2]
		if start.Kind != KindInt || end.Kind != KindInt {
			return nil, typeError(line, col, "slice", "Int", start)
		}
		switch args[0].Kind {
		case KindString, KindTemplate:
			s, err := coerceStr("slice", args[0], line, col)
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			lo, hi := clampRange(start.Int, end.Int, len(runes))
			return VString(string(runes[lo:hi])), nil
		case KindList:
			lo, hi := clampRange(start.Int, end.Int, len(args[0].List))
			return VList(append([]*Value{}, args[0].List[lo:hi]...)), nil
		}
		return nil, typeError(line, col, "slice", "String or List", args[0])
	}))

	register(arityDef("lines", 1, "string", "lines s: split s into lines, normalising CRLF endings.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("lines", args[0], line, col)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		var out []*Value
		if text != "" {
			for _, l := range strings.Split(text, "\n") {
				out = append(out, VString(l))
			}
		}
		return VList(out), nil
	}))

	register(arityDef("words", 1, "string", "words s: split s on runs of whitespace.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("words", args[0], line, col)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(s)
		out := make([]*Value, len(fields))
		for i, w := range fields {
			out[i] = VString(w)
		}
		return VList(out), nil
	}))

	register(arityDef("unwords", 1, "string", "unwords list: join strings with single spaces.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return joinWith("unwords", args[0], " ", line, col)
	}))

	register(arityDef("unlines", 1, "string", "unlines list: join strings with newlines.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return joinWith("unlines", args[0], "\n", line, col)
	}))

	charClass("is_alpha", "every character is a letter", unicode.IsLetter)
	charClass("is_digit", "every character is a decimal digit", unicode.IsDigit)
	charClass("is_alphanumeric", "every character is a letter or digit", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	charClass("is_lowercase", "every cased character is lowercase", func(r rune) bool {
		return !unicode.IsUpper(r)
	})
	charClass("is_uppercase", "every cased character is uppercase", func(r rune) bool {
		return !unicode.IsLower(r)
	})
	charClass("is_whitespace", "every character is whitespace", unicode.IsSpace)
}

// charClass registers a string predicate that is true only when s is
// non-empty and pred holds for every code point; the empty string is
// false for every predicate in this family.
func charClass(name, doc string, pred func(rune) bool) {
	register(arityDef(name, 1, "string", name+" s: "+doc+".", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr(name, args[0], line, col)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return VBool(false), nil
		}
		for _, r := range s {
			if !pred(r) {
				return VBool(false), nil
			}
		}
		return VBool(true), nil
	}))
}

func joinWith(name string, list *Value, sep string, line, col int) (*Value, *diag.Diagnostic) {
	if list.Kind != KindList {
		return nil, typeError(line, col, name, "List", list)
	}
	parts := make([]string, len(list.List))
	for i, v := range list.List {
		s, err := coerceStr(name, v, line, col)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return VString(strings.Join(parts, sep)), nil
}

func padString(name string, args []*Value, line, col int, left bool) (*Value, *diag.Diagnostic) {
	s, err := coerceStr(name, args[0], line, col)
	if err != nil {
		return nil, err
	}
	if args[1].Kind != KindInt {
		return nil, typeError(line, col, name, "Int", args[1])
	}
	pad, err := coerceStr(name, args[2], line, col)
	if err != nil {
		return nil, err
	}
	if pad == "" {
		return nil, diag.New(diag.Eval, line, col, "%s: pad string must not be empty", name)
	}
	width := int(args[1].Int)
	runes := []rune(s)
	padRunes := []rune(pad)
	var filled []rune
	for len(runes)+len(filled) < width {
		filled = append(filled, padRunes[len(filled)%len(padRunes)])
	}
	if left {
		return VString(string(filled) + s), nil
	}
	return VString(s + string(filled)), nil
}

func clampRange(start, end int64, n int) (int, int) {
	lo, hi := int(start), int(end)
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
