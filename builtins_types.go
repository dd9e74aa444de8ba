package avon

import (
	"strconv"

	"github.com/avon-lang/avon/diag"
)

func parseIntLiteral(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloatLiteral(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func init() {
	register(arityDef("typeof", 1, "types", "typeof x: the value's type name.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(args[0].TypeName()), nil
	}))

	register(arityDef("is_none", 1, "types", "is_none x.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VBool(args[0].Kind == KindNone), nil
	}))

	register(arityDef("format_json", 1, "types", "format_json x: canonical JSON rendering.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(FormatJSON(args[0])), nil
	}))

	register(arityDef("error", 1, "types", "error msg: raise an evaluation error carrying msg.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindString {
			return nil, typeError(line, col, "error", "String", args[0])
		}
		return nil, diag.New(diag.Eval, line, col, "%s", args[0].Str)
	}))

	kindPredicate("is_bool", func(v *Value) bool { return v.Kind == KindBool })
	kindPredicate("is_int", func(v *Value) bool { return v.Kind == KindInt })
	kindPredicate("is_float", func(v *Value) bool { return v.Kind == KindFloat })
	kindPredicate("is_number", isNumeric)
	kindPredicate("is_string", func(v *Value) bool { return v.Kind == KindString })
	kindPredicate("is_list", func(v *Value) bool { return v.Kind == KindList })
	kindPredicate("is_dict", func(v *Value) bool { return v.Kind == KindDict })
	kindPredicate("is_function", func(v *Value) bool {
		return v.Kind == KindFunction || v.Kind == KindBuiltin
	})

	register(arityDef("to_bool", 1, "types", "to_bool x: truthiness of x (empty strings/lists/dicts, zero and None are false).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		v := args[0]
		switch v.Kind {
		case KindBool:
			return v, nil
		case KindNone:
			return VBool(false), nil
		case KindInt:
			return VBool(v.Int != 0), nil
		case KindFloat:
			return VBool(v.Float != 0), nil
		case KindString:
			return VBool(v.Str != ""), nil
		case KindList:
			return VBool(len(v.List) > 0), nil
		case KindDict:
			return VBool(v.Dict.Len() > 0), nil
		}
		return nil, typeError(line, col, "to_bool", "Bool, None, number, String, List or Dict", v)
	}))

	register(arityDef("to_char", 1, "types", "to_char n: the character for Unicode code point n.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindInt {
			return nil, typeError(line, col, "to_char", "Int", args[0])
		}
		n := args[0].Int
		if n < 0 || n > 0x10FFFF {
			return nil, diag.New(diag.Eval, line, col, "to_char: %d is not a valid code point", n)
		}
		return VString(string(rune(n))), nil
	}))

	register(arityDef("to_list", 1, "types", "to_list s: a String as a List of single-character Strings.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindString {
			return nil, typeError(line, col, "to_list", "String", args[0])
		}
		runes := []rune(args[0].Str)
		out := make([]*Value, len(runes))
		for i, r := range runes {
			out[i] = VString(string(r))
		}
		return VList(out), nil
	}))
}

func kindPredicate(name string, pred func(*Value) bool) {
	register(arityDef(name, 1, "types", name+" x.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VBool(pred(args[0])), nil
	}))
}
