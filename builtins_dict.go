package avon

import (
	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("get", 2, "dict", "get key dict: look up key, returning None if absent.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		key, dict := args[0], args[1]
		if key.Kind != KindString {
			return nil, typeError(line, col, "get", "String key", key)
		}
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "get", "Dict", dict)
		}
		if v, ok := dict.Dict.Get(key.Str); ok {
			return v, nil
		}
		return VNone(), nil
	}))

	register(arityDef("set", 3, "dict", "set key val dict: return a new dict with key bound to val.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		key, val, dict := args[0], args[1], args[2]
		if key.Kind != KindString {
			return nil, typeError(line, col, "set", "String key", key)
		}
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "set", "Dict", dict)
		}
		return VDict(dict.Dict.Set(key.Str, val)), nil
	}))

	register(arityDef("has_key", 2, "dict", "has_key key dict.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		key, dict := args[0], args[1]
		if key.Kind != KindString {
			return nil, typeError(line, col, "has_key", "String key", key)
		}
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "has_key", "Dict", dict)
		}
		_, ok := dict.Dict.Get(key.Str)
		return VBool(ok), nil
	}))

	register(arityDef("keys", 1, "dict", "keys dict: a list of keys in insertion order.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		dict := args[0]
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "keys", "Dict", dict)
		}
		ks := dict.Dict.Keys()
		out := make([]*Value, len(ks))
		for i, k := range ks {
			out[i] = VString(k)
		}
		return VList(out), nil
	}))

	register(arityDef("values", 1, "dict", "values dict: a list of values in insertion order.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		dict := args[0]
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "values", "Dict", dict)
		}
		var out []*Value
		dict.Dict.Each(func(_ string, v *Value) { out = append(out, v) })
		return VList(out), nil
	}))

	register(arityDef("dict_merge", 2, "dict", "dict_merge a b: merge two dicts, b's keys win on conflict.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		a, b := args[0], args[1]
		if a.Kind != KindDict {
			return nil, typeError(line, col, "dict_merge", "Dict", a)
		}
		if b.Kind != KindDict {
			return nil, typeError(line, col, "dict_merge", "Dict", b)
		}
		return VDict(a.Dict.Merge(b.Dict)), nil
	}))

	register(arityDef("remove_key", 2, "dict", "remove_key key dict: drop key if present.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		key, dict := args[0], args[1]
		if key.Kind != KindString {
			return nil, typeError(line, col, "remove_key", "String key", key)
		}
		if dict.Kind != KindDict {
			return nil, typeError(line, col, "remove_key", "Dict", dict)
		}
		nd := NewOrderedDict()
		dict.Dict.Each(func(k string, v *Value) {
			if k != key.Str {
				nd = nd.Set(k, v)
			}
		})
		return VDict(nd), nil
	}))
}
