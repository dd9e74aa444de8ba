package avon

// fromGo converts a decoded Go value (as produced by encoding/json,
// yaml.v3 or BurntSushi/toml) into an avon Value, used by the parsing
// builtins (json_parse, yaml_parse, toml_parse).
func fromGo(v any) *Value {
	switch t := v.(type) {
	case nil:
		return VNone()
	case bool:
		return VBool(t)
	case string:
		return VString(t)
	case int:
		return VInt(int64(t))
	case int64:
		return VInt(t)
	case float64:
		// encoding/json, yaml.v3 and BurntSushi/toml all decode bare
		// numbers as float64/int64 rather than preserving the source
		// token; a whole-valued float64 is treated as Int so that
		// `json_parse (format_json x)` round-trips Int values exactly.
		if t == float64(int64(t)) {
			return VInt(int64(t))
		}
		return VFloat(t)
	case []any:
		out := make([]*Value, len(t))
		for i, e := range t {
			out[i] = fromGo(e)
		}
		return VList(out)
	case map[string]any:
		d := NewOrderedDict()
		for _, k := range sortedMapKeys(t) {
			d = d.Set(k, fromGo(t[k]))
		}
		return VDict(d)
	case map[any]any:
		// yaml.v3 can decode mapping keys as `any` rather than string.
		d := NewOrderedDict()
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			d = d.Set(ks, fromGo(val))
		}
		return VDict(d)
	default:
		return VNone()
	}
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// toGo converts an avon Value back into plain Go data for serializers
// that marshal from interface{} (yaml.v3 Marshal, BurntSushi/toml
// encoder), used by the *_dump builtins.
func toGo(v *Value) any {
	switch v.Kind {
	case KindNone:
		return nil
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = toGo(e)
		}
		return out
	case KindDict:
		out := make(map[string]any, v.Dict.Len())
		v.Dict.Each(func(k string, val *Value) {
			out[k] = toGo(val)
		})
		return out
	default:
		return v.ToDisplayString()
	}
}
