package avon

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/avon-lang/avon/diag"
)

func intArg(fnName string, v *Value, line, col int) (int64, *diag.Diagnostic) {
	if v.Kind != KindInt {
		return 0, typeError(line, col, fnName, "Int", v)
	}
	return v.Int, nil
}

func numArg(fnName string, v *Value, line, col int) (float64, *diag.Diagnostic) {
	if !isNumeric(v) {
		return 0, typeError(line, col, fnName, "Int or Float", v)
	}
	return asFloat(v), nil
}

// baseFormatter registers one of the integer-radix formatters
// (format_hex, format_octal, format_binary).
func baseFormatter(name string, base int) {
	register(arityDef(name, 1, "formatting", name+" n: render an integer in base "+strconv.Itoa(base)+".", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		n, err := intArg(name, args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strconv.FormatInt(n, base)), nil
	}))
}

func init() {
	register(arityDef("format_int", 2, "formatting", "format_int n width: zero-pad an integer to a minimum width.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		n, err := intArg("format_int", args[0], line, col)
		if err != nil {
			return nil, err
		}
		width, err := intArg("format_int", args[1], line, col)
		if err != nil {
			return nil, err
		}
		s := strconv.FormatInt(n, 10)
		neg := strings.HasPrefix(s, "-")
		if neg {
			s = s[1:]
		}
		sign := 0
		if neg {
			sign = 1
		}
		for int64(len(s)+sign) < width {
			s = "0" + s
		}
		if neg {
			s = "-" + s
		}
		return VString(s), nil
	}))

	register(arityDef("format_float", 2, "formatting", "format_float x places: render a number with a fixed number of decimal places.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("format_float", args[0], line, col)
		if err != nil {
			return nil, err
		}
		places, err := intArg("format_float", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strconv.FormatFloat(x, 'f', int(places), 64)), nil
	}))

	baseFormatter("format_hex", 16)
	baseFormatter("format_octal", 8)
	baseFormatter("format_binary", 2)

	register(arityDef("format_scientific", 2, "formatting", "format_scientific x places: scientific notation like 1.23e4.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("format_scientific", args[0], line, col)
		if err != nil {
			return nil, err
		}
		places, err := intArg("format_scientific", args[1], line, col)
		if err != nil {
			return nil, err
		}
		s := strconv.FormatFloat(x, 'e', int(places), 64)
		// Go renders "1.23e+04"; the compact form drops the plus sign
		// and any leading zeros in the exponent.
		if i := strings.IndexByte(s, 'e'); i >= 0 {
			mantissa, exp := s[:i], s[i+1:]
			sign := ""
			if exp[0] == '+' || exp[0] == '-' {
				if exp[0] == '-' {
					sign = "-"
				}
				exp = exp[1:]
			}
			exp = strings.TrimLeft(exp, "0")
			if exp == "" {
				exp = "0"
			}
			s = mantissa + "e" + sign + exp
		}
		return VString(s), nil
	}))

	register(arityDef("format_bytes", 1, "formatting", "format_bytes n: human-readable size in binary units (1 KB = 1024 bytes).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("format_bytes", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if x < 1024 {
			return VString(strconv.FormatInt(int64(x), 10) + " B"), nil
		}
		units := []string{"KB", "MB", "GB", "TB", "PB"}
		v := x
		unit := ""
		for _, u := range units {
			v /= 1024
			unit = u
			if v < 1024 {
				break
			}
		}
		return VString(strconv.FormatFloat(v, 'f', 2, 64) + " " + unit), nil
	}))

	register(arityDef("format_currency", 2, "formatting", "format_currency amount symbol: symbol-prefixed amount with two decimal places.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		amount, err := numArg("format_currency", args[0], line, col)
		if err != nil {
			return nil, err
		}
		symbol, err := coerceStr("format_currency", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(symbol + strconv.FormatFloat(amount, 'f', 2, 64)), nil
	}))

	register(arityDef("format_percent", 2, "formatting", "format_percent x places: x times 100 with a percent sign (0.5 -> \"50%\").", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("format_percent", args[0], line, col)
		if err != nil {
			return nil, err
		}
		places, err := intArg("format_percent", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strconv.FormatFloat(x*100, 'f', int(places), 64) + "%"), nil
	}))

	register(arityDef("format_bool", 2, "formatting", "format_bool b spec: pick and capitalise from a \"trueText/falseText\" spec.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindBool {
			return nil, typeError(line, col, "format_bool", "Bool", args[0])
		}
		spec, err := coerceStr("format_bool", args[1], line, col)
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(spec, "/", 2)
		if len(parts) != 2 {
			return nil, diag.New(diag.Eval, line, col, "format_bool: spec must be \"trueText/falseText\", got %q", spec)
		}
		picked := parts[1]
		if args[0].Bool {
			picked = parts[0]
		}
		return VString(capitalise(picked)), nil
	}))

	register(arityDef("format_list", 2, "formatting", "format_list list sep: join elements with sep, converting each like to_string.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindList {
			return nil, typeError(line, col, "format_list", "List", args[0])
		}
		sep, err := coerceStr("format_list", args[1], line, col)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(args[0].List))
		for i, v := range args[0].List {
			parts[i] = v.ToDisplayString()
		}
		return VString(strings.Join(parts, sep)), nil
	}))

	register(arityDef("format_table", 2, "formatting", "format_table data sep: rows of a 2D List (or a Dict's key-value pairs) joined by sep, one row per line.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		sep, err := coerceStr("format_table", args[1], line, col)
		if err != nil {
			return nil, err
		}
		var lines []string
		switch args[0].Kind {
		case KindList:
			for i, row := range args[0].List {
				if row.Kind != KindList {
					return nil, diag.New(diag.Eval, line, col, "format_table: row %d is not a List", i)
				}
				cells := make([]string, len(row.List))
				for j, c := range row.List {
					cells[j] = c.ToDisplayString()
				}
				lines = append(lines, strings.Join(cells, sep))
			}
		case KindDict:
			args[0].Dict.Each(func(k string, v *Value) {
				lines = append(lines, k+sep+v.ToDisplayString())
			})
		default:
			return nil, typeError(line, col, "format_table", "List of Lists or Dict", args[0])
		}
		return VString(strings.Join(lines, "\n")), nil
	}))

	register(arityDef("format_csv", 1, "formatting", "format_csv data: CSV text from a List of Dicts (header row from the first dict) or a List of Lists (no header).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindList {
			return nil, typeError(line, col, "format_csv", "List", args[0])
		}
		rows := args[0].List
		var sb strings.Builder
		w := csv.NewWriter(&sb)
		if len(rows) > 0 && rows[0].Kind == KindDict {
			headers := rows[0].Dict.Keys()
			if err := w.Write(headers); err != nil {
				return nil, diag.New(diag.Eval, line, col, "format_csv: %s", err.Error())
			}
			for i, row := range rows {
				if row.Kind != KindDict {
					return nil, diag.New(diag.Eval, line, col, "format_csv: row %d is not a Dict", i)
				}
				cells := make([]string, len(headers))
				for j, h := range headers {
					if v, ok := row.Dict.Get(h); ok {
						cells[j] = v.ToDisplayString()
					}
				}
				if err := w.Write(cells); err != nil {
					return nil, diag.New(diag.Eval, line, col, "format_csv: %s", err.Error())
				}
			}
		} else {
			for i, row := range rows {
				if row.Kind != KindList {
					return nil, diag.New(diag.Eval, line, col, "format_csv: row %d is not a List", i)
				}
				cells := make([]string, len(row.List))
				for j, c := range row.List {
					cells[j] = c.ToDisplayString()
				}
				if err := w.Write(cells); err != nil {
					return nil, diag.New(diag.Eval, line, col, "format_csv: %s", err.Error())
				}
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, diag.New(diag.Eval, line, col, "format_csv: %s", err.Error())
		}
		return VString(sb.String()), nil
	}))
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
