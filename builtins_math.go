package avon

import (
	"math"

	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("abs", 1, "math", "abs x.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		switch args[0].Kind {
		case KindInt:
			v := args[0].Int
			if v < 0 {
				v = -v
			}
			return VInt(v), nil
		case KindFloat:
			return VFloat(math.Abs(args[0].Float)), nil
		}
		return nil, typeError(line, col, "abs", "Int or Float", args[0])
	}))

	register(arityDef("neg", 1, "math", "neg x: flip a number's sign.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		switch args[0].Kind {
		case KindInt:
			return VInt(-args[0].Int), nil
		case KindFloat:
			return VFloat(-args[0].Float), nil
		}
		return nil, typeError(line, col, "neg", "Int or Float", args[0])
	}))

	register(arityDef("min", 1, "math", "min list: smallest element, None on empty.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "min", "List", list)
		}
		if len(list.List) == 0 {
			return VNone(), nil
		}
		best := list.List[0]
		for _, v := range list.List[1:] {
			r, ok := Compare(best, v)
			if !ok {
				return nil, diag.New(diag.Eval, line, col, "min: ordering is undefined between %s and %s", best.TypeName(), v.TypeName())
			}
			if r > 0 {
				best = v
			}
		}
		return best, nil
	}))

	register(arityDef("max", 1, "math", "max list: largest element, None on empty.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "max", "List", list)
		}
		if len(list.List) == 0 {
			return VNone(), nil
		}
		best := list.List[0]
		for _, v := range list.List[1:] {
			r, ok := Compare(best, v)
			if !ok {
				return nil, diag.New(diag.Eval, line, col, "max: ordering is undefined between %s and %s", best.TypeName(), v.TypeName())
			}
			if r < 0 {
				best = v
			}
		}
		return best, nil
	}))

	register(arityDef("floor", 1, "math", "floor x: Float -> Int.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if !isNumeric(args[0]) {
			return nil, typeError(line, col, "floor", "Int or Float", args[0])
		}
		return VInt(int64(math.Floor(asFloat(args[0])))), nil
	}))

	register(arityDef("ceil", 1, "math", "ceil x: Float -> Int.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if !isNumeric(args[0]) {
			return nil, typeError(line, col, "ceil", "Int or Float", args[0])
		}
		return VInt(int64(math.Ceil(asFloat(args[0])))), nil
	}))

	register(arityDef("round", 1, "math", "round x: Float -> Int, ties away from zero.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if !isNumeric(args[0]) {
			return nil, typeError(line, col, "round", "Int or Float", args[0])
		}
		return VInt(int64(math.Round(asFloat(args[0])))), nil
	}))

	register(arityDef("sqrt", 1, "math", "sqrt x.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if !isNumeric(args[0]) {
			return nil, typeError(line, col, "sqrt", "Int or Float", args[0])
		}
		if asFloat(args[0]) < 0 {
			return nil, diag.New(diag.Eval, line, col, "sqrt: negative argument")
		}
		return VFloat(math.Sqrt(asFloat(args[0]))), nil
	}))

	register(arityDef("pow", 2, "math", "pow base exp: exponentiation, same promotion rules as the ** operator.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return arith("**", args[0], args[1], line, col)
	}))

	register(arityDef("gcd", 2, "math", "gcd a b: greatest common divisor of two integers.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		a, err := intArg("gcd", args[0], line, col)
		if err != nil {
			return nil, err
		}
		b, err := intArg("gcd", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VInt(gcdInt(a, b)), nil
	}))

	register(arityDef("lcm", 2, "math", "lcm a b: least common multiple of two integers.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		a, err := intArg("lcm", args[0], line, col)
		if err != nil {
			return nil, err
		}
		b, err := intArg("lcm", args[1], line, col)
		if err != nil {
			return nil, err
		}
		if a == 0 || b == 0 {
			return VInt(0), nil
		}
		l := a / gcdInt(a, b) * b
		if l < 0 {
			l = -l
		}
		return VInt(l), nil
	}))

	register(arityDef("log", 1, "math", "log x: natural logarithm of a positive number.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("log", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if x <= 0 {
			return nil, diag.New(diag.Eval, line, col, "log: argument must be positive")
		}
		return VFloat(math.Log(x)), nil
	}))

	register(arityDef("log10", 1, "math", "log10 x: base-10 logarithm of a positive number.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		x, err := numArg("log10", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if x <= 0 {
			return nil, diag.New(diag.Eval, line, col, "log10: argument must be positive")
		}
		return VFloat(math.Log10(x)), nil
	}))

	register(arityDef("to_int", 1, "math", "to_int x: truncate a Float, or parse a String.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		switch args[0].Kind {
		case KindInt:
			return args[0], nil
		case KindFloat:
			return VInt(int64(args[0].Float)), nil
		case KindString:
			n, err := parseIntLiteral(args[0].Str)
			if err != nil {
				return nil, diag.New(diag.Eval, line, col, "to_int: cannot parse %q as Int", args[0].Str)
			}
			return VInt(n), nil
		}
		return nil, typeError(line, col, "to_int", "Int, Float or String", args[0])
	}))

	register(arityDef("to_float", 1, "math", "to_float x.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		switch args[0].Kind {
		case KindInt:
			return VFloat(float64(args[0].Int)), nil
		case KindFloat:
			return args[0], nil
		case KindString:
			f, err := parseFloatLiteral(args[0].Str)
			if err != nil {
				return nil, diag.New(diag.Eval, line, col, "to_float: cannot parse %q as Float", args[0].Str)
			}
			return VFloat(f), nil
		}
		return nil, typeError(line, col, "to_float", "Int, Float or String", args[0])
	}))
}

func gcdInt(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
