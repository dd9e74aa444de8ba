package avon

import (
	"log/slog"

	"github.com/avon-lang/avon/diag"
)

// debugPassthrough is shared by debug/trace/spy/tap: all four print the
// value's textual form to standard error via slog and hand the value
// back unchanged, per spec §4.5's "Debug builtins never raise" rule.
func debugPassthrough(tag string) BuiltinFn {
	return func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		slog.Info(tag, "value", args[0].ToDisplayString(), "line", line, "column", col)
		return args[0], nil
	}
}

func init() {
	register(arityDef("debug", 1, "debug", "debug x: log x's textual form and return it unchanged.", debugPassthrough("debug")))
	register(arityDef("trace", 1, "debug", "trace x: alias of debug.", debugPassthrough("trace")))
	register(arityDef("spy", 1, "debug", "spy x: alias of debug.", debugPassthrough("spy")))
	register(arityDef("tap", 1, "debug", "tap x: alias of debug.", debugPassthrough("tap")))

	register(arityDef("not", 1, "debug", "not b: logical negation.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindBool {
			return nil, typeError(line, col, "not", "Bool", args[0])
		}
		return VBool(!args[0].Bool), nil
	}))

	register(arityDef("assert", 2, "debug", "assert cond value: return value if cond is true, else raise an error naming value.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		cond, value := args[0], args[1]
		if cond.Kind != KindBool {
			return nil, typeError(line, col, "assert", "Bool", cond)
		}
		if !cond.Bool {
			return nil, diag.New(diag.Eval, line, col, "assertion failed: %s", value.ToDisplayString())
		}
		return value, nil
	}))
}
