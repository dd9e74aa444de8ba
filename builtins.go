package avon

import (
	"github.com/avon-lang/avon/diag"
)

// BuiltinFn is the implementation of a builtin once all of its
// arguments have been accumulated through currying.
type BuiltinFn func(args []*Value, line, col int) (*Value, *diag.Diagnostic)

// BuiltinDef describes one entry in the builtin registry: its name (as
// written in source), how many arguments it needs before Fn runs, the
// doc category it belongs to (used by `avon doc`, mirroring the
// category grouping in original_source/src/cli/docs.rs), and its
// implementation.
type BuiltinDef struct {
	Name     string
	Arity    int
	Category string
	Doc      string
	Fn       BuiltinFn
}

// registry holds every builtin, keyed by name. Populated by the
// register calls in each builtins_*.go file's init.
var registry = map[string]*BuiltinDef{}

func register(def *BuiltinDef) {
	if _, exists := registry[def.Name]; exists {
		panic("avon: duplicate builtin registered: " + def.Name)
	}
	registry[def.Name] = def
}

// applyBuiltin accumulates arg onto a partially-applied builtin call,
// invoking the underlying BuiltinFn once arity is satisfied. Mirrors
// Function currying in eval.go's Apply exactly.
func applyBuiltin(call *BuiltinCall, arg *Value, line, col int) (*Value, *diag.Diagnostic) {
	args := make([]*Value, 0, len(call.Args)+1)
	args = append(args, call.Args...)
	args = append(args, arg)
	if len(args) < call.Def.Arity {
		return VBuiltin(call.Def, args), nil
	}
	return call.Def.Fn(args, line, col)
}

// NewGlobalEnv builds the root environment with every registered
// builtin bound to its name, plus any CLI-supplied named arguments
// merged in on top (CLI bindings shadow builtins of the same name).
func NewGlobalEnv(cliArgs map[string]*Value) *Env {
	root := NewRootEnv()
	for name, def := range registry {
		if def.Arity == 0 {
			// Zero-arity builtins (e.g. now) are evaluated once, at
			// startup, and bound as an ordinary value: avon has no unit
			// type to "call" them with, and no builtin observes time
			// other than by being looked up.
			v, err := def.Fn(nil, 0, 0)
			if err != nil {
				// No zero-arity builtin can fail (they read the clock,
				// process state or a random source); an unbound name on
				// first use is a clearer failure than aborting env
				// construction here.
				continue
			}
			root.Define(name, v)
			continue
		}
		root.Define(name, VBuiltin(def, nil))
	}
	for name, v := range cliArgs {
		root.Define(name, v)
	}
	return root
}

// ListBuiltins returns every registered builtin's definition, used by
// the `avon doc` command and the LSP adaptor's completion list.
func ListBuiltins() []*BuiltinDef {
	out := make([]*BuiltinDef, 0, len(registry))
	for _, def := range registry {
		out = append(out, def)
	}
	return out
}

func typeError(line, col int, builtin, want string, got *Value) *diag.Diagnostic {
	return diag.New(diag.Eval, line, col, "%s: expected %s, got %s", builtin, want, got.TypeName())
}

func arityDef(name string, arity int, category, doc string, fn BuiltinFn) *BuiltinDef {
	return &BuiltinDef{Name: name, Arity: arity, Category: category, Doc: doc, Fn: fn}
}
