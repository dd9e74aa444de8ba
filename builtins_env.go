package avon

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("env_var", 1, "env", "env_var name: the value of an environment variable, or None.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindString {
			return nil, typeError(line, col, "env_var", "String", args[0])
		}
		if v, ok := os.LookupEnv(args[0].Str); ok {
			return VString(v), nil
		}
		return VNone(), nil
	}))

	register(arityDef("env_var_or", 2, "env", "env_var_or name default: like env_var, with a fallback.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		name, def := args[0], args[1]
		if name.Kind != KindString {
			return nil, typeError(line, col, "env_var_or", "String", name)
		}
		if v, ok := os.LookupEnv(name.Str); ok {
			return VString(v), nil
		}
		return def, nil
	}))

	register(arityDef("os", 0, "env", "os: the host operating system name (\"linux\", \"darwin\", \"windows\", ...).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(runtime.GOOS), nil
	}))

	register(arityDef("env_vars", 0, "env", "env_vars: every environment variable as a Dict.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		d := NewOrderedDict()
		for _, kv := range os.Environ() {
			if i := strings.IndexByte(kv, '='); i >= 0 {
				d = d.Set(kv[:i], VString(kv[i+1:]))
			}
		}
		return VDict(d), nil
	}))

	register(arityDef("args", 0, "env", "args: positional command-line arguments passed after the source file.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		progArgsMu.RLock()
		defer progArgsMu.RUnlock()
		out := make([]*Value, len(progArgs))
		for i, a := range progArgs {
			out[i] = VString(a)
		}
		return VList(out), nil
	}))
}

// progArgs holds the bare positional arguments a host passed after the
// source file, surfaced by the args builtin. Guarded the same way as
// sourceDir in builtins_fileio.go.
var progArgsMu sync.RWMutex
var progArgs []string

// SetProgramArgs records the positional arguments for this evaluation.
// Hosts call it before NewGlobalEnv, since zero-arity builtins resolve
// at environment construction time.
func SetProgramArgs(a []string) {
	progArgsMu.Lock()
	defer progArgsMu.Unlock()
	progArgs = append([]string{}, a...)
}
