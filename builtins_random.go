package avon

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/avon-lang/avon/diag"
)

// The random builtins are the one deliberate impurity besides the
// clock builtins (now, timestamp, timezone):
// their results vary call to call, so they must not appear inside
// pmap/pfilter/pfold callers that rely on observational equivalence.
func init() {
	register(arityDef("random_int", 2, "random", "random_int min max: a random integer in [min, max], inclusive.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		lo, err := intArg("random_int", args[0], line, col)
		if err != nil {
			return nil, err
		}
		hi, err := intArg("random_int", args[1], line, col)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, diag.New(diag.Eval, line, col, "random_int: max %d is below min %d", hi, lo)
		}
		return VInt(lo + rand.Int63n(hi-lo+1)), nil
	}))

	register(arityDef("random_float", 2, "random", "random_float min max: a random float in [min, max).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		lo, err := numArg("random_float", args[0], line, col)
		if err != nil {
			return nil, err
		}
		hi, err := numArg("random_float", args[1], line, col)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, diag.New(diag.Eval, line, col, "random_float: max is below min")
		}
		return VFloat(lo + rand.Float64()*(hi-lo)), nil
	}))

	register(arityDef("choice", 1, "random", "choice list: a random element; errors on the empty list.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "choice", "List", list)
		}
		if len(list.List) == 0 {
			return nil, diag.New(diag.Eval, line, col, "choice: empty list")
		}
		return list.List[rand.Intn(len(list.List))], nil
	}))

	register(arityDef("shuffle", 1, "random", "shuffle list: the elements in a random order.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "shuffle", "List", list)
		}
		out := append([]*Value{}, list.List...)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return VList(out), nil
	}))

	register(arityDef("sample", 2, "random", "sample n list: n distinct random elements; errors when n exceeds the list length.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		n, err := intArg("sample", args[0], line, col)
		if err != nil {
			return nil, err
		}
		list := args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "sample", "List", list)
		}
		if n < 0 || n > int64(len(list.List)) {
			return nil, diag.New(diag.Eval, line, col, "sample: cannot take %d elements from a list of length %d", n, len(list.List))
		}
		idx := rand.Perm(len(list.List))[:n]
		out := make([]*Value, n)
		for i, j := range idx {
			out[i] = list.List[j]
		}
		return VList(out), nil
	}))

	register(arityDef("uuid", 0, "random", "uuid: a random version-4 UUID string.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(uuid.NewString()), nil
	}))
}
