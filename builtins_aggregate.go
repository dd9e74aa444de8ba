package avon

import (
	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("sum", 1, "aggregate", "sum list: add every numeric element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "sum", "List", list)
		}
		allInt := true
		var fsum float64
		var isum int64
		for _, v := range list.List {
			if !isNumeric(v) {
				return nil, typeError(line, col, "sum", "List of numbers", v)
			}
			if v.Kind != KindInt {
				allInt = false
			}
			fsum += asFloat(v)
			if v.Kind == KindInt {
				isum += v.Int
			}
		}
		if allInt {
			return VInt(isum), nil
		}
		return VFloat(fsum), nil
	}))

	register(arityDef("product", 1, "aggregate", "product list: multiply every numeric element, 1 on empty.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "product", "List", list)
		}
		allInt := true
		fprod := 1.0
		iprod := int64(1)
		for _, v := range list.List {
			if !isNumeric(v) {
				return nil, typeError(line, col, "product", "List of numbers", v)
			}
			if v.Kind != KindInt {
				allInt = false
			}
			fprod *= asFloat(v)
			if v.Kind == KindInt {
				iprod *= v.Int
			}
		}
		if allInt {
			return VInt(iprod), nil
		}
		return VFloat(fprod), nil
	}))

	register(arityDef("any", 2, "aggregate", "any f list: true if f holds for some element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "any", "List", list)
		}
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "any: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				return VBool(true), nil
			}
		}
		return VBool(false), nil
	}))

	register(arityDef("all", 2, "aggregate", "all f list: true if f holds for every element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "all", "List", list)
		}
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "all: predicate must return Bool, got %s", r.TypeName())
			}
			if !r.Bool {
				return VBool(false), nil
			}
		}
		return VBool(true), nil
	}))

	register(arityDef("count", 2, "aggregate", "count f list: number of elements satisfying f.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "count", "List", list)
		}
		var n int64
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "count: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				n++
			}
		}
		return VInt(n), nil
	}))
}
