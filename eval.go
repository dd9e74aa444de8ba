package avon

import (
	"math"

	"github.com/avon-lang/avon/diag"
)

// Eval evaluates node in env, returning the resulting Value or the
// first diagnostic encountered. Evaluation is strict and left-to-right
// (spec §4.4): no operation suspends, and sub-expressions are always
// evaluated before the construct that consumes them.
func Eval(node Node, env *Env) (*Value, *diag.Diagnostic) {
	switch n := node.(type) {
	case *IntLit:
		return VInt(n.Value), nil
	case *FloatLit:
		return VFloat(n.Value), nil
	case *StringLit:
		return VString(n.Value), nil
	case *BoolLit:
		return VBool(n.Value), nil
	case *NoneLit:
		return VNone(), nil
	case *IdentExpr:
		v, ok := env.Lookup(n.Name)
		if !ok {
			line, col := n.Pos()
			return nil, diag.New(diag.Eval, line, col, "undefined variable '%s'", n.Name)
		}
		return v, nil
	case *ListExpr:
		return evalList(n, env)
	case *DictExpr:
		return evalDict(n, env)
	case *LambdaExpr:
		return VFunction([]string{n.Param}, n.Body, env), nil
	case *AppExpr:
		return evalApp(n, env)
	case *LetExpr:
		return evalLet(n, env)
	case *IfExpr:
		return evalIf(n, env)
	case *MatchExpr:
		return evalMatch(n, env)
	case *UnaryExpr:
		return evalUnary(n, env)
	case *BinaryExpr:
		return evalBinary(n, env)
	case *FieldAccessExpr:
		return evalFieldAccess(n, env)
	case *PathExpr:
		return VPath(n.Path, true), nil
	case *FileTemplateExpr:
		return evalFileTemplate(n, env)
	}
	line, col := node.Pos()
	return nil, diag.New(diag.Eval, line, col, "internal error: unhandled AST node %T", node)
}

func evalList(n *ListExpr, env *Env) (*Value, *diag.Diagnostic) {
	out := make([]*Value, 0, len(n.Elems))
	for _, e := range n.Elems {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return VList(out), nil
}

func evalDict(n *DictExpr, env *Env) (*Value, *diag.Diagnostic) {
	d := NewOrderedDict()
	for i, k := range n.Keys {
		v, err := Eval(n.Values[i], env)
		if err != nil {
			return nil, err
		}
		d = d.Set(k, v)
	}
	return VDict(d), nil
}

// Apply applies fn to a single argument, honouring currying for both
// user Functions and Builtins: if more parameters remain after binding
// arg, Apply returns a new callable rather than evaluating the body.
func Apply(fn *Value, arg *Value, line, col int) (*Value, *diag.Diagnostic) {
	switch fn.Kind {
	case KindFunction:
		f := fn.Function
		callEnv := f.Env.Extend(f.Params[0], arg)
		if len(f.Params) == 1 {
			return Eval(f.Body, callEnv)
		}
		return VFunction(f.Params[1:], f.Body, callEnv), nil
	case KindBuiltin:
		return applyBuiltin(fn.Builtin, arg, line, col)
	default:
		return nil, diag.New(diag.Eval, line, col, "cannot apply a value of type %s", fn.TypeName())
	}
}

func evalApp(n *AppExpr, env *Env) (*Value, *diag.Diagnostic) {
	fn, err := Eval(n.Fn, env)
	if err != nil {
		return nil, err
	}
	arg, err := Eval(n.Arg, env)
	if err != nil {
		return nil, err
	}
	line, col := n.Pos()
	return Apply(fn, arg, line, col)
}

func evalLet(n *LetExpr, env *Env) (*Value, *diag.Diagnostic) {
	v, err := Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	return Eval(n.Body, env.Extend(n.Name, v))
}

func evalIf(n *IfExpr, env *Env) (*Value, *diag.Diagnostic) {
	c, err := Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if c.Kind != KindBool {
		line, col := n.Pos()
		return nil, diag.New(diag.Eval, line, col, "if condition must be Bool, got %s", c.TypeName())
	}
	if c.Bool {
		return Eval(n.Then, env)
	}
	return Eval(n.Else, env)
}

func evalMatch(n *MatchExpr, env *Env) (*Value, *diag.Diagnostic) {
	scrutinee, err := Eval(n.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		bindings, matched, err := matchPattern(arm.Pattern, scrutinee, env)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		armEnv := env
		for k, v := range bindings {
			armEnv = armEnv.Extend(k, v)
		}
		if arm.Guard != nil {
			g, err := Eval(arm.Guard, armEnv)
			if err != nil {
				return nil, err
			}
			if g.Kind != KindBool || !g.Bool {
				continue
			}
		}
		return Eval(arm.Body, armEnv)
	}
	line, col := n.Pos()
	return nil, diag.New(diag.Eval, line, col, "no match arm matched the scrutinee")
}

// matchPattern reports whether pat matches v, returning any bindings it
// introduces. env is only used to evaluate literal patterns' AST nodes
// (constant expressions only; patterns never reference the scrutinee).
func matchPattern(pat Pattern, v *Value, env *Env) (map[string]*Value, bool, *diag.Diagnostic) {
	switch p := pat.(type) {
	case WildcardPattern:
		return nil, true, nil
	case IdentPattern:
		return map[string]*Value{p.Name: v}, true, nil
	case LiteralPattern:
		lv, err := Eval(p.Value, env)
		if err != nil {
			return nil, false, err
		}
		eq, cmpErr := Equal(lv, v)
		if cmpErr != nil {
			return nil, false, nil
		}
		return nil, eq, nil
	case ListPattern:
		if v.Kind != KindList {
			return nil, false, nil
		}
		if p.HasRest {
			if len(v.List) < len(p.Elems) {
				return nil, false, nil
			}
		} else if len(v.List) != len(p.Elems) {
			return nil, false, nil
		}
		bindings := map[string]*Value{}
		for i, sub := range p.Elems {
			b, ok, err := matchPattern(sub, v.List[i], env)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			for k, val := range b {
				bindings[k] = val
			}
		}
		if p.HasRest {
			bindings[p.Rest] = VList(append([]*Value{}, v.List[len(p.Elems):]...))
		}
		return bindings, true, nil
	}
	return nil, false, nil
}

func evalUnary(n *UnaryExpr, env *Env) (*Value, *diag.Diagnostic) {
	v, err := Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	line, col := n.Pos()
	switch n.Op {
	case "-":
		switch v.Kind {
		case KindInt:
			return VInt(-v.Int), nil
		case KindFloat:
			return VFloat(-v.Float), nil
		}
		return nil, diag.New(diag.Eval, line, col, "unary '-' requires a number, got %s", v.TypeName())
	case "!":
		if v.Kind != KindBool {
			return nil, diag.New(diag.Eval, line, col, "unary '!' requires a Bool, got %s", v.TypeName())
		}
		return VBool(!v.Bool), nil
	}
	return nil, diag.New(diag.Eval, line, col, "internal error: unknown unary operator %q", n.Op)
}

func evalBinary(n *BinaryExpr, env *Env) (*Value, *diag.Diagnostic) {
	line, col := n.Pos()

	// && and || short-circuit, so the right operand is only evaluated
	// when necessary.
	if n.Op == "&&" || n.Op == "||" {
		l, err := Eval(n.Left, env)
		if err != nil {
			return nil, err
		}
		if l.Kind != KindBool {
			return nil, diag.New(diag.Eval, line, col, "'%s' requires Bool operands, got %s", n.Op, l.TypeName())
		}
		if n.Op == "&&" && !l.Bool {
			return VBool(false), nil
		}
		if n.Op == "||" && l.Bool {
			return VBool(true), nil
		}
		r, err := Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		if r.Kind != KindBool {
			return nil, diag.New(diag.Eval, line, col, "'%s' requires Bool operands, got %s", n.Op, r.TypeName())
		}
		return VBool(r.Bool), nil
	}

	l, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "==":
		eq, cmpErr := Equal(l, r)
		if cmpErr != nil {
			return nil, diag.New(diag.Eval, line, col, "%s", cmpErr.Error())
		}
		return VBool(eq), nil
	case "!=":
		eq, cmpErr := Equal(l, r)
		if cmpErr != nil {
			return nil, diag.New(diag.Eval, line, col, "%s", cmpErr.Error())
		}
		return VBool(!eq), nil
	case "<", "<=", ">", ">=":
		result, ok := Compare(l, r)
		if !ok {
			return nil, diag.New(diag.Eval, line, col, "ordering is undefined between %s and %s", l.TypeName(), r.TypeName())
		}
		switch n.Op {
		case "<":
			return VBool(result < 0), nil
		case "<=":
			return VBool(result <= 0), nil
		case ">":
			return VBool(result > 0), nil
		default:
			return VBool(result >= 0), nil
		}
	case "+", "-", "*", "/", "//", "**":
		return arith(n.Op, l, r, line, col)
	}
	return nil, diag.New(diag.Eval, line, col, "internal error: unknown binary operator %q", n.Op)
}

func arith(op string, l, r *Value, line, col int) (*Value, *diag.Diagnostic) {
	if !isNumeric(l) || !isNumeric(r) {
		return nil, diag.New(diag.Eval, line, col, "arithmetic '%s' requires numbers, got %s and %s", op, l.TypeName(), r.TypeName())
	}
	bothInt := l.Kind == KindInt && r.Kind == KindInt

	switch op {
	case "+":
		if bothInt {
			return VInt(l.Int + r.Int), nil
		}
		return VFloat(asFloat(l) + asFloat(r)), nil
	case "-":
		if bothInt {
			return VInt(l.Int - r.Int), nil
		}
		return VFloat(asFloat(l) - asFloat(r)), nil
	case "*":
		if bothInt {
			return VInt(l.Int * r.Int), nil
		}
		return VFloat(asFloat(l) * asFloat(r)), nil
	case "/":
		// Always Float, even when the integer quotient is exact
		// (spec §9 open question (a), resolved per the documented rule).
		if asFloat(r) == 0 {
			return nil, diag.New(diag.Eval, line, col, "division by zero")
		}
		return VFloat(asFloat(l) / asFloat(r)), nil
	case "//":
		if asFloat(r) == 0 {
			return nil, diag.New(diag.Eval, line, col, "division by zero")
		}
		return VInt(int64(math.Floor(asFloat(l) / asFloat(r)))), nil
	case "**":
		if bothInt && l.Int >= 0 && r.Int >= 0 {
			result, exact := intPow(l.Int, r.Int)
			if exact {
				return VInt(result), nil
			}
		}
		return VFloat(math.Pow(asFloat(l), asFloat(r))), nil
	}
	return nil, diag.New(diag.Eval, line, col, "internal error: unknown arithmetic operator %q", op)
}

// intPow computes base**exp with int64 arithmetic, reporting whether
// the result stayed within int64 range (exact == false signals the
// caller should fall back to the Float result).
func intPow(base, exp int64) (result int64, exact bool) {
	result = 1
	for i := int64(0); i < exp; i++ {
		next := result * base
		if base != 0 && next/base != result {
			return 0, false
		}
		result = next
	}
	return result, true
}

func evalFieldAccess(n *FieldAccessExpr, env *Env) (*Value, *diag.Diagnostic) {
	v, err := Eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	line, col := n.Pos()
	if v.Kind != KindDict {
		return nil, diag.New(diag.Eval, line, col, "field access requires a Dict, got %s", v.TypeName())
	}
	if val, ok := v.Dict.Get(n.Name); ok {
		return val, nil
	}
	// Missing key yields None, matching the get builtin (spec §4.4).
	return VNone(), nil
}

func evalFileTemplate(n *FileTemplateExpr, env *Env) (*Value, *diag.Diagnostic) {
	tpl, err := compileTemplate(n.Segments, env)
	if err != nil {
		return nil, err
	}
	line, col := n.Pos()
	return VFileTemplate(&PathValue{Text: n.Path, Relative: true}, tpl, line, col), nil
}
