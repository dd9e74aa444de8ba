package avon

import (
	"sort"

	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("map", 2, "list", "map f list: apply f to every element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "map", "List", list)
		}
		out := make([]*Value, len(list.List))
		for i, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return VList(out), nil
	}))

	register(arityDef("filter", 2, "list", "filter f list: keep elements where f returns true.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "filter", "List", list)
		}
		out := make([]*Value, 0, len(list.List))
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "filter: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				out = append(out, v)
			}
		}
		return VList(out), nil
	}))

	register(arityDef("fold", 3, "list", "fold f init list: left fold.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, acc, list := args[0], args[1], args[2]
		if list.Kind != KindList {
			return nil, typeError(line, col, "fold", "List", list)
		}
		for _, v := range list.List {
			stepped, err := Apply(f, acc, line, col)
			if err != nil {
				return nil, err
			}
			acc, err = Apply(stepped, v, line, col)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}))

	register(arityDef("head", 1, "list", "head list: first element, errors on empty list.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "head", "List", list)
		}
		if len(list.List) == 0 {
			return nil, diag.New(diag.Eval, line, col, "head: empty list")
		}
		return list.List[0], nil
	}))

	register(arityDef("tail", 1, "list", "tail list: every element after the first.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "tail", "List", list)
		}
		if len(list.List) == 0 {
			return nil, diag.New(diag.Eval, line, col, "tail: empty list")
		}
		return VList(append([]*Value{}, list.List[1:]...)), nil
	}))

	register(arityDef("append", 2, "list", "append list x: append x to the end of list.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list, x := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "append", "List", list)
		}
		out := append(append([]*Value{}, list.List...), x)
		return VList(out), nil
	}))

	register(arityDef("reverse", 1, "list", "reverse list.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "reverse", "List", list)
		}
		out := make([]*Value, len(list.List))
		for i, v := range list.List {
			out[len(out)-1-i] = v
		}
		return VList(out), nil
	}))

	register(arityDef("sort", 1, "list", "sort list: ascending order per the language's comparison rules.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "sort", "List", list)
		}
		out := append([]*Value{}, list.List...)
		var sortErr *diag.Diagnostic
		sort.SliceStable(out, func(i, j int) bool {
			r, ok := Compare(out[i], out[j])
			if !ok && sortErr == nil {
				sortErr = diag.New(diag.Eval, line, col, "sort: ordering is undefined between %s and %s", out[i].TypeName(), out[j].TypeName())
			}
			return r < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return VList(out), nil
	}))

	register(arityDef("range", 2, "list", "range start end: integers from start up to (exclusive) end.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		start, end := args[0], args[1]
		if start.Kind != KindInt || end.Kind != KindInt {
			return nil, typeError(line, col, "range", "Int", start)
		}
		if end.Int < start.Int {
			return VList(nil), nil
		}
		out := make([]*Value, 0, end.Int-start.Int)
		for i := start.Int; i < end.Int; i++ {
			out = append(out, VInt(i))
		}
		return VList(out), nil
	}))

	register(arityDef("nth", 2, "list", "nth i list: element at index i, errors if out of range.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		idx, list := args[0], args[1]
		if idx.Kind != KindInt {
			return nil, typeError(line, col, "nth", "Int", idx)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "nth", "List", list)
		}
		if idx.Int < 0 || idx.Int >= int64(len(list.List)) {
			return nil, diag.New(diag.Eval, line, col, "nth: index %d out of range for list of length %d", idx.Int, len(list.List))
		}
		return list.List[idx.Int], nil
	}))

	register(arityDef("flatten", 1, "list", "flatten list: concatenate a list of lists by one level.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "flatten", "List", list)
		}
		var out []*Value
		for _, v := range list.List {
			if v.Kind != KindList {
				return nil, typeError(line, col, "flatten", "List of Lists", v)
			}
			out = append(out, v.List...)
		}
		return VList(out), nil
	}))

	register(arityDef("zip", 2, "list", "zip a b: pair elements of two lists, truncating to the shorter.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		a, b := args[0], args[1]
		if a.Kind != KindList || b.Kind != KindList {
			return nil, typeError(line, col, "zip", "List", a)
		}
		n := len(a.List)
		if len(b.List) < n {
			n = len(b.List)
		}
		out := make([]*Value, n)
		for i := 0; i < n; i++ {
			out[i] = VList([]*Value{a.List[i], b.List[i]})
		}
		return VList(out), nil
	}))

	register(arityDef("zip_with", 3, "list", "zip_with f a b: combine elements of two lists pairwise with f, truncating to the shorter.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, a, b := args[0], args[1], args[2]
		if a.Kind != KindList || b.Kind != KindList {
			return nil, typeError(line, col, "zip_with", "List", a)
		}
		n := len(a.List)
		if len(b.List) < n {
			n = len(b.List)
		}
		out := make([]*Value, n)
		for i := 0; i < n; i++ {
			stepped, err := Apply(f, a.List[i], line, col)
			if err != nil {
				return nil, err
			}
			r, err := Apply(stepped, b.List[i], line, col)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return VList(out), nil
	}))

	register(arityDef("flatmap", 2, "list", "flatmap f list: map f over list then flatten one level; f must return a List.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "flatmap", "List", list)
		}
		var out []*Value
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindList {
				return nil, diag.New(diag.Eval, line, col, "flatmap: function must return a List, got %s", r.TypeName())
			}
			out = append(out, r.List...)
		}
		return VList(out), nil
	}))

	register(arityDef("take", 2, "list", "take n list: the first n elements, or the whole list if shorter.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		n, list := args[0], args[1]
		if n.Kind != KindInt {
			return nil, typeError(line, col, "take", "Int", n)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "take", "List", list)
		}
		lo, hi := clampRange(0, n.Int, len(list.List))
		return VList(append([]*Value{}, list.List[lo:hi]...)), nil
	}))

	register(arityDef("drop", 2, "list", "drop n list: everything after the first n elements.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		n, list := args[0], args[1]
		if n.Kind != KindInt {
			return nil, typeError(line, col, "drop", "Int", n)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "drop", "List", list)
		}
		lo, _ := clampRange(n.Int, n.Int, len(list.List))
		return VList(append([]*Value{}, list.List[lo:]...)), nil
	}))

	register(arityDef("split_at", 2, "list", "split_at i list: a two-element List of the prefix before i and the suffix from i.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		i, list := args[0], args[1]
		if i.Kind != KindInt {
			return nil, typeError(line, col, "split_at", "Int", i)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "split_at", "List", list)
		}
		cut, _ := clampRange(i.Int, i.Int, len(list.List))
		prefix := VList(append([]*Value{}, list.List[:cut]...))
		suffix := VList(append([]*Value{}, list.List[cut:]...))
		return VList([]*Value{prefix, suffix}), nil
	}))

	register(arityDef("enumerate", 1, "list", "enumerate list: each element paired with its 0-based index as [index, value].", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "enumerate", "List", list)
		}
		out := make([]*Value, len(list.List))
		for i, v := range list.List {
			out[i] = VList([]*Value{VInt(int64(i)), v})
		}
		return VList(out), nil
	}))

	register(arityDef("partition", 2, "list", "partition f list: a two-element List of [matching, non-matching].", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "partition", "List", list)
		}
		var yes, no []*Value
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "partition: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				yes = append(yes, v)
			} else {
				no = append(no, v)
			}
		}
		return VList([]*Value{VList(yes), VList(no)}), nil
	}))

	register(arityDef("sort_by", 2, "list", "sort_by f list: sort ascending by the key f extracts from each element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "sort_by", "List", list)
		}
		keys := make([]*Value, len(list.List))
		for i, v := range list.List {
			k, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			keys[i] = k
		}
		idx := make([]int, len(list.List))
		for i := range idx {
			idx[i] = i
		}
		var sortErr *diag.Diagnostic
		sort.SliceStable(idx, func(a, b int) bool {
			r, ok := Compare(keys[idx[a]], keys[idx[b]])
			if !ok && sortErr == nil {
				sortErr = diag.New(diag.Eval, line, col, "sort_by: ordering is undefined between %s and %s", keys[idx[a]].TypeName(), keys[idx[b]].TypeName())
			}
			return r < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		out := make([]*Value, len(list.List))
		for i, j := range idx {
			out[i] = list.List[j]
		}
		return VList(out), nil
	}))

	register(arityDef("unique", 1, "list", "unique list: drop duplicates, keeping each element's first occurrence.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "unique", "List", list)
		}
		var out []*Value
		for _, v := range list.List {
			seen := false
			for _, u := range out {
				eq, err := Equal(u, v)
				if err != nil {
					return nil, diag.New(diag.Eval, line, col, "unique: %s", err.Error())
				}
				if eq {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, v)
			}
		}
		return VList(out), nil
	}))

	register(arityDef("last", 1, "list", "last list: the final element, or None on the empty list.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "last", "List", list)
		}
		if len(list.List) == 0 {
			return VNone(), nil
		}
		return list.List[len(list.List)-1], nil
	}))

	register(arityDef("find", 2, "list", "find f list: the first element satisfying f, or None.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "find", "List", list)
		}
		for _, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "find: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				return v, nil
			}
		}
		return VNone(), nil
	}))

	register(arityDef("find_index", 2, "list", "find_index f list: the index of the first element satisfying f, or None.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "find_index", "List", list)
		}
		for i, v := range list.List {
			r, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			if r.Kind != KindBool {
				return nil, diag.New(diag.Eval, line, col, "find_index: predicate must return Bool, got %s", r.TypeName())
			}
			if r.Bool {
				return VInt(int64(i)), nil
			}
		}
		return VNone(), nil
	}))

	register(arityDef("group_by", 2, "list", "group_by f list: a Dict from each f-derived key (as text) to the elements producing it, in first-seen order.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "group_by", "List", list)
		}
		d := NewOrderedDict()
		for _, v := range list.List {
			k, err := Apply(f, v, line, col)
			if err != nil {
				return nil, err
			}
			key := k.ToDisplayString()
			group, ok := d.Get(key)
			if !ok {
				group = VList(nil)
			}
			d = d.Set(key, VList(append(append([]*Value{}, group.List...), v)))
		}
		return VDict(d), nil
	}))

	register(arityDef("chunks", 2, "list", "chunks size list: consecutive sub-lists of size elements; the last may be shorter.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		size, list := args[0], args[1]
		if size.Kind != KindInt {
			return nil, typeError(line, col, "chunks", "Int", size)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "chunks", "List", list)
		}
		if size.Int <= 0 {
			return nil, diag.New(diag.Eval, line, col, "chunks: size must be positive, got %d", size.Int)
		}
		n := int(size.Int)
		var out []*Value
		for lo := 0; lo < len(list.List); lo += n {
			hi := lo + n
			if hi > len(list.List) {
				hi = len(list.List)
			}
			out = append(out, VList(append([]*Value{}, list.List[lo:hi]...)))
		}
		return VList(out), nil
	}))

	register(arityDef("windows", 2, "list", "windows size list: overlapping sliding windows of size elements.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		size, list := args[0], args[1]
		if size.Kind != KindInt {
			return nil, typeError(line, col, "windows", "Int", size)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "windows", "List", list)
		}
		if size.Int <= 0 {
			return nil, diag.New(diag.Eval, line, col, "windows: size must be positive, got %d", size.Int)
		}
		n := int(size.Int)
		var out []*Value
		for lo := 0; lo+n <= len(list.List); lo++ {
			out = append(out, VList(append([]*Value{}, list.List[lo:lo+n]...)))
		}
		return VList(out), nil
	}))

	register(arityDef("transpose", 1, "list", "transpose rows: swap a 2D List's rows and columns.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "transpose", "List", list)
		}
		width := 0
		for i, row := range list.List {
			if row.Kind != KindList {
				return nil, diag.New(diag.Eval, line, col, "transpose: row %d is not a List", i)
			}
			if len(row.List) > width {
				width = len(row.List)
			}
		}
		out := make([]*Value, 0, width)
		for c := 0; c < width; c++ {
			var column []*Value
			for _, row := range list.List {
				if c < len(row.List) {
					column = append(column, row.List[c])
				}
			}
			out = append(out, VList(column))
		}
		return VList(out), nil
	}))

	register(arityDef("intersperse", 2, "list", "intersperse sep list: insert sep between consecutive elements.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		sep, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "intersperse", "List", list)
		}
		var out []*Value
		for i, v := range list.List {
			if i > 0 {
				out = append(out, sep)
			}
			out = append(out, v)
		}
		return VList(out), nil
	}))

	register(arityDef("combinations", 2, "list", "combinations k list: every k-element subset, preserving element order.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		k, list := args[0], args[1]
		if k.Kind != KindInt {
			return nil, typeError(line, col, "combinations", "Int", k)
		}
		if list.Kind != KindList {
			return nil, typeError(line, col, "combinations", "List", list)
		}
		if k.Int < 0 {
			return nil, diag.New(diag.Eval, line, col, "combinations: k must be non-negative, got %d", k.Int)
		}
		var out []*Value
		var pick func(start int, cur []*Value)
		pick = func(start int, cur []*Value) {
			if len(cur) == int(k.Int) {
				out = append(out, VList(append([]*Value{}, cur...)))
				return
			}
			for i := start; i < len(list.List); i++ {
				pick(i+1, append(cur, list.List[i]))
			}
		}
		pick(0, nil)
		return VList(out), nil
	}))

	register(arityDef("permutations", 1, "list", "permutations list: every ordering of the elements.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "permutations", "List", list)
		}
		var out []*Value
		n := len(list.List)
		used := make([]bool, n)
		var build func(cur []*Value)
		build = func(cur []*Value) {
			if len(cur) == n {
				out = append(out, VList(append([]*Value{}, cur...)))
				return
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				build(append(cur, list.List[i]))
				used[i] = false
			}
		}
		build(nil)
		return VList(out), nil
	}))

	register(arityDef("unzip", 1, "list", "unzip pairs: split a List of two-element Lists into [firsts, seconds].", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		list := args[0]
		if list.Kind != KindList {
			return nil, typeError(line, col, "unzip", "List", list)
		}
		firsts := make([]*Value, len(list.List))
		seconds := make([]*Value, len(list.List))
		for i, v := range list.List {
			if v.Kind != KindList || len(v.List) != 2 {
				return nil, diag.New(diag.Eval, line, col, "unzip: element %d is not a two-element List", i)
			}
			firsts[i] = v.List[0]
			seconds[i] = v.List[1]
		}
		return VList([]*Value{VList(firsts), VList(seconds)}), nil
	}))
}
