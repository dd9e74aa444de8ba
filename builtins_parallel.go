package avon

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/avon-lang/avon/diag"
)

// parallelWorkers bounds how many goroutines pmap/pfilter/pfold spin up
// per call, sized to the host's processor count; the result must remain
// observationally identical to the sequential variant, so this only
// affects throughput, never order.
var parallelWorkers = runtime.NumCPU()

func init() {
	register(arityDef("pmap", 2, "parallel", "pmap f list: map f over list using a worker pool; same result as map.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "pmap", "List", list)
		}
		out := make([]*Value, len(list.List))
		g := new(errgroup.Group)
		g.SetLimit(parallelWorkers)
		for i, v := range list.List {
			i, v := i, v
			g.Go(func() error {
				r, err := Apply(f, v, line, col)
				if err != nil {
					return err
				}
				out[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			if d, ok := err.(*diag.Diagnostic); ok {
				return nil, d
			}
			return nil, diag.New(diag.Eval, line, col, "%s", err.Error())
		}
		return VList(out), nil
	}))

	register(arityDef("pfilter", 2, "parallel", "pfilter f list: filter list using a worker pool; same result as filter.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, list := args[0], args[1]
		if list.Kind != KindList {
			return nil, typeError(line, col, "pfilter", "List", list)
		}
		keep := make([]bool, len(list.List))
		g := new(errgroup.Group)
		g.SetLimit(parallelWorkers)
		for i, v := range list.List {
			i, v := i, v
			g.Go(func() error {
				r, err := Apply(f, v, line, col)
				if err != nil {
					return err
				}
				if r.Kind != KindBool {
					return diag.New(diag.Eval, line, col, "pfilter: predicate must return Bool, got %s", r.TypeName())
				}
				keep[i] = r.Bool
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			if d, ok := err.(*diag.Diagnostic); ok {
				return nil, d
			}
			return nil, diag.New(diag.Eval, line, col, "%s", err.Error())
		}
		out := make([]*Value, 0, len(list.List))
		for i, v := range list.List {
			if keep[i] {
				out = append(out, v)
			}
		}
		return VList(out), nil
	}))

	// pfold splits the list into one chunk per worker, folds each chunk
	// from init on its own goroutine, then combines the per-chunk
	// results left to right with f. The combiner must be associative and
	// init its identity element; under that contract the tree-shaped
	// reduction produces exactly fold's result.
	register(arityDef("pfold", 3, "parallel", "pfold f init list: parallel fold; f must be associative with init its identity.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		f, init, list := args[0], args[1], args[2]
		if list.Kind != KindList {
			return nil, typeError(line, col, "pfold", "List", list)
		}
		n := len(list.List)
		if n == 0 {
			return init, nil
		}
		chunkSize := (n + parallelWorkers - 1) / parallelWorkers
		numChunks := (n + chunkSize - 1) / chunkSize
		partials := make([]*Value, numChunks)
		g := new(errgroup.Group)
		g.SetLimit(parallelWorkers)
		for c := 0; c < numChunks; c++ {
			c := c
			g.Go(func() error {
				lo := c * chunkSize
				hi := lo + chunkSize
				if hi > n {
					hi = n
				}
				acc := init
				for _, v := range list.List[lo:hi] {
					stepped, err := Apply(f, acc, line, col)
					if err != nil {
						return err
					}
					acc, err = Apply(stepped, v, line, col)
					if err != nil {
						return err
					}
				}
				partials[c] = acc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			if d, ok := err.(*diag.Diagnostic); ok {
				return nil, d
			}
			return nil, diag.New(diag.Eval, line, col, "%s", err.Error())
		}
		acc := partials[0]
		for _, p := range partials[1:] {
			stepped, err := Apply(f, acc, line, col)
			if err != nil {
				return nil, err
			}
			acc, err = Apply(stepped, p, line, col)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}))
}
