package avon

// Env is a single frame in the lexical-scope chain described by spec
// §4.3: a name→Value map with an immutable parent link. Lookup walks
// parent-ward; the first hit wins. Frames are never mutated in place
// after being captured by a closure — Extend always allocates a new
// frame — so a Function's captured environment only ever observes
// bindings that existed at the capture site.
type Env struct {
	vars   map[string]*Value
	parent *Env
}

// NewRootEnv creates the outermost frame, typically pre-populated with
// the builtin registry and any CLI-supplied named arguments.
func NewRootEnv() *Env {
	return &Env{vars: make(map[string]*Value)}
}

// Extend returns a new child frame binding name to val, shadowing any
// outer binding of the same name for the lifetime of the new frame.
func (e *Env) Extend(name string, val *Value) *Env {
	return &Env{vars: map[string]*Value{name: val}, parent: e}
}

// Lookup walks the frame chain outward, returning the first binding
// found for name.
func (e *Env) Lookup(name string) (*Value, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define adds name to the outermost-callable frame of a root environment.
// Used only when constructing the initial global scope (builtins, named
// CLI arguments); ordinary `let` bindings always go through Extend.
func (e *Env) Define(name string, val *Value) {
	e.vars[name] = val
}
