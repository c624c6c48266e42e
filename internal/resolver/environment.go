package resolver

import "github.com/gork-labs/tsdox/internal/typeexpr"

// Environment is one frame of generic parameter bindings. Frames are
// layered: a child overlays its parent and lookups walk outward, so the
// binding made closest to the point of use wins. Frames are never mutated
// after creation, which keeps independent resolutions from seeing each
// other's bindings.
//
// The nil *Environment is the empty top-level environment.
type Environment struct {
	parent   *Environment
	bindings map[typeexpr.ParamID]binding
}

// binding remembers the frame the bound expression was written in, so
// parameters inside the argument resolve against the call site rather
// than against the declaration being instantiated.
type binding struct {
	expr  typeexpr.Expr
	scope *Environment
}

// Bind returns a child frame of e binding params positionally to args.
// Parameters without a matching argument take their declared default,
// resolved inside the new frame so it may refer to earlier parameters.
func (e *Environment) Bind(params []typeexpr.TypeParam, args []typeexpr.Expr) *Environment {
	if len(params) == 0 {
		return e
	}
	child := &Environment{
		parent:   e,
		bindings: make(map[typeexpr.ParamID]binding, len(params)),
	}
	for i, p := range params {
		switch {
		case i < len(args):
			child.bindings[p.ID] = binding{expr: args[i], scope: e}
		case p.Default != nil:
			child.bindings[p.ID] = binding{expr: p.Default, scope: child}
		}
	}
	return child
}

// Lookup finds the closest binding for id.
func (e *Environment) Lookup(id typeexpr.ParamID) (typeexpr.Expr, *Environment, bool) {
	for f := e; f != nil; f = f.parent {
		if b, ok := f.bindings[id]; ok {
			return b.expr, b.scope, true
		}
	}
	return nil, nil, false
}

// Depth returns the number of frames in the chain.
func (e *Environment) Depth() int {
	n := 0
	for f := e; f != nil; f = f.parent {
		n++
	}
	return n
}
