// Package resolver reduces type expressions to schema values.
//
// Resolution is a synchronous depth-first walk. Generic arguments are
// substituted through an explicit Environment threaded through every call;
// nothing is remembered between two Resolve calls, so instantiating the same
// generic declaration with different arguments in different signatures
// cannot leak bindings from one to the other.
package resolver

import (
	"log/slog"
	"os"

	"github.com/gork-labs/tsdox/internal/schema"
	"github.com/gork-labs/tsdox/internal/typeexpr"
)

// DefaultMaxDepth bounds the number of named types being resolved at once.
const DefaultMaxDepth = 64

const component = "resolver"

// Resolver turns type expressions into schemas. It holds configuration
// only and is safe for concurrent use.
type Resolver struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger diagnostics are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMaxDepth sets the nesting limit for named type resolution. Values
// below one are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// New creates a resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return r
}

// Resolve resolves expr in a fresh top-level environment. A nil schema
// means the expression is omitted from the output.
func (r *Resolver) Resolve(expr typeexpr.Expr) (*schema.Schema, []Diagnostic) {
	return r.ResolveIn(expr, nil)
}

// ResolveIn resolves expr under env.
func (r *Resolver) ResolveIn(expr typeexpr.Expr, env *Environment) (*schema.Schema, []Diagnostic) {
	w := &walk{
		r:      r,
		active: make(map[string]bool),
	}
	s := w.resolve(expr, env)
	return s, w.diags
}

// walk is the state of one top-level resolution.
type walk struct {
	r      *Resolver
	active map[string]bool
	depth  int
	diags  []Diagnostic
}

func (w *walk) resolve(expr typeexpr.Expr, env *Environment) *schema.Schema {
	switch e := expr.(type) {
	case nil:
		return nil
	case *typeexpr.Primitive:
		return w.primitive(e)
	case *typeexpr.Literal:
		return schema.NewEnum(string(e.Kind), e.Value)
	case *typeexpr.Array:
		return schema.NewArray(w.resolve(e.Elem, env))
	case *typeexpr.Tuple:
		items := make([]*schema.Schema, 0, len(e.Elems))
		for _, el := range e.Elems {
			items = append(items, w.resolve(el, env))
		}
		return schema.NewArray(schema.UnionOf(items))
	case *typeexpr.Record:
		return w.record(e.Fields, env)
	case *typeexpr.Union:
		variants := make([]*schema.Schema, 0, len(e.Variants))
		for _, v := range e.Variants {
			variants = append(variants, w.resolve(v, env))
		}
		return schema.UnionOf(variants)
	case *typeexpr.Intersection:
		return w.intersection(e, env)
	case *typeexpr.NamedRef:
		return w.named(e, env)
	case *typeexpr.HeritageRef:
		return w.named(e.Base, env)
	case *typeexpr.GenericParam:
		return w.param(e, env)
	case *typeexpr.IndexedAccess:
		return w.indexed(e, env)
	default:
		return w.unhandled(UnhandledTypeConstruct, expr.Raw())
	}
}

func (w *walk) primitive(e *typeexpr.Primitive) *schema.Schema {
	switch e.Kind {
	case typeexpr.String, typeexpr.Number, typeexpr.Boolean:
		return schema.NewPrimitive(string(e.Kind))
	case typeexpr.Any, typeexpr.Unknown:
		return schema.NewAny()
	case typeexpr.Null:
		return schema.NewNull()
	case typeexpr.Void, typeexpr.Undefined, typeexpr.Never:
		return nil
	default:
		return w.unhandled(UnhandledTypeConstruct, e.Raw())
	}
}

func (w *walk) record(fields []typeexpr.Field, env *Environment) *schema.Schema {
	obj := schema.NewObject()
	for _, f := range fields {
		s := w.resolve(f.Type, env)
		if s == nil {
			continue
		}
		obj.Properties.Set(f.Name, s)
	}
	return obj
}

func (w *walk) intersection(e *typeexpr.Intersection, env *Environment) *schema.Schema {
	var acc *schema.Schema
	for _, part := range e.Parts {
		s := w.resolve(part, env)
		if s == nil {
			continue
		}
		if acc != nil && acc.IsObject() != s.IsObject() {
			w.report(IncompatibleIntersection, e.Raw())
		}
		acc = schema.Merge(acc, s)
	}
	return acc
}

func (w *walk) named(ref *typeexpr.NamedRef, env *Environment) *schema.Schema {
	key := w.instanceKey(ref, env)
	if w.active[key] || w.depth >= w.r.maxDepth {
		return w.unhandled(RecursiveType, ref.Raw())
	}
	w.active[key] = true
	w.depth++
	defer func() {
		delete(w.active, key)
		w.depth--
	}()

	sym := ref.Symbol
	if sym == nil {
		return w.builtin(ref, env)
	}

	frame := env.Bind(sym.Params, ref.Args)
	switch sym.Kind {
	case typeexpr.InterfaceSymbol:
		var acc *schema.Schema
		for _, h := range sym.Heritage {
			acc = schema.Merge(acc, w.resolve(h, frame))
		}
		return schema.Merge(acc, w.record(sym.Fields, frame))
	default:
		return w.resolve(sym.Body, frame)
	}
}

func (w *walk) param(e *typeexpr.GenericParam, env *Environment) *schema.Schema {
	bound, scope, ok := env.Lookup(e.ID)
	if !ok {
		w.r.logger.Debug("unbound generic parameter",
			slog.String("component", component),
			slog.String("param", e.ID.Name))
		return nil
	}
	return w.resolve(bound, scope)
}

func (w *walk) indexed(e *typeexpr.IndexedAccess, env *Environment) *schema.Schema {
	index := w.resolve(e.Index, env)
	object := w.resolve(e.Object, env)

	if keys, ok := index.StringKeys(); ok && object.IsObject() {
		members := make([]*schema.Schema, 0, len(keys))
		for _, k := range keys {
			m, _ := object.Properties.Get(k)
			members = append(members, m)
		}
		return schema.UnionOf(members)
	}

	if object != nil && object.Kind == schema.Array && index != nil && index.Type == "number" {
		return object.Items
	}

	w.r.logger.Debug("indexed access did not resolve",
		slog.String("component", component),
		slog.String("construct", e.Raw()))
	return nil
}

func (w *walk) unhandled(kind DiagnosticKind, raw string) *schema.Schema {
	w.report(kind, raw)
	return schema.NewPlaceholder()
}

func (w *walk) report(kind DiagnosticKind, raw string) {
	d := Diagnostic{Component: component, Kind: kind, Construct: raw}
	w.diags = append(w.diags, d)
	w.r.logger.Warn("type not handled",
		slog.String("component", d.Component),
		slog.String("kind", string(d.Kind)),
		slog.String("construct", d.Construct))
}
