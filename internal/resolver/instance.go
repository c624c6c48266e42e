package resolver

import (
	"fmt"
	"strings"

	"github.com/gork-labs/tsdox/internal/typeexpr"
)

// maxKeyDepth caps how deep instanceKey descends into argument expressions.
const maxKeyDepth = 32

// instanceKey identifies one instantiation of a reference: the reference
// node plus its arguments with every generic parameter substituted by what
// it is bound to. Seeing the same key again while it is still being
// resolved means the type refers to itself with the same arguments.
func (w *walk) instanceKey(ref *typeexpr.NamedRef, env *Environment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p", ref)
	for _, a := range ref.Args {
		b.WriteByte('|')
		writeKey(&b, a, env, 0)
	}
	return b.String()
}

func writeKey(b *strings.Builder, expr typeexpr.Expr, env *Environment, depth int) {
	if depth > maxKeyDepth {
		b.WriteString("...")
		return
	}
	depth++

	switch e := expr.(type) {
	case nil:
		b.WriteString("_")
	case *typeexpr.Primitive:
		b.WriteString(string(e.Kind))
	case *typeexpr.Literal:
		fmt.Fprintf(b, "%s:%v", e.Kind, e.Value)
	case *typeexpr.Array:
		writeKey(b, e.Elem, env, depth)
		b.WriteString("[]")
	case *typeexpr.Tuple:
		writeList(b, "[", "]", ",", e.Elems, env, depth)
	case *typeexpr.Record:
		b.WriteByte('{')
		for i, f := range e.Fields {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(f.Name)
			b.WriteByte(':')
			writeKey(b, f.Type, env, depth)
		}
		b.WriteByte('}')
	case *typeexpr.Union:
		writeList(b, "(", ")", "|", e.Variants, env, depth)
	case *typeexpr.Intersection:
		writeList(b, "(", ")", "&", e.Parts, env, depth)
	case *typeexpr.NamedRef:
		fmt.Fprintf(b, "%s@%p", e.Name, e.Symbol)
		if len(e.Args) > 0 {
			writeList(b, "<", ">", ",", e.Args, env, depth)
		}
	case *typeexpr.HeritageRef:
		writeKey(b, e.Base, env, depth)
	case *typeexpr.GenericParam:
		bound, scope, ok := env.Lookup(e.ID)
		if !ok {
			b.WriteString("?" + e.ID.Name)
			return
		}
		writeKey(b, bound, scope, depth)
	case *typeexpr.IndexedAccess:
		writeKey(b, e.Object, env, depth)
		b.WriteByte('[')
		writeKey(b, e.Index, env, depth)
		b.WriteByte(']')
	default:
		b.WriteString(expr.Raw())
	}
}

func writeList(b *strings.Builder, open, end, sep string, exprs []typeexpr.Expr, env *Environment, depth int) {
	b.WriteString(open)
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(sep)
		}
		writeKey(b, e, env, depth)
	}
	b.WriteString(end)
}
