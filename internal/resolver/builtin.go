package resolver

import (
	"github.com/gork-labs/tsdox/internal/schema"
	"github.com/gork-labs/tsdox/internal/typeexpr"
)

// builtin resolves references to the standard library types that have a
// structural meaning. Every other unbound name is unhandled.
func (w *walk) builtin(ref *typeexpr.NamedRef, env *Environment) *schema.Schema {
	args := ref.Args
	switch {
	case (ref.Name == "Array" || ref.Name == "ReadonlyArray") && len(args) == 1:
		return schema.NewArray(w.resolve(args[0], env))

	// Requiredness and mutability are not modelled.
	case (ref.Name == "Partial" || ref.Name == "Required" || ref.Name == "Readonly") && len(args) == 1:
		return w.resolve(args[0], env)

	case (ref.Name == "Promise" || ref.Name == "PromiseLike" || ref.Name == "Awaited") && len(args) == 1:
		return w.resolve(args[0], env)

	case (ref.Name == "Pick" || ref.Name == "Omit") && len(args) == 2:
		obj := w.resolve(args[0], env)
		keys, ok := w.resolve(args[1], env).StringKeys()
		if !ok || !obj.IsObject() {
			break
		}
		if ref.Name == "Pick" {
			return schema.Pick(obj, keys)
		}
		return schema.Omit(obj, keys)

	case ref.Name == "Record" && len(args) == 2:
		keys, ok := w.resolve(args[0], env).StringKeys()
		if !ok {
			break
		}
		value := w.resolve(args[1], env)
		obj := schema.NewObject()
		if value == nil {
			return obj
		}
		for _, k := range keys {
			obj.Properties.Set(k, value)
		}
		return obj
	}

	return w.unhandled(UnhandledTypeConstruct, ref.Raw())
}
