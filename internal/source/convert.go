package source

import (
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gork-labs/tsdox/internal/typeexpr"
)

// define converts declaration bodies and function signatures once every
// name the file can see is bound.
func (d *declarer) define() {
	for _, p := range d.aliases {
		c := d.converter(p.sym.Params)
		d.defaults(c, p.sym, p.node)
		p.sym.Body = c.typ(p.node.ChildByFieldName("value"))
	}

	for _, p := range d.interfaces {
		c := d.converter(p.sym.Params)
		if p.first {
			d.defaults(c, p.sym, p.node)
		}
		for _, clause := range namedChildren(p.node) {
			if clause.Type() != "extends_type_clause" && clause.Type() != "extends_clause" {
				continue
			}
			for _, base := range namedChildren(clause) {
				p.sym.Heritage = append(p.sym.Heritage, typeexpr.NewHeritageRef(c.heritage(base)))
			}
		}
		p.sym.Fields = append(p.sym.Fields, c.members(p.node.ChildByFieldName("body"))...)
	}

	for _, v := range d.values {
		d.function(v)
	}
}

func (d *declarer) defaults(c *converter, sym *typeexpr.Symbol, decl *sitter.Node) {
	for _, p := range namedChildren(decl.ChildByFieldName("type_parameters")) {
		def := p.ChildByFieldName("value")
		if p.Type() != "type_parameter" || def == nil {
			continue
		}
		name := text(p.ChildByFieldName("name"), d.unit.content)
		for i := range sym.Params {
			if sym.Params[i].ID.Name == name {
				sym.Params[i].Default = c.typ(def)
			}
		}
	}
}

func (d *declarer) function(v value) {
	switch v.node.Type() {
	case "function_declaration":
		name := text(v.node.ChildByFieldName("name"), d.unit.content)
		d.addFunction(name, v.node, v.stmt, v.exported)
	case "lexical_declaration", "variable_declaration":
		for _, decl := range namedChildren(v.node) {
			if decl.Type() != "variable_declarator" {
				continue
			}
			initializer := decl.ChildByFieldName("value")
			for initializer != nil && initializer.Type() == "parenthesized_expression" {
				initializer = firstNamed(initializer)
			}
			if initializer == nil {
				continue
			}
			switch initializer.Type() {
			case "arrow_function", "function_expression", "function":
				name := text(decl.ChildByFieldName("name"), d.unit.content)
				d.addFunction(name, initializer, v.stmt, v.exported)
			}
		}
	}
}

func (d *declarer) addFunction(name string, fn, stmt *sitter.Node, exported bool) {
	// Type parameters of a function are never bound to an argument.
	var params []typeexpr.TypeParam
	for _, p := range namedChildren(fn.ChildByFieldName("type_parameters")) {
		if p.Type() == "type_parameter" {
			id := typeexpr.ParamID{Name: text(p.ChildByFieldName("name"), d.unit.content)}
			params = append(params, typeexpr.TypeParam{ID: id})
		}
	}
	c := d.converter(params)

	f := &Function{
		Name: name,
		File: d.unit.Path,
		Line: int(fn.StartPoint().Row) + 1,
		stmt: stmt,
		unit: d.unit,
	}
	if list := fn.ChildByFieldName("parameters"); list != nil {
		for _, p := range namedChildren(list) {
			if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
				continue
			}
			pname := text(p.ChildByFieldName("pattern"), d.unit.content)
			if pname == "this" {
				continue
			}
			f.Params = append(f.Params, Parameter{Name: pname, Type: c.typ(p.ChildByFieldName("type"))})
		}
	} else if p := fn.ChildByFieldName("parameter"); p != nil {
		f.Params = append(f.Params, Parameter{Name: text(p, d.unit.content)})
	}
	f.Returns = c.typ(fn.ChildByFieldName("return_type"))

	if _, seen := d.unit.functions[name]; !seen {
		d.unit.order = append(d.unit.order, name)
	}
	d.unit.functions[name] = f
	if exported {
		d.unit.exports[name] = name
	}
}

func (d *declarer) converter(params []typeexpr.TypeParam) *converter {
	c := &converter{
		unit:   d.unit,
		logger: d.loader.logger,
		params: make(map[string]typeexpr.ParamID, len(params)),
	}
	for _, p := range params {
		c.params[p.ID.Name] = p.ID
	}
	return c
}

// converter turns type nodes into type expressions. params holds the type
// parameters in scope, which take precedence over declared names.
type converter struct {
	unit   *Unit
	logger *slog.Logger
	params map[string]typeexpr.ParamID
}

func (c *converter) typ(n *sitter.Node) typeexpr.Expr {
	if n == nil {
		return nil
	}
	raw := text(n, c.unit.content)

	switch n.Type() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation",
		"parenthesized_type", "readonly_type", "optional_type", "rest_type", "default_type":
		return c.typ(firstNamed(n))

	case "required_parameter", "optional_parameter":
		// labelled tuple members
		return c.typ(n.ChildByFieldName("type"))

	case "predefined_type":
		return predefined(raw)

	case "type_identifier", "identifier":
		return c.named(raw, raw, nil)

	case "nested_type_identifier":
		return c.qualified(raw, n, nil)

	case "generic_type":
		name := n.ChildByFieldName("name")
		var args []typeexpr.Expr
		for _, a := range namedChildren(n.ChildByFieldName("type_arguments")) {
			args = append(args, c.typ(a))
		}
		if name != nil && name.Type() == "nested_type_identifier" {
			return c.qualified(raw, name, args)
		}
		return c.named(raw, text(name, c.unit.content), args)

	case "literal_type":
		return c.literal(raw, firstNamed(n))

	case "undefined":
		return typeexpr.NewPrimitive(raw, typeexpr.Undefined)

	case "null":
		return typeexpr.NewPrimitive(raw, typeexpr.Null)

	case "array_type":
		return typeexpr.NewArray(raw, c.typ(firstNamed(n)))

	case "tuple_type":
		var elems []typeexpr.Expr
		for _, el := range namedChildren(n) {
			elems = append(elems, c.typ(el))
		}
		return typeexpr.NewTuple(raw, elems)

	case "object_type", "interface_body":
		return typeexpr.NewRecord(raw, c.members(n))

	case "union_type":
		return typeexpr.NewUnion(raw, c.flatten(n))

	case "intersection_type":
		return typeexpr.NewIntersection(raw, c.flatten(n))

	case "lookup_type":
		kids := namedChildren(n)
		if len(kids) == 2 {
			return typeexpr.NewIndexedAccess(raw, c.typ(kids[0]), c.typ(kids[1]))
		}
	}

	return typeexpr.NewUnsupported(raw, n.Type())
}

func predefined(raw string) typeexpr.Expr {
	switch kind := typeexpr.PrimitiveKind(raw); kind {
	case typeexpr.String, typeexpr.Boolean, typeexpr.Number, typeexpr.Any, typeexpr.Unknown,
		typeexpr.Null, typeexpr.Undefined, typeexpr.Never, typeexpr.Void:
		return typeexpr.NewPrimitive(raw, kind)
	}
	return typeexpr.NewUnsupported(raw, "predefined_type")
}

func (c *converter) named(raw, name string, args []typeexpr.Expr) typeexpr.Expr {
	if len(args) == 0 {
		if id, ok := c.params[name]; ok {
			return typeexpr.NewGenericParam(raw, id)
		}
		switch name {
		case "undefined":
			return typeexpr.NewPrimitive(raw, typeexpr.Undefined)
		case "null":
			return typeexpr.NewPrimitive(raw, typeexpr.Null)
		}
	}
	return typeexpr.NewNamedRef(raw, name, c.unit.scope[name], args)
}

// qualified resolves ns.Name through a namespace import. Other qualified
// names stay unbound.
func (c *converter) qualified(raw string, n *sitter.Node, args []typeexpr.Expr) typeexpr.Expr {
	kids := namedChildren(n)
	if len(kids) == 2 {
		if ns, ok := c.unit.namespaces[text(kids[0], c.unit.content)]; ok {
			name := text(kids[1], c.unit.content)
			return typeexpr.NewNamedRef(raw, name, ns.exportedSymbol(name, make(map[*Unit]bool)), args)
		}
	}
	return typeexpr.NewNamedRef(raw, raw, nil, args)
}

func (c *converter) literal(raw string, n *sitter.Node) typeexpr.Expr {
	if n == nil {
		return typeexpr.NewUnsupported(raw, "literal_type")
	}
	switch n.Type() {
	case "string":
		return typeexpr.NewLiteral(raw, typeexpr.StringLiteral, unquote(raw))
	case "true", "false":
		return typeexpr.NewLiteral(raw, typeexpr.BooleanLiteral, n.Type() == "true")
	case "null":
		return typeexpr.NewPrimitive(raw, typeexpr.Null)
	case "undefined":
		return typeexpr.NewPrimitive(raw, typeexpr.Undefined)
	case "number", "unary_expression":
		if v, ok := parseNumber(raw); ok {
			return typeexpr.NewLiteral(raw, typeexpr.NumberLiteral, v)
		}
	}
	return typeexpr.NewUnsupported(raw, n.Type())
}

// heritage converts one base of an extends clause.
func (c *converter) heritage(n *sitter.Node) *typeexpr.NamedRef {
	if ref, ok := c.typ(n).(*typeexpr.NamedRef); ok {
		return ref
	}
	raw := text(n, c.unit.content)
	return typeexpr.NewNamedRef(raw, raw, nil, nil)
}

// members converts the property signatures of an object type. Index,
// call, construct and method signatures contribute nothing.
func (c *converter) members(body *sitter.Node) []typeexpr.Field {
	var fields []typeexpr.Field
	for _, m := range namedChildren(body) {
		if m.Type() != "property_signature" {
			c.logger.Debug("skipping member",
				slog.String("component", "source"),
				slog.String("kind", m.Type()),
				slog.String("construct", text(m, c.unit.content)))
			continue
		}

		name := propertyName(m.ChildByFieldName("name"), c.unit.content)
		t := c.typ(m.ChildByFieldName("type"))
		if t == nil {
			t = typeexpr.NewPrimitive(name, typeexpr.Any)
		}
		fields = append(fields, typeexpr.Field{
			Name:     name,
			Type:     t,
			Optional: childOfType(m, "?") != nil,
		})
	}
	return fields
}

func propertyName(n *sitter.Node, content []byte) string {
	raw := text(n, content)
	if n != nil && n.Type() == "string" {
		return unquote(raw)
	}
	return strings.TrimSpace(raw)
}

// flatten collects the operands of a chain of unions or intersections.
func (c *converter) flatten(n *sitter.Node) []typeexpr.Expr {
	var out []typeexpr.Expr
	for _, k := range namedChildren(n) {
		if k.Type() == n.Type() {
			out = append(out, c.flatten(k)...)
			continue
		}
		out = append(out, c.typ(k))
	}
	return out
}
