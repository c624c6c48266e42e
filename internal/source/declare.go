package source

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gork-labs/tsdox/internal/typeexpr"
)

// declarer builds a Unit in three steps: declare creates a symbol for every
// type declaration so references can be bound in any order, link loads
// imported files and binds imported names, and define converts the
// declaration bodies and function signatures.
type declarer struct {
	loader *Loader
	unit   *Unit

	aliases    []pending
	interfaces []pending
	values     []value
	links      []*sitter.Node
}

type pending struct {
	sym  *typeexpr.Symbol
	node *sitter.Node
	// first is set on the declaration that introduced the symbol.
	first bool
}

type value struct {
	node     *sitter.Node
	stmt     *sitter.Node
	exported bool
}

func (d *declarer) declare() {
	for _, stmt := range namedChildren(d.unit.root) {
		d.statement(stmt, stmt, false)
	}
}

func (d *declarer) statement(n, stmt *sitter.Node, exported bool) {
	switch n.Type() {
	case "export_statement":
		d.export(n)
	case "import_statement":
		d.links = append(d.links, n)
	case "ambient_declaration":
		for _, c := range namedChildren(n) {
			d.statement(c, stmt, exported)
		}
	case "type_alias_declaration":
		d.alias(n, exported)
	case "interface_declaration":
		d.iface(n, exported)
	case "enum_declaration":
		d.enum(n, exported)
	case "function_declaration", "lexical_declaration", "variable_declaration":
		d.values = append(d.values, value{node: n, stmt: stmt, exported: exported})
	}
}

func (d *declarer) export(n *sitter.Node) {
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		d.statement(decl, n, true)
		return
	}
	if n.ChildByFieldName("source") != nil {
		d.links = append(d.links, n)
		return
	}
	clause := childOfType(n, "export_clause")
	if clause == nil {
		return
	}
	for _, spec := range namedChildren(clause) {
		name, alias := d.specifier(spec)
		d.unit.exports[alias] = name
	}
}

// specifier returns the name and the alias of an import or export
// specifier; alias equals name when there is no `as` clause.
func (d *declarer) specifier(spec *sitter.Node) (string, string) {
	name := text(spec.ChildByFieldName("name"), d.unit.content)
	if name == "" {
		name = text(firstNamed(spec), d.unit.content)
	}
	name = trimQuotes(name)
	alias := name
	if a := spec.ChildByFieldName("alias"); a != nil {
		alias = trimQuotes(text(a, d.unit.content))
	}
	return name, alias
}

func (d *declarer) alias(n *sitter.Node, exported bool) {
	name := text(n.ChildByFieldName("name"), d.unit.content)
	sym := &typeexpr.Symbol{Name: name, File: d.unit.Path, Kind: typeexpr.AliasSymbol}
	d.declareParams(sym, n.ChildByFieldName("type_parameters"))
	d.unit.scope[name] = sym
	d.aliases = append(d.aliases, pending{sym: sym, node: n, first: true})
	if exported {
		d.unit.exports[name] = name
	}
}

// iface declares an interface. Repeated declarations of one name merge
// into the first symbol.
func (d *declarer) iface(n *sitter.Node, exported bool) {
	name := text(n.ChildByFieldName("name"), d.unit.content)
	sym, ok := d.unit.scope[name]
	first := !ok || sym.Kind != typeexpr.InterfaceSymbol || sym.File != d.unit.Path
	if first {
		sym = &typeexpr.Symbol{Name: name, File: d.unit.Path, Kind: typeexpr.InterfaceSymbol}
		d.declareParams(sym, n.ChildByFieldName("type_parameters"))
		d.unit.scope[name] = sym
	}
	d.interfaces = append(d.interfaces, pending{sym: sym, node: n, first: first})
	if exported {
		d.unit.exports[name] = name
	}
}

// enum declares an enum as an alias of the union of its member values.
// Members without an initializer continue numbering from the previous
// numeric member.
func (d *declarer) enum(n *sitter.Node, exported bool) {
	name := text(n.ChildByFieldName("name"), d.unit.content)
	sym := &typeexpr.Symbol{Name: name, File: d.unit.Path, Kind: typeexpr.AliasSymbol}

	var (
		members []typeexpr.Expr
		next    float64
	)
	for _, m := range namedChildren(n.ChildByFieldName("body")) {
		initializer := m.ChildByFieldName("value")
		if m.Type() != "enum_assignment" || initializer == nil {
			members = append(members, typeexpr.NewLiteral(text(m, d.unit.content), typeexpr.NumberLiteral, next))
			next++
			continue
		}
		raw := text(initializer, d.unit.content)
		switch initializer.Type() {
		case "string":
			members = append(members, typeexpr.NewLiteral(raw, typeexpr.StringLiteral, unquote(raw)))
		default:
			v, ok := parseNumber(raw)
			if !ok {
				members = append(members, typeexpr.NewUnsupported(raw, initializer.Type()))
				continue
			}
			members = append(members, typeexpr.NewLiteral(raw, typeexpr.NumberLiteral, v))
			next = v + 1
		}
	}

	switch len(members) {
	case 0:
		sym.Body = typeexpr.NewPrimitive(name, typeexpr.Never)
	case 1:
		sym.Body = members[0]
	default:
		sym.Body = typeexpr.NewUnion(text(n, d.unit.content), members)
	}
	d.unit.scope[name] = sym
	if exported {
		d.unit.exports[name] = name
	}
}

func (d *declarer) declareParams(sym *typeexpr.Symbol, params *sitter.Node) {
	for _, p := range namedChildren(params) {
		if p.Type() != "type_parameter" {
			continue
		}
		name := text(p.ChildByFieldName("name"), d.unit.content)
		sym.Params = append(sym.Params, typeexpr.TypeParam{ID: typeexpr.ParamID{Owner: sym, Name: name}})
	}
}

// link loads the files named by relative imports and re-exports.
func (d *declarer) link(ctx context.Context) error {
	for _, n := range d.links {
		spec := unquote(text(n.ChildByFieldName("source"), d.unit.content))
		if !isRelative(spec) {
			d.loader.logger.Debug("skipping package import",
				slog.String("component", "source"),
				slog.String("path", d.unit.Path),
				slog.String("module", spec))
			continue
		}
		target, ok := resolveImport(d.unit.Path, spec)
		if !ok {
			d.loader.logger.Warn("import not found",
				slog.String("component", "source"),
				slog.String("path", d.unit.Path),
				slog.String("module", spec))
			continue
		}
		other, err := d.loader.load(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to load %q imported by %s: %w", spec, d.unit.Path, err)
		}

		if n.Type() == "import_statement" {
			d.bindImports(n, other)
		} else {
			d.bindReexports(n, other)
		}
	}
	return nil
}

func (d *declarer) bindImports(n *sitter.Node, other *Unit) {
	clause := childOfType(n, "import_clause")
	if clause == nil {
		return
	}
	for _, c := range namedChildren(clause) {
		switch c.Type() {
		case "namespace_import":
			d.unit.namespaces[text(firstNamed(c), d.unit.content)] = other
		case "named_imports":
			for _, spec := range namedChildren(c) {
				name, local := d.specifier(spec)
				d.unit.imports[local] = exportRef{unit: other, name: name}
				if sym := other.exportedSymbol(name, make(map[*Unit]bool)); sym != nil {
					d.unit.scope[local] = sym
				}
			}
		default:
			d.loader.logger.Debug("skipping default import",
				slog.String("component", "source"),
				slog.String("path", d.unit.Path),
				slog.String("name", text(c, d.unit.content)))
		}
	}
}

func (d *declarer) bindReexports(n *sitter.Node, other *Unit) {
	clause := childOfType(n, "export_clause")
	if clause == nil {
		if childOfType(n, "namespace_export") == nil {
			d.unit.star = append(d.unit.star, other)
		}
		return
	}
	for _, spec := range namedChildren(clause) {
		name, alias := d.specifier(spec)
		d.unit.reexports[alias] = exportRef{unit: other, name: name}
	}
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return unquote(s)
	}
	return s
}
