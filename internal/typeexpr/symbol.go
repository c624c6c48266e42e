package typeexpr

// SymbolKind distinguishes aliases from interfaces.
type SymbolKind int

const (
	AliasSymbol SymbolKind = iota
	InterfaceSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case AliasSymbol:
		return "alias"
	case InterfaceSymbol:
		return "interface"
	default:
		return "unknown"
	}
}

// ParamID identifies a type parameter. Owner is the declaring symbol, or
// nil for parameters of a generic function, which are never bound.
type ParamID struct {
	Owner *Symbol
	Name  string
}

// TypeParam is a declared type parameter with its optional default.
type TypeParam struct {
	ID      ParamID
	Default Expr
}

// Symbol is a named type declaration. Aliases use Body; interfaces use
// Heritage and Fields. A symbol is filled in once by the loader and is
// read-only afterwards.
type Symbol struct {
	Name   string
	File   string
	Kind   SymbolKind
	Params []TypeParam

	Body Expr

	Heritage []*HeritageRef
	Fields   []Field
}

// IsGeneric reports whether the symbol declares type parameters.
func (s *Symbol) IsGeneric() bool {
	return len(s.Params) > 0
}

// Param returns the ParamID for the named parameter of s.
func (s *Symbol) Param(name string) (ParamID, bool) {
	for _, p := range s.Params {
		if p.ID.Name == name {
			return p.ID, true
		}
	}
	return ParamID{}, false
}
