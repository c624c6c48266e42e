// Package typeexpr models type expressions as they are written in source,
// before any resolution takes place.
package typeexpr

// Expr is a type expression. The set of implementations is closed; the
// resolver dispatches over it with a type switch.
type Expr interface {
	// Raw returns the source text the expression was built from.
	Raw() string
	expr()
}

type node struct {
	raw string
}

func (n node) Raw() string { return n.raw }
func (node) expr()         {}

// PrimitiveKind names a keyword type.
type PrimitiveKind string

const (
	String    PrimitiveKind = "string"
	Boolean   PrimitiveKind = "boolean"
	Number    PrimitiveKind = "number"
	Any       PrimitiveKind = "any"
	Unknown   PrimitiveKind = "unknown"
	Null      PrimitiveKind = "null"
	Undefined PrimitiveKind = "undefined"
	Never     PrimitiveKind = "never"
	Void      PrimitiveKind = "void"
)

// LiteralKind is the primitive type a literal value belongs to.
type LiteralKind string

const (
	StringLiteral  LiteralKind = "string"
	BooleanLiteral LiteralKind = "boolean"
	NumberLiteral  LiteralKind = "number"
)

// Primitive is a keyword type such as string or void.
type Primitive struct {
	node
	Kind PrimitiveKind
}

// Literal is a literal type. Value holds a string, bool or float64
// depending on Kind.
type Literal struct {
	node
	Kind  LiteralKind
	Value any
}

// Array is T[].
type Array struct {
	node
	Elem Expr
}

// Tuple is [A, B, ...].
type Tuple struct {
	node
	Elems []Expr
}

// Field is a named member of a record or interface.
type Field struct {
	Name     string
	Type     Expr
	Optional bool
}

// Record is an inline object type.
type Record struct {
	node
	Fields []Field
}

// Union is A | B.
type Union struct {
	node
	Variants []Expr
}

// Intersection is A & B.
type Intersection struct {
	node
	Parts []Expr
}

// NamedRef references a declared alias or interface, possibly with type
// arguments. Symbol is nil when the name could not be bound to a
// declaration; the resolver then falls back to its built-in references.
type NamedRef struct {
	node
	Name   string
	Symbol *Symbol
	Args   []Expr
}

// GenericParam is a type parameter used inside a declaration body.
type GenericParam struct {
	node
	ID ParamID
}

// IndexedAccess is Object[Index].
type IndexedAccess struct {
	node
	Object Expr
	Index  Expr
}

// HeritageRef is the target of an interface extends clause.
type HeritageRef struct {
	node
	Base *NamedRef
}

// Unsupported is a construct outside the modelled type algebra, such as a
// function, conditional or mapped type. Kind is the syntax node kind.
type Unsupported struct {
	node
	Kind string
}

func NewPrimitive(raw string, kind PrimitiveKind) *Primitive {
	return &Primitive{node: node{raw}, Kind: kind}
}

func NewLiteral(raw string, kind LiteralKind, value any) *Literal {
	return &Literal{node: node{raw}, Kind: kind, Value: value}
}

func NewArray(raw string, elem Expr) *Array {
	return &Array{node: node{raw}, Elem: elem}
}

func NewTuple(raw string, elems []Expr) *Tuple {
	return &Tuple{node: node{raw}, Elems: elems}
}

func NewRecord(raw string, fields []Field) *Record {
	return &Record{node: node{raw}, Fields: fields}
}

func NewUnion(raw string, variants []Expr) *Union {
	return &Union{node: node{raw}, Variants: variants}
}

func NewIntersection(raw string, parts []Expr) *Intersection {
	return &Intersection{node: node{raw}, Parts: parts}
}

func NewNamedRef(raw, name string, sym *Symbol, args []Expr) *NamedRef {
	return &NamedRef{node: node{raw}, Name: name, Symbol: sym, Args: args}
}

func NewGenericParam(raw string, id ParamID) *GenericParam {
	return &GenericParam{node: node{raw}, ID: id}
}

func NewIndexedAccess(raw string, object, index Expr) *IndexedAccess {
	return &IndexedAccess{node: node{raw}, Object: object, Index: index}
}

func NewHeritageRef(base *NamedRef) *HeritageRef {
	return &HeritageRef{node: node{base.Raw()}, Base: base}
}

func NewUnsupported(raw, kind string) *Unsupported {
	return &Unsupported{node: node{raw}, Kind: kind}
}
