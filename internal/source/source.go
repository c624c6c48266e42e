// Package source loads TypeScript files into symbol tables and function
// records that the resolver and the generator work from.
package source

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gork-labs/tsdox/internal/typeexpr"
)

var (
	// ErrFileNotFound is returned when a requested file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrParseFailure is returned when a file cannot be parsed.
	ErrParseFailure = errors.New("parse failure")
	// ErrFileTooLarge is returned when a file exceeds the loader's size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ParseError locates the first syntax error of a file.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// Parameter is a declared function parameter. Type is nil when the
// parameter has no type annotation.
type Parameter struct {
	Name string
	Type typeexpr.Expr
}

// Function is a function-like declaration: a function declaration, or an
// arrow function or function expression bound to a variable.
type Function struct {
	Name   string
	File   string
	Line   int
	Params []Parameter
	// Returns is nil when the function has no return type annotation.
	Returns typeexpr.Expr

	// stmt is the top-level statement holding the declaration.
	stmt *sitter.Node
	unit *Unit
}

// Unit is one loaded source file.
type Unit struct {
	Path string

	content []byte
	root    *sitter.Node

	// scope holds every type name visible in the file: local declarations
	// and imported names.
	scope      map[string]*typeexpr.Symbol
	namespaces map[string]*Unit

	functions map[string]*Function
	order     []string

	// imports maps local names to the declaration they were imported
	// from; exports maps exported names to local names.
	imports   map[string]exportRef
	exports   map[string]string
	reexports map[string]exportRef
	star      []*Unit
}

// exportRef names an export of another file.
type exportRef struct {
	unit *Unit
	name string
}

func newUnit(path string, content []byte, root *sitter.Node) *Unit {
	return &Unit{
		Path:       path,
		content:    content,
		root:       root,
		scope:      make(map[string]*typeexpr.Symbol),
		namespaces: make(map[string]*Unit),
		functions:  make(map[string]*Function),
		imports:    make(map[string]exportRef),
		exports:    make(map[string]string),
		reexports:  make(map[string]exportRef),
	}
}

// Symbol returns the type declaration name refers to in the file.
func (u *Unit) Symbol(name string) (*typeexpr.Symbol, bool) {
	sym, ok := u.scope[name]
	return sym, ok
}

// Functions returns the function-like declarations of the file in source
// order.
func (u *Unit) Functions() []*Function {
	out := make([]*Function, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.functions[name])
	}
	return out
}

// Exports returns the names the file exports, local and re-exported.
func (u *Unit) Exports() []string {
	out := make([]string, 0, len(u.exports)+len(u.reexports))
	for name := range u.exports {
		out = append(out, name)
	}
	for name := range u.reexports {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// exportedSymbol finds the type declaration behind an exported name,
// following re-exports.
func (u *Unit) exportedSymbol(name string, seen map[*Unit]bool) *typeexpr.Symbol {
	if seen[u] {
		return nil
	}
	seen[u] = true

	if local, ok := u.exports[name]; ok {
		if sym, ok := u.scope[local]; ok {
			return sym
		}
	}
	if re, ok := u.reexports[name]; ok {
		return re.unit.exportedSymbol(re.name, seen)
	}
	for _, other := range u.star {
		if sym := other.exportedSymbol(name, seen); sym != nil {
			return sym
		}
	}
	return nil
}
