package resolver

import "fmt"

// DiagnosticKind classifies a recoverable resolution problem.
type DiagnosticKind string

const (
	// UnhandledTypeConstruct is a construct outside the modelled type
	// algebra, or a reference that could not be bound to a declaration.
	UnhandledTypeConstruct DiagnosticKind = "unhandled type construct"
	// RecursiveType is a named type re-entered while it was still being
	// resolved, or a nesting deeper than the configured limit.
	RecursiveType DiagnosticKind = "recursive type"
	// IncompatibleIntersection is an intersection mixing object and
	// non-object parts; the later part replaces the earlier ones.
	IncompatibleIntersection DiagnosticKind = "incompatible intersection"
)

// Diagnostic reports a construct that contributed a placeholder instead of
// a resolved schema.
type Diagnostic struct {
	Component string
	Kind      DiagnosticKind
	Construct string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Component, d.Kind, d.Construct)
}
