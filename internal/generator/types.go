package generator

import (
	"errors"
	"fmt"

	"github.com/gork-labs/tsdox/internal/resolver"
	"github.com/gork-labs/tsdox/internal/schema"
)

// FunctionDoc documents one exported function
type FunctionDoc struct {
	Path        string           `json:"path" yaml:"path"`
	Summary     string           `json:"summary" yaml:"summary"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	InputType   []*schema.Schema `json:"inputType" yaml:"inputType"`
	Returns     *schema.Schema   `json:"returns,omitempty" yaml:"returns,omitempty"`

	// Diagnostics collects the constructs that were replaced by a
	// placeholder while resolving the signature.
	Diagnostics []resolver.Diagnostic `json:"-" yaml:"-"`
}

var (
	// ErrIdentifierNotFound is returned when a file does not export the
	// requested function.
	ErrIdentifierNotFound = errors.New("identifier not found")
	// ErrMissingTypeAnnotation is returned when a function or one of its
	// parameters has no declared type.
	ErrMissingTypeAnnotation = errors.New("missing type annotation")
)

// NotFoundError reports an identifier that a file does not export as a
// function
type NotFoundError struct {
	File       string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find '%s' in %s. (Have you exported a '%s' function?)", e.Identifier, e.File, e.Identifier)
}

func (e *NotFoundError) Unwrap() error {
	return ErrIdentifierNotFound
}

// MissingTypeAnnotationError names the declaration without a type. An
// empty Parameter means the return type is missing.
type MissingTypeAnnotationError struct {
	Function  string
	Parameter string
}

func (e *MissingTypeAnnotationError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("function '%s' has no return type annotation", e.Function)
	}
	return fmt.Sprintf("parameter '%s' of function '%s' has no type annotation", e.Parameter, e.Function)
}

func (e *MissingTypeAnnotationError) Unwrap() error {
	return ErrMissingTypeAnnotation
}
