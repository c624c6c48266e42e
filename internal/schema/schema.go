// Package schema holds the resolved, JSON-Schema-like description of a type.
//
// A nil *Schema is the Omit value: the construct it came from (void,
// undefined, never, an unbound parameter) must not appear in the output.
// Schemas are treated as immutable once built, so subtrees may be shared.
package schema

import (
	"github.com/goccy/go-json"
)

// Kind tags the variant a Schema holds.
type Kind int

const (
	// Placeholder stands in for a construct the resolver could not handle.
	Placeholder Kind = iota
	Primitive
	Enum
	Object
	Array
	OneOf
	Any
	Null
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Primitive:
		return "primitive"
	case Enum:
		return "enum"
	case Object:
		return "object"
	case Array:
		return "array"
	case OneOf:
		return "oneOf"
	case Any:
		return "any"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Schema is a resolved type.
type Schema struct {
	Kind       Kind
	Type       string
	Enum       []any
	Properties *Properties
	Items      *Schema
	OneOf      []*Schema
}

// NewPrimitive returns {type: t}.
func NewPrimitive(t string) *Schema {
	return &Schema{Kind: Primitive, Type: t}
}

// NewEnum returns {type: t, enum: values}.
func NewEnum(t string, values ...any) *Schema {
	return &Schema{Kind: Enum, Type: t, Enum: values}
}

// NewObject returns an object with no properties.
func NewObject() *Schema {
	return &Schema{Kind: Object, Type: "object", Properties: NewProperties()}
}

// NewArray returns {type: array, items: items}.
func NewArray(items *Schema) *Schema {
	return &Schema{Kind: Array, Type: "array", Items: items}
}

// NewOneOf returns {oneOf: variants}.
func NewOneOf(variants []*Schema) *Schema {
	return &Schema{Kind: OneOf, OneOf: variants}
}

func NewAny() *Schema {
	return &Schema{Kind: Any, Type: "any"}
}

func NewNull() *Schema {
	return &Schema{Kind: Null, Type: "null"}
}

// NewPlaceholder returns the empty schema {}.
func NewPlaceholder() *Schema {
	return &Schema{Kind: Placeholder}
}

// IsObject reports whether s is an ObjectOf value.
func (s *Schema) IsObject() bool {
	return s != nil && s.Kind == Object
}

// StringKeys returns the string values of an EnumOf(string) schema.
func (s *Schema) StringKeys() ([]string, bool) {
	if s == nil || s.Kind != Enum || s.Type != "string" {
		return nil, false
	}
	keys := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		str, ok := v.(string)
		if !ok {
			return nil, false
		}
		keys = append(keys, str)
	}
	return keys, true
}

type wireSchema struct {
	Type       string      `json:"type,omitempty" yaml:"type,omitempty"`
	Enum       []any       `json:"enum,omitempty" yaml:"enum,omitempty"`
	Properties *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema     `json:"items,omitempty" yaml:"items,omitempty"`
	OneOf      []*Schema   `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

func (s *Schema) wire() wireSchema {
	w := wireSchema{
		Type:  s.Type,
		Enum:  s.Enum,
		Items: s.Items,
		OneOf: s.OneOf,
	}
	if s.Kind == Object {
		w.Properties = s.Properties
		if w.Properties == nil {
			w.Properties = NewProperties()
		}
	}
	return w
}

// MarshalJSON renders the schema with only the keys its kind uses.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (s *Schema) MarshalYAML() (interface{}, error) {
	return s.wire(), nil
}
