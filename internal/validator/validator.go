// Package validator checks documents previously written by tsdox.
package validator

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ValidateFile validates a FunctionDoc document in YAML or JSON format and
// reports progress to out.
func ValidateFile(filename string, out io.Writer) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return Validate(data, out)
}

// Validate validates a FunctionDoc document.
func Validate(data []byte, out io.Writer) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Try JSON
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse document as YAML or JSON: %w", err)
		}
	}

	records, ok := doc.([]interface{})
	if !ok {
		return fmt.Errorf("document must be a list of function records")
	}
	fmt.Fprintf(out, "✓ Found %d function records\n", len(records))

	for i, record := range records {
		path, err := validateRecord(record)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	fmt.Fprintln(out, "\n✅ Document validation passed!")
	return nil
}

func validateRecord(record interface{}) (string, error) {
	r, ok := record.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid record")
	}

	for key := range r {
		switch key {
		case "path", "summary", "description", "inputType", "returns":
		default:
			return "", fmt.Errorf("unknown field '%s'", key)
		}
	}

	path, ok := r["path"].(string)
	if !ok {
		return "", fmt.Errorf("missing or invalid 'path' field")
	}
	if _, ok := r["summary"].(string); !ok {
		return "", fmt.Errorf("missing or invalid 'summary' field")
	}
	if d, exists := r["description"]; exists {
		if _, ok := d.(string); !ok {
			return "", fmt.Errorf("invalid 'description' field")
		}
	}

	inputs, ok := r["inputType"].([]interface{})
	if !ok {
		return "", fmt.Errorf("missing or invalid 'inputType' field")
	}
	for i, in := range inputs {
		// Omitted parameters are written as null.
		if in == nil {
			continue
		}
		if err := validateSchema(fmt.Sprintf("inputType[%d]", i), in); err != nil {
			return "", err
		}
	}

	if ret, exists := r["returns"]; exists {
		if err := validateSchema("returns", ret); err != nil {
			return "", err
		}
	}

	return path, nil
}

func validateSchema(at string, schema interface{}) error {
	s, ok := schema.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%s: invalid schema", at)
	}

	// Placeholder for an unhandled construct
	if len(s) == 0 {
		return nil
	}

	for key := range s {
		switch key {
		case "type", "enum", "properties", "items", "oneOf":
		default:
			return fmt.Errorf("%s: unknown schema keyword '%s'", at, key)
		}
	}

	if variants, hasOneOf := s["oneOf"]; hasOneOf {
		if len(s) > 1 {
			return fmt.Errorf("%s: schema with oneOf should not have other keywords", at)
		}
		list, ok := variants.([]interface{})
		if !ok || len(list) == 0 {
			return fmt.Errorf("%s: 'oneOf' must be a non-empty list", at)
		}
		for i, v := range list {
			if err := validateSchema(fmt.Sprintf("%s.oneOf[%d]", at, i), v); err != nil {
				return err
			}
		}
		return nil
	}

	typ, ok := s["type"].(string)
	if !ok {
		return fmt.Errorf("%s: missing or invalid 'type' field", at)
	}

	if values, hasEnum := s["enum"]; hasEnum {
		list, ok := values.([]interface{})
		if !ok || len(list) == 0 {
			return fmt.Errorf("%s: 'enum' must be a non-empty list", at)
		}
	}

	switch typ {
	case "object":
		props, ok := s["properties"].(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: missing or invalid 'properties' field", at)
		}
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := validateSchema(at+".properties."+name, props[name]); err != nil {
				return err
			}
		}
	case "array":
		if items, exists := s["items"]; exists {
			if err := validateSchema(at+".items", items); err != nil {
				return err
			}
		}
	case "string", "number", "boolean", "any", "null":
	default:
		return fmt.Errorf("%s: unknown type '%s'", at, typ)
	}

	return nil
}
