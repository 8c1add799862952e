package schema

import "fmt"

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type.
	Name() string
	// JSONType returns the JSON Schema type keyword.
	JSONType() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string     { return "string" }
func (t *StringType) JSONType() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// ParseJSONType converts a JSON Schema property definition into a Type.
// Submission payloads carry answers as strings, so "string" is the only supported type.
func ParseJSONType(prop map[string]any) (Type, error) {
	name, _ := prop["type"].(string)
	switch name {
	case "string":
		return String(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %q", name)
	}
}
