package genai

import (
	"fmt"
	"math"
)

// FieldType enumerates the JSON types a schema field may declare.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// SchemaDescriptor declares the expected shape of a structured JSON response.
// Each result shape constructs its descriptor once and passes it by reference
// to every call; the decoder validates against it before unmarshaling into
// the caller's typed result.
type SchemaDescriptor struct {
	Title  string
	Fields []FieldSpec
}

// FieldSpec describes a single named field of an object schema.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool

	// Array bounds, nil means unbounded.
	MinItems *int
	MaxItems *int

	// Numeric bounds, nil means unbounded.
	Minimum *float64
	Maximum *float64

	// Items describes array elements; only the type-related parts of the
	// spec are consulted (Name and Required are ignored).
	Items *FieldSpec

	// Fields describes nested object fields.
	Fields []FieldSpec
}

// IsEmpty reports whether the descriptor declares no fields at all.
func (s *SchemaDescriptor) IsEmpty() bool {
	return s == nil || len(s.Fields) == 0
}

// Validate checks a decoded JSON value (as produced by encoding/json into
// any) against the descriptor. It returns the first violation found as a
// *SchemaValidationError with a path to the offending field, or nil when the
// value conforms.
func (s *SchemaDescriptor) Validate(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return &SchemaValidationError{Path: "$", Reason: fmt.Sprintf("expected object, got %T", value)}
	}
	return validateFields(s.Fields, obj, "")
}

func validateFields(fields []FieldSpec, obj map[string]any, prefix string) error {
	for _, field := range fields {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		raw, present := obj[field.Name]
		if !present {
			if field.Required {
				return &SchemaValidationError{Path: path, Reason: "required field is missing"}
			}
			continue
		}

		if err := validateValue(field, raw, path); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(field FieldSpec, raw any, path string) error {
	switch field.Type {
	case TypeString:
		if _, ok := raw.(string); !ok {
			return typeMismatch(path, field.Type, raw)
		}

	case TypeBoolean:
		if _, ok := raw.(bool); !ok {
			return typeMismatch(path, field.Type, raw)
		}

	case TypeNumber, TypeInteger:
		num, ok := raw.(float64)
		if !ok {
			return typeMismatch(path, field.Type, raw)
		}
		if field.Type == TypeInteger && num != math.Trunc(num) {
			return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("expected integer, got %v", num)}
		}
		if field.Minimum != nil && num < *field.Minimum {
			return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("value %v is below minimum %v", num, *field.Minimum)}
		}
		if field.Maximum != nil && num > *field.Maximum {
			return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("value %v is above maximum %v", num, *field.Maximum)}
		}

	case TypeArray:
		items, ok := raw.([]any)
		if !ok {
			return typeMismatch(path, field.Type, raw)
		}
		if field.MinItems != nil && len(items) < *field.MinItems {
			return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("array has %d items, minimum is %d", len(items), *field.MinItems)}
		}
		if field.MaxItems != nil && len(items) > *field.MaxItems {
			return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("array has %d items, maximum is %d", len(items), *field.MaxItems)}
		}
		if field.Items != nil {
			for i, item := range items {
				itemPath := fmt.Sprintf("%s[%d]", path, i)
				if err := validateValue(*field.Items, item, itemPath); err != nil {
					return err
				}
			}
		}

	case TypeObject:
		obj, ok := raw.(map[string]any)
		if !ok {
			return typeMismatch(path, field.Type, raw)
		}
		if err := validateFields(field.Fields, obj, path); err != nil {
			return err
		}

	default:
		return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("unknown schema type %q", field.Type)}
	}
	return nil
}

func typeMismatch(path string, want FieldType, got any) error {
	return &SchemaValidationError{Path: path, Reason: fmt.Sprintf("expected %s, got %T", want, got)}
}

// Helper constructors for bound pointers used in descriptor literals.

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }
