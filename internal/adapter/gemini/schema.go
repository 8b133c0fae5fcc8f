package gemini

import (
	"strings"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// responseSchema converts a schema descriptor into the API's schema dialect.
// The service speaks an OpenAPI-flavored subset with uppercase type names.
func responseSchema(schema *genai.SchemaDescriptor) map[string]any {
	if schema.IsEmpty() {
		return nil
	}
	out := objectSchema(schema.Fields)
	if schema.Title != "" {
		out["title"] = schema.Title
	}
	return out
}

func objectSchema(fields []genai.FieldSpec) map[string]any {
	properties := make(map[string]any, len(fields))
	var required []string

	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	out := map[string]any{
		"type":       "OBJECT",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func fieldSchema(field genai.FieldSpec) map[string]any {
	out := map[string]any{
		"type": strings.ToUpper(string(field.Type)),
	}
	if field.Description != "" {
		out["description"] = field.Description
	}

	switch field.Type {
	case genai.TypeArray:
		if field.Items != nil {
			out["items"] = fieldSchema(*field.Items)
		}
		if field.MinItems != nil {
			out["minItems"] = *field.MinItems
		}
		if field.MaxItems != nil {
			out["maxItems"] = *field.MaxItems
		}
	case genai.TypeObject:
		nested := objectSchema(field.Fields)
		out["properties"] = nested["properties"]
		if required, ok := nested["required"]; ok {
			out["required"] = required
		}
	case genai.TypeNumber, genai.TypeInteger:
		if field.Minimum != nil {
			out["minimum"] = *field.Minimum
		}
		if field.Maximum != nil {
			out["maximum"] = *field.Maximum
		}
	}
	return out
}
