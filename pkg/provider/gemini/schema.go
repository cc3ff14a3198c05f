package gemini

import (
	"github.com/google/generative-ai-go/genai"

	"farmai/pkg/tool"
)

// adaptTools converts registry specs into Gemini function declarations.
// Declaration order is preserved. Schema content maps field-for-field;
// enums, descriptions and required lists pass through unchanged.
func adaptTools(specs []tool.Spec) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, len(specs))
	for i, s := range specs {
		decls[i] = &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  toSchema(s.Parameters),
		}
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// toSchema recursively converts a JSON-Schema object into genai.Schema.
func toSchema(js map[string]any) *genai.Schema {
	if js == nil {
		return &genai.Schema{Type: genai.TypeObject}
	}

	schema := &genai.Schema{Type: toSchemaType(js["type"])}
	if desc, ok := js["description"].(string); ok {
		schema.Description = desc
	}

	switch enum := js["enum"].(type) {
	case []string:
		schema.Enum = enum
	case []any:
		for _, v := range enum {
			if s, ok := v.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	if props, ok := js["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, sub := range props {
			if subMap, ok := sub.(map[string]any); ok {
				schema.Properties[name] = toSchema(subMap)
			}
		}
	}

	if items, ok := js["items"].(map[string]any); ok {
		schema.Items = toSchema(items)
	}

	schema.Required = tool.RequiredFields(js)
	return schema
}

func toSchemaType(v any) genai.Type {
	typ, _ := v.(string)
	switch typ {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
