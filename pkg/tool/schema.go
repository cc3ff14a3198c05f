package tool

import (
	"reflect"
	"strings"
)

// GenerateSchema creates a JSON-Schema object from a Go struct. Field
// names come from the "json" tag, descriptions from the "description"
// tag. Fields without omitempty are treated as required.
func GenerateSchema(v any) map[string]any {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return map[string]any{"type": "object"}
	}

	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := jsonTag
		if name == "" {
			name = field.Name
		}
		if comma := strings.Index(name, ","); comma != -1 {
			name = name[:comma]
		}

		propSchema := map[string]any{"type": schemaType(field.Type)}
		if desc := field.Tag.Get("description"); desc != "" {
			propSchema["description"] = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			propSchema["enum"] = strings.Split(enum, ",")
		}
		properties[name] = propSchema

		if !strings.Contains(jsonTag, "omitempty") {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func schemaType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}
