package tool

import "fmt"

// Spec describes one callable tool: a unique name, a human-readable
// description for the model, and a JSON-Schema object for its arguments.
// Specs are immutable once registered.
type Spec struct {
	Name        string
	Description string
	Category    string
	Parameters  map[string]any
}

// SchemaError indicates a malformed Spec rejected at registration time.
// It is fatal at startup and never surfaced per-request.
type SchemaError struct {
	Tool   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("tool %q: invalid schema: %s", e.Tool, e.Reason)
}

// NotFoundError indicates a requested tool is missing from the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// validateSpec checks that a Spec is well formed before it enters the
// registry. Parameters must be a JSON-Schema object schema; anything else
// would be rejected by the vendors at call time, so we fail fast instead.
func validateSpec(s Spec) error {
	if s.Name == "" {
		return &SchemaError{Tool: s.Name, Reason: "name is required"}
	}
	if s.Parameters == nil {
		return &SchemaError{Tool: s.Name, Reason: "parameters schema is required"}
	}
	typ, ok := s.Parameters["type"].(string)
	if !ok || typ != "object" {
		return &SchemaError{Tool: s.Name, Reason: `parameters must declare type "object"`}
	}
	if props, present := s.Parameters["properties"]; present {
		if _, ok := props.(map[string]any); !ok {
			return &SchemaError{Tool: s.Name, Reason: "properties must be an object"}
		}
	}
	if req, present := s.Parameters["required"]; present {
		if err := checkRequiredList(req); err != nil {
			return &SchemaError{Tool: s.Name, Reason: err.Error()}
		}
	}
	return nil
}

func checkRequiredList(v any) error {
	switch list := v.(type) {
	case []string:
		return nil
	case []any:
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("required list contains non-string entry %v", item)
			}
		}
		return nil
	default:
		return fmt.Errorf("required must be a list of field names, got %T", v)
	}
}

// RequiredFields returns the schema's required-field names, tolerating
// both []string and the []any shape produced by JSON decoding.
func RequiredFields(schema map[string]any) []string {
	if schema == nil {
		return nil
	}
	switch list := schema["required"].(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
