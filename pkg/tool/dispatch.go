package tool

import (
	"context"
	"fmt"
)

// Result is the outcome of one tool invocation. Tool failures are data,
// not errors: a failed lookup still produces a Result the model can read
// and react to on its next turn.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Dispatcher hands a model-requested call to whatever implements the tool.
// The orchestration core treats this as an opaque synchronous boundary.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) Result
}

// DispatcherFunc adapts a plain function into a Dispatcher.
type DispatcherFunc func(ctx context.Context, name string, args map[string]any) Result

func (f DispatcherFunc) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	return f(ctx, name, args)
}

// ValidateArguments checks a call's argument bag against the registered
// schema: required fields must be present and values must match the
// declared primitive types. This catches malformed payloads at the
// boundary instead of deep inside a handler.
func ValidateArguments(spec Spec, args map[string]any) error {
	for _, field := range RequiredFields(spec.Parameters) {
		if _, ok := args[field]; !ok {
			return fmt.Errorf("tool %s: missing required field %q", spec.Name, field)
		}
	}

	props, _ := spec.Parameters["properties"].(map[string]any)
	if props == nil {
		return nil
	}
	for name, value := range args {
		propSchema, ok := props[name].(map[string]any)
		if !ok {
			continue // tolerate extra fields; vendors differ on strictness
		}
		declared, _ := propSchema["type"].(string)
		if declared == "" {
			continue
		}
		if err := checkType(value, declared); err != nil {
			return fmt.Errorf("tool %s: field %q: %w", spec.Name, name, err)
		}
	}
	return nil
}

func checkType(value any, expected string) error {
	if value == nil {
		return nil
	}
	switch expected {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number", "integer":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return fmt.Errorf("expected %s, got %T", expected, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	}
	return nil
}
