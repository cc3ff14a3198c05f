package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func TestRegisterRejectsMalformedSchema(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{
			name: "missing name",
			spec: Spec{Parameters: objectSchema(nil)},
		},
		{
			name: "nil parameters",
			spec: Spec{Name: "broken"},
		},
		{
			name: "non-object type",
			spec: Spec{Name: "broken", Parameters: map[string]any{"type": "string"}},
		},
		{
			name: "properties not an object",
			spec: Spec{Name: "broken", Parameters: map[string]any{
				"type": "object", "properties": "nope",
			}},
		},
		{
			name: "required not a list",
			spec: Spec{Name: "broken", Parameters: map[string]any{
				"type": "object", "required": 42,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.spec)
			require.Error(t, err)
			var schemaErr *SchemaError
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	spec := Spec{Name: "dup", Parameters: objectSchema(nil)}
	require.NoError(t, r.Register(spec))

	err := r.Register(spec)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		require.NoError(t, r.Register(Spec{Name: n, Category: "a", Parameters: objectSchema(nil)}))
	}
	require.NoError(t, r.Register(Spec{Name: "other", Category: "b", Parameters: objectSchema(nil)}))

	var got []string
	for _, s := range r.List() {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "other"}, got)

	got = nil
	for _, s := range r.List("a") {
		got = append(got, s.Name)
	}
	assert.Equal(t, names, got)
}

func TestFindCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{Name: "getCurrentWeather", Parameters: objectSchema(nil)}))

	s, ok := r.Find("getcurrentweather")
	require.True(t, ok)
	assert.Equal(t, "getCurrentWeather", s.Name)

	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestGenerateSchema(t *testing.T) {
	type args struct {
		Location string  `json:"location" description:"City name"`
		Days     int     `json:"days,omitempty" description:"Forecast days"`
		Unit     string  `json:"unit,omitempty" enum:"celsius,fahrenheit"`
		Lat      float64 `json:"lat,omitempty"`
	}

	schema := GenerateSchema(args{})
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"location"}, schema["required"])

	props := schema["properties"].(map[string]any)
	loc := props["location"].(map[string]any)
	assert.Equal(t, "string", loc["type"])
	assert.Equal(t, "City name", loc["description"])

	assert.Equal(t, "integer", props["days"].(map[string]any)["type"])
	assert.Equal(t, "number", props["lat"].(map[string]any)["type"])
	assert.Equal(t, []string{"celsius", "fahrenheit"}, props["unit"].(map[string]any)["enum"])
}

func TestValidateArguments(t *testing.T) {
	spec := Spec{
		Name: "getMarketPrices",
		Parameters: objectSchema(map[string]any{
			"commodity": map[string]any{"type": "string"},
			"limit":     map[string]any{"type": "integer"},
		}, "commodity"),
	}

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"commodity": "corn"}, false},
		{"valid with number", map[string]any{"commodity": "corn", "limit": float64(5)}, false},
		{"missing required", map[string]any{"limit": float64(5)}, true},
		{"wrong type", map[string]any{"commodity": 12}, true},
		{"extra field tolerated", map[string]any{"commodity": "corn", "verbose": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArguments(spec, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
