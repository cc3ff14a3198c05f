package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmai/pkg/tool"
)

func TestNewExecutor(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty API key", cfg: Config{}, wantErr: true},
		{name: "valid config", cfg: Config{APIKey: "test-key"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExecutor(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "openai", got.Name())
		})
	}
}

func TestAdaptToolsPreservesOrderAndSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"commodity": map[string]any{"type": "string", "enum": []string{"corn", "wheat"}},
		},
		"required": []string{"commodity"},
	}
	specs := []tool.Spec{
		{Name: "getMarketPrices", Description: "quotes", Parameters: schema},
		{Name: "listFields", Parameters: map[string]any{"type": "object"}},
	}

	out := adaptTools(specs)
	require.Len(t, out, 2)
	assert.Equal(t, "getMarketPrices", out[0].Function.Name)
	assert.Equal(t, "listFields", out[1].Function.Name)
	// Schema content passes through unchanged, by reference.
	assert.Equal(t, schema, out[0].Function.Parameters)
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty becomes empty map", raw: "", want: map[string]any{}},
		{name: "valid object", raw: `{"days": 3}`, want: map[string]any{"days": float64(3)}},
		{name: "malformed", raw: `{"days": `, wantErr: true},
		{name: "non-object", raw: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArguments(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
