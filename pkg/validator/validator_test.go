package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmai/pkg/parser"
	"farmai/pkg/provider"
	"farmai/pkg/tool"
	"farmai/pkg/types"
)

type stubExec struct {
	response *types.ProviderResponse
	err      error
	seen     []types.Message
	options  provider.Options
}

func (s *stubExec) Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*types.ProviderResponse, error) {
	s.seen = messages
	s.options = provider.Apply(provider.Options{}, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestValidateParsesVerdict(t *testing.T) {
	exec := &stubExec{response: &types.ProviderResponse{
		Text: `{"isValid": false, "confidence": 0.9, "explanation": "answer ignored the forecast", "suggestions": ["mention rain risk"]}`,
	}}

	v := New(exec).Validate(context.Background(), "weather?", "it is fine", nil)
	assert.False(t, v.IsValid)
	assert.Equal(t, 0.9, v.Confidence)
	assert.Equal(t, []string{"mention rain risk"}, v.Suggestions)

	// The judgement call must not offer tools and must run cold.
	assert.False(t, exec.options.EnableTools)
	assert.Equal(t, validationTemperature, exec.options.Temperature)
}

func TestValidateParsesFencedVerdict(t *testing.T) {
	exec := &stubExec{response: &types.ProviderResponse{
		Text: "```json\n{\"isValid\": true, \"confidence\": 0.8, \"explanation\": \"fine\"}\n```",
	}}

	v := New(exec).Validate(context.Background(), "q", "a", nil)
	assert.True(t, v.IsValid)
	assert.Equal(t, 0.8, v.Confidence)
}

func TestValidateFailsOpenOnUnparseableOutput(t *testing.T) {
	exec := &stubExec{response: &types.ProviderResponse{Text: "I think it looks good!"}}

	v := New(exec).Validate(context.Background(), "q", "a", nil)
	assert.True(t, v.IsValid)
	assert.Equal(t, 0.5, v.Confidence)
}

func TestValidateFailsOpenOnProviderError(t *testing.T) {
	exec := &stubExec{err: errors.New("both providers down")}

	v := New(exec).Validate(context.Background(), "q", "a", nil)
	assert.True(t, v.IsValid)
	assert.Equal(t, 0.5, v.Confidence)
}

func TestValidatePromptCarriesToolResults(t *testing.T) {
	exec := &stubExec{response: &types.ProviderResponse{
		Text: `{"isValid": true, "confidence": 1, "explanation": "ok"}`,
	}}

	outputs := []parser.ToolOutput{{
		Name:   "getCurrentWeather",
		Result: tool.Result{Success: true, Message: "ok", Data: map[string]any{"temperature": 72.0}},
	}}
	New(exec).Validate(context.Background(), "weather?", "72 and sunny", outputs)

	require.Len(t, exec.seen, 1)
	prompt := exec.seen[0].Content
	assert.Contains(t, prompt, "weather?")
	assert.Contains(t, prompt, "72 and sunny")
	assert.Contains(t, prompt, "getCurrentWeather")
	assert.Contains(t, prompt, `"temperature":72`)
}

func TestGenerateCorrectedAppendsFeedbackTurn(t *testing.T) {
	exec := &stubExec{response: &types.ProviderResponse{Text: "corrected answer"}}
	v := New(exec)

	history := []types.Message{{Role: types.RoleUser, Content: "original question"}}
	verdict := &Validation{
		IsValid:     false,
		Explanation: "missed the question",
		Suggestions: []string{"answer directly"},
	}

	resp, err := v.GenerateCorrected(context.Background(), history, nil, "old answer", verdict)
	require.NoError(t, err)
	assert.Equal(t, "corrected answer", resp.Text)

	require.Len(t, exec.seen, 3)
	assert.Equal(t, types.RoleUser, exec.seen[0].Role)
	assert.Equal(t, types.RoleAssistant, exec.seen[1].Role)
	assert.Equal(t, "old answer", exec.seen[1].Content)
	assert.Equal(t, types.RoleUser, exec.seen[2].Role)
	assert.Contains(t, exec.seen[2].Content, "missed the question")
	assert.Contains(t, exec.seen[2].Content, "answer directly")
}
