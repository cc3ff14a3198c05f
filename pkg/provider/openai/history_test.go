package openai

import (
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmai/pkg/types"
)

func TestAdaptMessagesSystemPromptAndRoles(t *testing.T) {
	msgs := []types.Message{
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello"},
	}

	out := AdaptMessages(msgs, "be helpful")
	require.Len(t, out, 3)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, out[0].Role)
	assert.Equal(t, "be helpful", out[0].Content)
	assert.Equal(t, goopenai.ChatMessageRoleUser, out[1].Role)
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, out[2].Role)
}

func TestAdaptMessagesPairsExplicitCallID(t *testing.T) {
	msgs := []types.Message{
		{Role: types.RoleUser, Content: "weather and prices please"},
		{Role: types.RoleAssistant, ToolCalls: []types.ToolCall{
			{ID: "call_1", Name: "getCurrentWeather", Arguments: map[string]any{}},
			{ID: "call_2", Name: "getMarketPrices", Arguments: map[string]any{"commodity": "corn"}},
		}},
		// Results supplied out of emission order; explicit IDs must win.
		{Role: types.RoleTool, Name: "getMarketPrices", ToolCallID: "call_2", Content: `{"price":4.87}`},
		{Role: types.RoleTool, Name: "getCurrentWeather", ToolCallID: "call_1", Content: `{"temperature":72}`},
	}

	out := AdaptMessages(msgs, "")
	require.Len(t, out, 4)

	assistant := out[1]
	require.Len(t, assistant.ToolCalls, 2)
	assert.Equal(t, "call_1", assistant.ToolCalls[0].ID)
	assert.Equal(t, `{"commodity":"corn"}`, assistant.ToolCalls[1].Function.Arguments)

	assert.Equal(t, goopenai.ChatMessageRoleTool, out[2].Role)
	assert.Equal(t, "call_2", out[2].ToolCallID)
	assert.Equal(t, "call_1", out[3].ToolCallID)
}

func TestAdaptMessagesPairsLegacyTurnsPositionally(t *testing.T) {
	msgs := []types.Message{
		{Role: types.RoleAssistant, ToolCalls: []types.ToolCall{
			{ID: "call_a", Name: "listFields"},
			{ID: "call_b", Name: "listEquipment"},
		}},
		{Role: types.RoleTool, Content: "fields result"},    // no ID: oldest unanswered
		{Role: types.RoleTool, Content: "equipment result"}, // no ID: next unanswered
	}

	out := AdaptMessages(msgs, "")
	require.Len(t, out, 3)
	assert.Equal(t, "call_a", out[1].ToolCallID)
	assert.Equal(t, "call_b", out[2].ToolCallID)
}

func TestAdaptMessagesDegradesUnmatchedToolTurn(t *testing.T) {
	tests := []struct {
		name string
		msgs []types.Message
	}{
		{
			name: "no pending calls at all",
			msgs: []types.Message{
				{Role: types.RoleTool, Name: "getCurrentWeather", Content: "orphan result"},
			},
		},
		{
			name: "explicit ID never issued",
			msgs: []types.Message{
				{Role: types.RoleAssistant, ToolCalls: []types.ToolCall{{ID: "call_1", Name: "listFields"}}},
				{Role: types.RoleTool, ToolCallID: "call_1", Content: "ok"},
				{Role: types.RoleTool, ToolCallID: "call_99", Content: "orphan result"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AdaptMessages(tt.msgs, "")
			last := out[len(out)-1]
			assert.Equal(t, goopenai.ChatMessageRoleUser, last.Role)
			assert.Equal(t, "Function result: orphan result", last.Content)
		})
	}
}

func TestAdaptMessagesIdempotent(t *testing.T) {
	msgs := []types.Message{
		{Role: types.RoleUser, Content: "check the north field"},
		{Role: types.RoleAssistant, ToolCalls: []types.ToolCall{
			{ID: "call_1", Name: "getField", Arguments: map[string]any{"fieldId": "n40", "detail": true}},
		}},
		{Role: types.RoleTool, Content: `{"crop":"corn"}`},
		{Role: types.RoleAssistant, Content: "North 40 is planted with corn."},
	}

	first := AdaptMessages(msgs, "sys")
	second := AdaptMessages(msgs, "sys")
	assert.Equal(t, first, second)

	// The input conversation must not have been mutated.
	assert.Empty(t, msgs[2].ToolCallID)
}

func TestMarshalArgumentsEmpty(t *testing.T) {
	assert.Equal(t, "{}", marshalArguments(nil))
	assert.Equal(t, "{}", marshalArguments(map[string]any{}))
}
