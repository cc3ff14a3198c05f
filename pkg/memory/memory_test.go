package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmai/pkg/types"
)

func TestInMemoryHistoryIsACopy(t *testing.T) {
	m := NewInMemory()
	m.Add(types.Message{Role: types.RoleUser, Content: "hi"})

	history := m.History()
	history[0].Content = "mutated"

	assert.Equal(t, "hi", m.History()[0].Content)
}

func TestAddToolResult(t *testing.T) {
	m := NewInMemory()
	m.AddToolResult("call_1", "getCurrentWeather", `{"temperature":72}`)

	history := m.History()
	require.Len(t, history, 1)
	assert.Equal(t, types.RoleTool, history[0].Role)
	assert.Equal(t, "call_1", history[0].ToolCallID)
	assert.Equal(t, "getCurrentWeather", history[0].Name)
}

func TestReset(t *testing.T) {
	m := NewInMemory()
	m.Add(types.Message{Role: types.RoleUser, Content: "hi"})
	m.Reset()
	assert.Empty(t, m.History())
}
