package memory

import (
	"sync"

	"farmai/pkg/types"
)

// Memory defines how conversation state is stored. Each conversation owns
// its own Memory; nothing here is shared across conversations.
type Memory interface {
	Add(message types.Message)
	AddToolResult(callID, toolName, content string)
	History() []types.Message
	Reset()
}

// InMemory is a simple thread-safe memory backend.
type InMemory struct {
	mu       sync.RWMutex
	messages []types.Message
}

// NewInMemory creates an empty memory store.
func NewInMemory() *InMemory {
	return &InMemory{messages: make([]types.Message, 0, 8)}
}

// Add appends a message to history.
func (m *InMemory) Add(message types.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

// AddToolResult appends a tool turn answering the given call.
func (m *InMemory) AddToolResult(callID, toolName, content string) {
	m.Add(types.Message{
		Role:       types.RoleTool,
		Name:       toolName,
		ToolCallID: callID,
		Content:    content,
	})
}

// History returns a copy of the conversation so callers cannot mutate
// internal state.
func (m *InMemory) History() []types.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Reset clears the conversation.
func (m *InMemory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = m.messages[:0]
}

var _ Memory = (*InMemory)(nil)
