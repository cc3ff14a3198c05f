package types

// Role identifies who authored a turn in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall represents a request from the model to invoke a specific tool.
// Arguments are parsed into a map at the provider boundary; a call whose
// argument payload cannot be parsed is dropped there, so Arguments is
// always structurally valid for calls that reach the orchestrator.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Attachment is file metadata attached to a user turn. Only the metadata
// travels through the providers; binary payloads never enter the core.
type Attachment struct {
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type,omitempty"`
}

// Usage represents token usage statistics, normalized across vendors.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Message is a single conversation turn. Insertion order across a
// []Message is the dialogue timeline and must be preserved by adapters.
//
// For RoleTool turns, ToolCallID names the assistant call this turn
// answers. Legacy turns may leave it empty; adapters then match the turn
// positionally against the oldest unanswered assistant call.
type Message struct {
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Name        string       `json:"name,omitempty"`         // RoleTool: name of the tool that produced the result
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`   // RoleAssistant: calls the model issued this turn
	ToolCallID  string       `json:"tool_call_id,omitempty"` // RoleTool: ID of the call this turn answers
	Attachments []Attachment `json:"attachments,omitempty"`  // RoleUser: file metadata
}

// ProviderResponse is the normalized result of one provider invocation.
type ProviderResponse struct {
	Text      string     `json:"text"`
	Model     string     `json:"model"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Usage     Usage      `json:"usage"`
}

// IsEmpty reports whether the response carries no usable output: no text
// and no tool calls. The orchestrator treats an empty primary response as
// a soft failure.
func (r *ProviderResponse) IsEmpty() bool {
	return r == nil || (r.Text == "" && len(r.ToolCalls) == 0)
}
