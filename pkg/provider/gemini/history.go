package gemini

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"farmai/pkg/types"
)

const (
	roleUser  = "user"
	roleModel = "model"

	// systemAck is the synthetic model acknowledgement paired with the
	// system prompt: this vendor's legacy chat path has no first-class
	// system role, so instructions travel as a leading user/model pair.
	systemAck = "Understood. I will follow these instructions."

	degradedResultPrefix = "Function result: "
)

// AdaptMessages converts the provider-agnostic conversation into Gemini
// contents. Assistant turns map to the "model" role, everything else maps
// to "user". Tool results travel as FunctionResponse parts on user-role
// contents; tool calls are replayed as FunctionCall parts. Attachment
// metadata is appended as bracketed text annotations, never as binary.
//
// Gemini has no call IDs, so pairing is positional: tool turns without a
// tool name consume the oldest unanswered call's name. A tool turn that
// cannot be paired with an issued call degrades to a plain user message.
//
// The adapter never mutates its input and is idempotent.
func AdaptMessages(messages []types.Message, systemPrompt string) []*genai.Content {
	out := make([]*genai.Content, 0, len(messages)+2)
	if systemPrompt != "" {
		out = append(out,
			&genai.Content{Role: roleUser, Parts: []genai.Part{genai.Text(systemPrompt)}},
			&genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text(systemAck)}},
		)
	}

	var pending []string // names of unanswered calls, oldest first

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleAssistant:
			var parts []genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, genai.FunctionCall{
					Name: tc.Name,
					Args: tc.Arguments,
				})
				pending = append(pending, tc.Name)
			}
			if len(parts) == 0 {
				parts = append(parts, genai.Text(""))
			}
			out = append(out, &genai.Content{Role: roleModel, Parts: parts})

		case types.RoleTool:
			name, ok := consumeCallName(&pending, msg.Name)
			if !ok {
				log.Printf("gemini adapter: tool result has no pending call, degrading to user message")
				out = append(out, &genai.Content{
					Role:  roleUser,
					Parts: []genai.Part{genai.Text(degradedResultPrefix + msg.Content)},
				})
				continue
			}
			out = append(out, &genai.Content{
				Role: roleUser,
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     name,
					Response: toResponseMap(msg.Content),
				}},
			})

		default: // user and system turns both travel as user text
			text := msg.Content
			for _, att := range msg.Attachments {
				text += renderAttachment(att)
			}
			out = append(out, &genai.Content{
				Role:  roleUser,
				Parts: []genai.Part{genai.Text(text)},
			})
		}
	}

	return out
}

// consumeCallName pairs a tool turn with a preceding call. A named turn
// consumes the matching pending entry; an unnamed legacy turn consumes
// the oldest one.
func consumeCallName(pending *[]string, explicit string) (string, bool) {
	queue := *pending
	if explicit != "" {
		for i, name := range queue {
			if name == explicit {
				*pending = append(queue[:i:i], queue[i+1:]...)
				return name, true
			}
		}
		// A named result for a call that was never issued cannot be
		// answered: the vendor rejects a FunctionResponse without a
		// matching FunctionCall.
		return "", false
	}
	if len(queue) == 0 {
		return "", false
	}
	*pending = queue[1:]
	return queue[0], true
}

// toResponseMap decodes a tool result body into the map shape Gemini
// requires for FunctionResponse. Non-object payloads are wrapped.
func toResponseMap(content string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &m); err == nil && m != nil {
		return m
	}
	return map[string]any{"content": content}
}

func renderAttachment(att types.Attachment) string {
	if att.MIMEType != "" {
		return fmt.Sprintf("\n[Attached file: %s (%s)]", att.FileName, att.MIMEType)
	}
	return fmt.Sprintf("\n[Attached file: %s]", att.FileName)
}
