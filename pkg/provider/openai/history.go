package openai

import (
	"encoding/json"
	"log"

	goopenai "github.com/sashabaranov/go-openai"

	"farmai/pkg/types"
)

// degradedResultPrefix marks a tool result that could not be paired with
// any pending assistant call and was downgraded to a plain user message.
const degradedResultPrefix = "Function result: "

// AdaptMessages converts the provider-agnostic conversation into OpenAI
// chat messages. A non-empty systemPrompt is prepended as a system
// message.
//
// Pairing is rebuilt in one forward pass: every assistant tool call
// pushes its ID onto a FIFO, and every tool turn consumes one. A tool
// turn carrying an explicit ID consumes that ID; a legacy turn without
// one consumes the oldest unanswered ID. A tool turn with nothing left to
// answer is degraded to a synthetic user message rather than rejected, so
// partially-malformed history stays usable.
//
// The adapter never mutates its input and is idempotent: re-running it on
// the same conversation yields identical output.
func AdaptMessages(messages []types.Message, systemPrompt string) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}

	var pending []string // unanswered call IDs, oldest first

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			out = append(out, goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: msg.Content,
			})

		case types.RoleAssistant:
			oMsg := goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleAssistant,
				Content: msg.Content,
			}
			for _, tc := range msg.ToolCalls {
				oMsg.ToolCalls = append(oMsg.ToolCalls, goopenai.ToolCall{
					ID:   tc.ID,
					Type: goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{
						Name:      tc.Name,
						Arguments: marshalArguments(tc.Arguments),
					},
				})
				pending = append(pending, tc.ID)
			}
			out = append(out, oMsg)

		case types.RoleTool:
			callID, ok := consumeCallID(&pending, msg.ToolCallID)
			if !ok {
				log.Printf("openai adapter: tool result %q has no pending call, degrading to user message", msg.Name)
				out = append(out, goopenai.ChatCompletionMessage{
					Role:    goopenai.ChatMessageRoleUser,
					Content: degradedResultPrefix + msg.Content,
				})
				continue
			}
			out = append(out, goopenai.ChatCompletionMessage{
				Role:       goopenai.ChatMessageRoleTool,
				Content:    msg.Content,
				Name:       msg.Name,
				ToolCallID: callID,
			})

		default: // user and anything unknown
			out = append(out, goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleUser,
				Content: msg.Content,
				Name:    msg.Name,
			})
		}
	}

	return out
}

// consumeCallID resolves which pending call a tool turn answers. An
// explicit ID must match a pending call; an empty ID matches positionally
// against the oldest unanswered call.
func consumeCallID(pending *[]string, explicit string) (string, bool) {
	queue := *pending
	if len(queue) == 0 {
		return "", false
	}
	if explicit == "" {
		*pending = queue[1:]
		return queue[0], true
	}
	for i, id := range queue {
		if id == explicit {
			*pending = append(queue[:i:i], queue[i+1:]...)
			return id, true
		}
	}
	return "", false
}

func marshalArguments(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
