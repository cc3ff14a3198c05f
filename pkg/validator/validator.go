// Package validator implements the advisory response-review loop: a
// second, tools-disabled model call judges whether an answer matched the
// user's intent. Validation is a signal, never a gate: any failure to
// obtain or parse a judgement fails open.
package validator

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"farmai/pkg/parser"
	"farmai/pkg/prompt"
	"farmai/pkg/provider"
	"farmai/pkg/tool"
	"farmai/pkg/types"
)

// Validation is the model's judgement of a prior answer.
type Validation struct {
	IsValid     bool     `json:"isValid"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// executor is the slice of the orchestrator the validator needs.
type executor interface {
	Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*types.ProviderResponse, error)
}

// Validator reviews answers through a nested orchestrator call.
type Validator struct {
	exec executor
}

// New builds a Validator on top of an orchestrator.
func New(exec executor) *Validator {
	return &Validator{exec: exec}
}

// validationTemperature keeps the judgement call deterministic-ish.
const validationTemperature = 0.1

// failOpen is returned whenever a judgement cannot be obtained.
func failOpen(reason string) *Validation {
	return &Validation{
		IsValid:     true,
		Confidence:  0.5,
		Explanation: reason,
	}
}

// Validate asks the model to judge answer against userQuery in light of
// the tool results. It never returns an error: an unreachable provider or
// unparseable judgement yields the fail-open verdict.
func (v *Validator) Validate(ctx context.Context, userQuery, answer string, outputs []parser.ToolOutput) *Validation {
	text := prompt.Validation.Render(map[string]any{
		"query":       userQuery,
		"answer":      answer,
		"toolResults": renderOutputs(outputs),
	})

	resp, err := v.exec.Execute(ctx,
		[]types.Message{{Role: types.RoleUser, Content: text}},
		nil,
		provider.WithToolsEnabled(false),
		provider.WithTemperature(validationTemperature),
	)
	if err != nil {
		log.Printf("validator: judgement call failed, failing open: %v", err)
		return failOpen("validation unavailable")
	}

	var verdict Validation
	if err := json.Unmarshal([]byte(parser.CleanJSON(resp.Text)), &verdict); err != nil {
		log.Printf("validator: unparseable judgement, failing open: %v", err)
		return failOpen("validation output unparseable")
	}
	return &verdict
}

// GenerateCorrected re-invokes the orchestrator with the original history
// plus the prior answer and the validation feedback appended as a new
// user turn, and returns a fresh response.
func (v *Validator) GenerateCorrected(ctx context.Context, messages []types.Message, tools []tool.Spec, answer string, verdict *Validation) (*types.ProviderResponse, error) {
	feedback := prompt.Correction.Render(map[string]any{
		"answer":      answer,
		"explanation": verdict.Explanation,
		"suggestions": strings.Join(verdict.Suggestions, "\n"),
	})

	history := make([]types.Message, 0, len(messages)+2)
	history = append(history, messages...)
	history = append(history,
		types.Message{Role: types.RoleAssistant, Content: answer},
		types.Message{Role: types.RoleUser, Content: feedback},
	)

	return v.exec.Execute(ctx, history, tools, opts(tools)...)
}

func opts(tools []tool.Spec) []provider.Option {
	if len(tools) == 0 {
		return []provider.Option{provider.WithToolsEnabled(false)}
	}
	return nil
}

func renderOutputs(outputs []parser.ToolOutput) string {
	if len(outputs) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, o := range outputs {
		raw, err := json.Marshal(o.Result)
		if err != nil {
			continue
		}
		sb.WriteString("- ")
		sb.WriteString(o.Name)
		sb.WriteString(": ")
		sb.Write(raw)
		sb.WriteString("\n")
	}
	return sb.String()
}
