package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"farmai/pkg/provider"
	"farmai/pkg/tool"
	"farmai/pkg/types"
)

// Config contains OpenAI credential and runtime options.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	HTTPClient   *http.Client
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Executor implements provider.Executor using OpenAI chat completions.
type Executor struct {
	client       *goopenai.Client
	defaults     provider.Options
	systemPrompt string
}

const (
	providerName       = "openai"
	defaultTemperature = 0.7
	defaultModel       = goopenai.GPT4TurboPreview
)

// NewExecutor builds a chat completion executor.
func NewExecutor(cfg Config) (*Executor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	modelName := cfg.Model
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &Executor{
		client: goopenai.NewClientWithConfig(apiCfg),
		defaults: provider.Options{
			Model:       modelName,
			Temperature: temp,
			MaxTokens:   cfg.MaxTokens,
		},
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

func (e *Executor) Name() string {
	return providerName
}

// Execute implements provider.Executor.
func (e *Executor) Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*types.ProviderResponse, error) {
	options := provider.Apply(e.defaults, opts)

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	req := goopenai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    AdaptMessages(messages, e.systemPrompt),
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	}
	if options.EnableTools && len(tools) > 0 {
		req.Tools = adaptTools(tools)
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, provider.WrapErr(providerName, err)
	}
	if len(resp.Choices) == 0 {
		return nil, provider.WrapErr(providerName, errors.New("no choices returned"))
	}

	choice := resp.Choices[0]
	out := &types.ProviderResponse{
		Text:  choice.Message.Content,
		Model: resp.Model,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	// A single malformed call must not block a response that also carries
	// valid calls or text, so unparseable argument payloads are dropped.
	for _, tc := range choice.Message.ToolCalls {
		args, err := parseArguments(tc.Function.Arguments)
		if err != nil {
			log.Printf("openai: dropping tool call %s(%s): bad arguments: %v",
				tc.Function.Name, tc.Function.Arguments, err)
			continue
		}
		out.ToolCalls = append(out.ToolCalls, types.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	return out, nil
}

// adaptTools converts registry specs into OpenAI tool declarations. This
// is a pure field-level mapping: schema content passes through unchanged
// and declaration order is preserved.
func adaptTools(specs []tool.Spec) []goopenai.Tool {
	out := make([]goopenai.Tool, len(specs))
	for i, s := range specs {
		out[i] = goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  s.Parameters,
			},
		}
	}
	return out
}

func parseArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}

var _ provider.Executor = (*Executor)(nil)
