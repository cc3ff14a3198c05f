package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"farmai/pkg/provider"
	"farmai/pkg/tool"
	"farmai/pkg/types"
)

// Config contains Gemini credential and runtime options.
type Config struct {
	APIKey       string
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Executor implements provider.Executor using Google Gemini.
type Executor struct {
	client       *genai.Client
	defaults     provider.Options
	systemPrompt string
}

const (
	providerName       = "gemini"
	defaultModel       = "gemini-1.5-pro"
	defaultTemperature = 0.5
)

// NewExecutor builds a Gemini executor.
func NewExecutor(ctx context.Context, cfg Config) (*Executor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &Executor{
		client: client,
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

// Close releases the underlying client connection.
func (e *Executor) Close() error {
	return e.client.Close()
}

// Execute implements provider.Executor.
func (e *Executor) Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*types.ProviderResponse, error) {
	options := provider.Apply(e.defaults, opts)

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	contents := AdaptMessages(messages, e.systemPrompt)
	if len(contents) == 0 {
		return nil, provider.WrapErr(providerName, errors.New("no messages to send"))
	}

	gm := e.client.GenerativeModel(options.Model)
	gm.SetTemperature(float32(options.Temperature))
	if options.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(options.MaxTokens))
	}
	if options.EnableTools && len(tools) > 0 {
		gm.Tools = adaptTools(tools)
	}

	// The chat session carries everything but the final turn as history;
	// the final turn's parts drive the new model turn.
	last := contents[len(contents)-1]
	cs := gm.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, provider.WrapErr(providerName, err)
	}

	return normalize(resp, options.Model), nil
}

// normalize converts a Gemini response into the provider-agnostic shape.
// Gemini does not issue call IDs, so each extracted call gets a synthetic
// one; downstream pairing for this vendor is positional anyway.
func normalize(resp *genai.GenerateContentResponse, model string) *types.ProviderResponse {
	out := &types.ProviderResponse{Model: model}
	if resp.UsageMetadata != nil {
		out.Usage = types.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			args := p.Args
			if args == nil {
				args = map[string]any{}
			}
			out.ToolCalls = append(out.ToolCalls, types.ToolCall{
				ID:        "call_" + uuid.NewString(),
				Name:      p.Name,
				Arguments: args,
			})
		}
	}
	out.Text = sb.String()
	return out
}

var _ provider.Executor = (*Executor)(nil)
