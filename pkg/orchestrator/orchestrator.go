// Package orchestrator coordinates provider execution: it runs the
// primary provider, falls back to the secondary on failure or empty
// output, and drives the tool-call loop until the model produces a final
// text answer.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"farmai/pkg/memory"
	"farmai/pkg/provider"
	"farmai/pkg/tool"
	"farmai/pkg/types"
)

// Failure means both providers were exhausted. It is distinguishable from
// a provider-level error and carries the last underlying cause.
type Failure struct {
	Cause error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("all providers failed: %v", f.Cause)
}

func (f *Failure) Unwrap() error { return f.Cause }

// Config describes how an Orchestrator is assembled. Executors are
// injected so tests can substitute stubs; there is no ambient client
// state.
type Config struct {
	Primary    provider.Executor
	Fallback   provider.Executor // optional; nil disables failover
	Dispatcher tool.Dispatcher   // optional; nil turns every call into a failed Result
	Registry   *tool.Registry    // optional; enables argument validation before dispatch
	Memory     memory.Memory     // optional; Run records the turns it produces here
	MaxRounds  int               // tool-loop bound; default 5
}

// Orchestrator owns provider selection and the per-request tool loop.
// Conversation state lives in the optional Memory, which belongs to one
// conversation; each request still passes its own messages.
type Orchestrator struct {
	primary    provider.Executor
	fallback   provider.Executor
	dispatcher tool.Dispatcher
	registry   *tool.Registry
	memory     memory.Memory
	maxRounds  int
}

const defaultMaxRounds = 5

// New builds an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Primary == nil {
		return nil, fmt.Errorf("primary executor is required")
	}
	rounds := cfg.MaxRounds
	if rounds <= 0 {
		rounds = defaultMaxRounds
	}
	return &Orchestrator{
		primary:    cfg.Primary,
		fallback:   cfg.Fallback,
		dispatcher: cfg.Dispatcher,
		registry:   cfg.Registry,
		memory:     cfg.Memory,
		maxRounds:  rounds,
	}, nil
}

// Execute runs one model turn with failover. The primary's response is
// accepted only when it carries text or tool calls; an empty response is
// a soft failure because it gives the caller nothing actionable. The
// fallback's response is accepted as-is: fallback exhaustion must
// terminate the attempt, so there is no emptiness re-check. Exactly one
// fallback attempt is made: unbounded retries against a paid, latency
// sensitive API are a resource-exhaustion risk.
func (o *Orchestrator) Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*types.ProviderResponse, error) {
	resp, err := o.primary.Execute(ctx, messages, tools, opts...)
	if err == nil && !resp.IsEmpty() {
		return resp, nil
	}

	if err != nil {
		log.Printf("orchestrator: primary %s failed: %v", o.primary.Name(), err)
	} else {
		log.Printf("orchestrator: primary %s returned empty response, trying fallback", o.primary.Name())
		err = fmt.Errorf("provider %s returned empty response", o.primary.Name())
	}

	if o.fallback == nil {
		return nil, &Failure{Cause: err}
	}

	resp, fbErr := o.fallback.Execute(ctx, messages, tools, opts...)
	if fbErr != nil {
		log.Printf("orchestrator: fallback %s failed: %v", o.fallback.Name(), fbErr)
		return nil, &Failure{Cause: fbErr}
	}
	return resp, nil
}

// ToolOutcome pairs a dispatched call with its result, in dispatch order.
type ToolOutcome struct {
	Call   types.ToolCall
	Result tool.Result
}

// RunResult is the outcome of a full Run: the final model response, the
// conversation as it stood when the model answered, and every tool
// outcome along the way for downstream visualization synthesis.
type RunResult struct {
	Response *types.ProviderResponse
	Messages []types.Message
	Outcomes []ToolOutcome
}

// Run drives the conversation to a final text answer: each model turn may
// request tool calls, which are dispatched sequentially in emission order
// (later calls may depend on earlier results being visible), appended as
// tool turns, and fed back. The loop is bounded by MaxRounds; on the last
// round tools are disabled to force a text answer. Every turn Run produces
// is also recorded in the configured Memory, so a follow-up request can
// replay the exchange by passing the memory's history back in.
func (o *Orchestrator) Run(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...provider.Option) (*RunResult, error) {
	msgs := make([]types.Message, len(messages))
	copy(msgs, messages)

	result := &RunResult{}

	for round := 0; round < o.maxRounds; round++ {
		callOpts := opts
		if round == o.maxRounds-1 {
			callOpts = append(append([]provider.Option{}, opts...), provider.WithToolsEnabled(false))
		}

		resp, err := o.Execute(ctx, msgs, tools, callOpts...)
		if err != nil {
			return nil, err
		}

		if len(resp.ToolCalls) == 0 {
			o.remember(types.Message{Role: types.RoleAssistant, Content: resp.Text})
			result.Response = resp
			result.Messages = msgs
			return result, nil
		}

		callTurn := types.Message{
			Role:      types.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		}
		msgs = append(msgs, callTurn)
		o.remember(callTurn)

		for _, call := range resp.ToolCalls {
			outcome := o.dispatch(ctx, call)
			result.Outcomes = append(result.Outcomes, ToolOutcome{Call: call, Result: outcome})
			encoded := encodeResult(outcome)
			msgs = append(msgs, types.Message{
				Role:       types.RoleTool,
				Name:       call.Name,
				ToolCallID: call.ID,
				Content:    encoded,
			})
			if o.memory != nil {
				o.memory.AddToolResult(call.ID, call.Name, encoded)
			}
		}
	}

	// Unreachable in practice: the final round runs with tools disabled,
	// so the model cannot keep requesting calls.
	return nil, &Failure{Cause: fmt.Errorf("tool loop exceeded %d rounds", o.maxRounds)}
}

// dispatch validates a call against the registered schema and hands it to
// the dispatcher. Validation failures and unknown tools become failed
// Results the model can read, never errors.
func (o *Orchestrator) dispatch(ctx context.Context, call types.ToolCall) tool.Result {
	if o.registry != nil {
		spec, ok := o.registry.Get(call.Name)
		if !ok {
			return tool.Result{Success: false, Message: fmt.Sprintf("unknown tool: %s", call.Name)}
		}
		if err := tool.ValidateArguments(spec, call.Arguments); err != nil {
			return tool.Result{Success: false, Message: err.Error()}
		}
	}
	if o.dispatcher == nil {
		return tool.Result{Success: false, Message: "no tool dispatcher configured"}
	}
	return o.dispatcher.Dispatch(ctx, call.Name, call.Arguments)
}

func (o *Orchestrator) remember(msg types.Message) {
	if o.memory != nil {
		o.memory.Add(msg)
	}
}

func encodeResult(r tool.Result) string {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"message":%q}`, err.Error())
	}
	return string(raw)
}
