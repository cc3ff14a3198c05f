package provider

import (
	"context"
	"fmt"
	"time"

	"farmai/pkg/tool"
	"farmai/pkg/types"
)

// Options contains configurable parameters for one Execute call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	EnableTools bool
	Timeout     time.Duration
}

// Option is a functional option for configuring Options.
type Option func(*Options)

func WithModel(m string) Option {
	return func(o *Options) { o.Model = m }
}

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// WithToolsEnabled controls whether tool declarations are sent. The
// validator disables tools for its judgement call.
func WithToolsEnabled(enabled bool) Option {
	return func(o *Options) { o.EnableTools = enabled }
}

// WithTimeout bounds the provider call. A timed-out call fails with a
// *Error exactly like a transport failure, so the orchestrator's fallback
// handling applies uniformly.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// Apply builds an Options from defaults plus the given options.
func Apply(defaults Options, opts []Option) Options {
	o := defaults
	o.EnableTools = true
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Executor wraps one vendor's request/response cycle: it adapts messages
// and tool declarations into the vendor's wire format, issues the call,
// and normalizes the reply. Implementations must be idempotent over their
// inputs so the orchestrator can retry against a second vendor without
// re-building state.
type Executor interface {
	// Name returns the provider name (e.g. "openai", "gemini").
	Name() string

	// Execute sends the conversation and declared tools and returns the
	// normalized response. Transport failures, non-2xx statuses, malformed
	// vendor payloads and timeouts all surface as *Error.
	Execute(ctx context.Context, messages []types.Message, tools []tool.Spec, opts ...Option) (*types.ProviderResponse, error)
}

// Error is a provider-level failure. The orchestrator treats any *Error
// from the primary as a trigger for fallback.
type Error struct {
	Provider string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// WrapErr wraps a vendor failure into a *Error tagged with the provider.
func WrapErr(name string, cause error) *Error {
	return &Error{Provider: name, Cause: cause}
}
