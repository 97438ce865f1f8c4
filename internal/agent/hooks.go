// agent/hooks.go
package agent

import (
	"context"
	"time"
)

// Hook receives observability callbacks from a running session.
type Hook interface {
	OnTurnStart(ctx context.Context, turn int)
	OnBeforeCompletion(ctx context.Context, messages []ChatMessage, toolSchemas []ToolSchema)
	OnAfterCompletion(ctx context.Context, resp CompletionResponse)
	OnToolCall(ctx context.Context, call ToolCall)
	OnToolResult(ctx context.Context, result ToolResult)
	OnPause(ctx context.Context, question string)
	OnLimitReached(ctx context.Context, used, limit int)
	OnDone(ctx context.Context, finalAnalysis string)
	OnRetryAttempt(ctx context.Context, attempt int, maxAttempts int, delay time.Duration, err error)
}

// NopHook lets you implement only the hooks you need.
type NopHook struct{}

func (NopHook) OnTurnStart(context.Context, int)                               {}
func (NopHook) OnBeforeCompletion(context.Context, []ChatMessage, []ToolSchema) {}
func (NopHook) OnAfterCompletion(context.Context, CompletionResponse)           {}
func (NopHook) OnToolCall(context.Context, ToolCall)                            {}
func (NopHook) OnToolResult(context.Context, ToolResult)                        {}
func (NopHook) OnPause(context.Context, string)                                 {}
func (NopHook) OnLimitReached(context.Context, int, int)                        {}
func (NopHook) OnDone(context.Context, string)                                  {}
func (NopHook) OnRetryAttempt(context.Context, int, int, time.Duration, error)  {}

// Hooks broadcasts to every registered hook.
type Hooks []Hook

func (hs Hooks) OnTurnStart(ctx context.Context, turn int) {
	for _, h := range hs {
		h.OnTurnStart(ctx, turn)
	}
}
func (hs Hooks) OnBeforeCompletion(ctx context.Context, m []ChatMessage, schemas []ToolSchema) {
	for _, h := range hs {
		h.OnBeforeCompletion(ctx, m, schemas)
	}
}
func (hs Hooks) OnAfterCompletion(ctx context.Context, r CompletionResponse) {
	for _, h := range hs {
		h.OnAfterCompletion(ctx, r)
	}
}
func (hs Hooks) OnToolCall(ctx context.Context, c ToolCall) {
	for _, h := range hs {
		h.OnToolCall(ctx, c)
	}
}
func (hs Hooks) OnToolResult(ctx context.Context, r ToolResult) {
	for _, h := range hs {
		h.OnToolResult(ctx, r)
	}
}
func (hs Hooks) OnPause(ctx context.Context, question string) {
	for _, h := range hs {
		h.OnPause(ctx, question)
	}
}
func (hs Hooks) OnLimitReached(ctx context.Context, used, limit int) {
	for _, h := range hs {
		h.OnLimitReached(ctx, used, limit)
	}
}
func (hs Hooks) OnDone(ctx context.Context, finalAnalysis string) {
	for _, h := range hs {
		h.OnDone(ctx, finalAnalysis)
	}
}
func (hs Hooks) OnRetryAttempt(ctx context.Context, attempt int, maxAttempts int, delay time.Duration, err error) {
	for _, h := range hs {
		h.OnRetryAttempt(ctx, attempt, maxAttempts, delay, err)
	}
}
