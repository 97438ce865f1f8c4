package main

import (
	"context"
	"log"
	"time"

	"github.com/raidctl/raid/internal/agent"
)

// progressHook logs the session's progress to stderr so the operator
// can follow a long investigation.
type progressHook struct {
	agent.NopHook
	verbose bool
}

func newProgressHook(verbose bool) *progressHook {
	return &progressHook{verbose: verbose}
}

func (h *progressHook) OnTurnStart(_ context.Context, turn int) {
	if h.verbose {
		log.Printf("turn %d", turn)
	}
}

func (h *progressHook) OnToolCall(_ context.Context, call agent.ToolCall) {
	log.Printf("running %s", call.Name)
}

func (h *progressHook) OnToolResult(_ context.Context, result agent.ToolResult) {
	if result.Status == agent.ToolStatusFailed {
		log.Printf("%s failed after %dms: %s", result.ToolName, result.DurationMS, result.ErrorDetail)
		return
	}
	if h.verbose {
		log.Printf("%s finished in %dms", result.ToolName, result.DurationMS)
	}
}

func (h *progressHook) OnRetryAttempt(_ context.Context, attempt, maxAttempts int, delay time.Duration, err error) {
	log.Printf("provider error, retry %d/%d in %s: %v", attempt, maxAttempts, delay.Round(time.Millisecond), err)
}

func (h *progressHook) OnLimitReached(_ context.Context, used, limit int) {
	log.Printf("tool call budget exhausted: %d/%d", used, limit)
}

func (h *progressHook) OnDone(_ context.Context, _ string) {
	if h.verbose {
		log.Printf("analysis complete")
	}
}
