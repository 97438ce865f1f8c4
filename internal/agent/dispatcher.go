package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultToolTimeout bounds a single tool execution.
	DefaultToolTimeout = 60 * time.Second
	// DefaultMaxToolOutput bounds a stored tool result, in bytes.
	DefaultMaxToolOutput = 8192

	truncationMarker = "\n... [output truncated]"
)

// ToolStatus reports whether a dispatched tool call succeeded.
type ToolStatus string

const (
	ToolStatusSuccess ToolStatus = "success"
	ToolStatusFailed  ToolStatus = "failed"
)

// ToolResult is the outcome of exactly one ToolCall.
type ToolResult struct {
	RequestID   string     `json:"request_id"`
	ToolName    string     `json:"tool_name"`
	Status      ToolStatus `json:"status"`
	Output      string     `json:"output,omitempty"`
	ErrorDetail string     `json:"error_detail,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
	DurationMS  int64      `json:"duration_ms"`
}

// ToolDispatcher validates a requested tool call against the registry and
// executes it, producing a bounded-size text result or a structured failure.
// Tool-level failures never abort a session; they are reported back to the
// model as turns so it can self-correct.
type ToolDispatcher struct {
	reg       ToolRegistry
	timeout   time.Duration
	maxOutput int
}

// NewToolDispatcher creates a dispatcher over the given registry.
// Non-positive timeout/maxOutput fall back to the defaults.
func NewToolDispatcher(reg ToolRegistry, timeout time.Duration, maxOutput int) *ToolDispatcher {
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	if maxOutput <= 0 {
		maxOutput = DefaultMaxToolOutput
	}
	return &ToolDispatcher{reg: reg, timeout: timeout, maxOutput: maxOutput}
}

// Registry returns the catalogue the dispatcher validates against.
func (d *ToolDispatcher) Registry() ToolRegistry { return d.reg }

// Execute runs one validated tool call to completion or timeout.
func (d *ToolDispatcher) Execute(ctx context.Context, call ToolCall) ToolResult {
	started := time.Now()
	res := ToolResult{
		RequestID: call.ID,
		ToolName:  call.Name,
	}

	tool, ok := d.reg[call.Name]
	if !ok {
		res.Status = ToolStatusFailed
		res.ErrorDetail = fmt.Sprintf("unknown tool: %s (available tools: %s)", call.Name, strings.Join(d.reg.Names(), ", "))
		res.DurationMS = time.Since(started).Milliseconds()
		return res
	}

	args := call.Args
	if args == nil {
		args = map[string]any{}
	}
	if err := tool.ValidateArgs(args); err != nil {
		res.Status = ToolStatusFailed
		res.ErrorDetail = err.Error()
		res.DurationMS = time.Since(started).Milliseconds()
		return res
	}

	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	output, err := tool.Fn(cctx, args)
	res.DurationMS = time.Since(started).Milliseconds()

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded):
		res.Status = ToolStatusFailed
		res.ErrorDetail = fmt.Sprintf("timeout after %s", d.timeout)
	case err != nil:
		res.Status = ToolStatusFailed
		res.ErrorDetail = err.Error()
	default:
		res.Status = ToolStatusSuccess
		res.Output, res.Truncated = truncate(output, d.maxOutput)
	}

	return res
}

// ExecuteBatch runs a batch of tool calls and returns results in the
// requested order. Calls execute concurrently for throughput, but the
// returned slice preserves the order the model asked for, which is part
// of the contract it reasons over.
func (d *ToolDispatcher) ExecuteBatch(ctx context.Context, calls []ToolCall) []ToolResult {
	if len(calls) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	results := make([]ToolResult, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, c ToolCall) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[i] = ToolResult{
					RequestID:   c.ID,
					ToolName:    c.Name,
					Status:      ToolStatusFailed,
					ErrorDetail: ctx.Err().Error(),
				}
				return
			default:
			}

			results[i] = d.Execute(ctx, c)
		}(i, call)
	}

	wg.Wait()
	return results
}

// truncate bounds output deterministically, appending an explicit marker
// when anything was cut.
func truncate(s string, max int) (string, bool) {
	if len(s) <= max {
		return s, false
	}
	return s[:max] + truncationMarker, true
}
