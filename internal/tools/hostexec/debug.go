package hostexec

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// DebugResult is the uniform JSON envelope every diagnostic tool
// returns to the model: which command ran, whether it worked, and
// what it printed.
type DebugResult struct {
	ToolName        string `json:"tool_name"`
	Command         string `json:"command"`
	Success         bool   `json:"success"`
	Output          string `json:"output"`
	Error           string `json:"error,omitempty"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
}

// Marshal renders the result as the JSON string handed to the model.
func (d DebugResult) Marshal() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Collect runs one command through the runner and wraps the outcome in
// a DebugResult. Command failures are data, not errors: the model reads
// non-zero exits and stderr as diagnostic signal.
func Collect(ctx context.Context, r Runner, toolName, name string, args ...string) (string, error) {
	started := time.Now()
	res, runErr := r.Run(ctx, name, args, 0)

	out := DebugResult{
		ToolName:        toolName,
		Command:         CommandLine(name, args),
		Success:         runErr == nil && res.Code == 0 && !res.TimedOut,
		Output:          res.Stdout,
		ExecutionTimeMS: time.Since(started).Milliseconds(),
	}

	switch {
	case res.TimedOut:
		out.Error = "command timed out"
	case res.Code != 0:
		out.Error = strings.TrimSpace(res.Stderr)
		if out.Error == "" && runErr != nil {
			out.Error = runErr.Error()
		}
	case runErr != nil:
		out.Error = runErr.Error()
	default:
		if stderr := strings.TrimSpace(res.Stderr); stderr != "" && out.Output == "" {
			// Some tools (dmesg, journalctl warnings) write to stderr
			// even on success; keep it visible.
			out.Output = stderr
		}
	}

	return out.Marshal()
}
