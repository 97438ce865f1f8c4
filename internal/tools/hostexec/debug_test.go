package hostexec

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// cannedRunner returns a fixed result for any command.
type cannedRunner struct {
	res Result
	err error
}

func (c cannedRunner) Run(context.Context, string, []string, time.Duration) (Result, error) {
	return c.res, c.err
}

func TestCollectSuccess(t *testing.T) {
	r := cannedRunner{res: Result{Stdout: "Filesystem use 42%", Code: 0}}

	out, err := Collect(context.Background(), r, "disk_usage", "df", "-h")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var dr DebugResult
	if err := json.Unmarshal([]byte(out), &dr); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if !dr.Success {
		t.Error("success = false for zero exit")
	}
	if dr.ToolName != "disk_usage" || dr.Command != "df -h" {
		t.Errorf("identity = %s / %s", dr.ToolName, dr.Command)
	}
	if dr.Output != "Filesystem use 42%" {
		t.Errorf("output = %q", dr.Output)
	}
}

func TestCollectNonZeroExit(t *testing.T) {
	r := cannedRunner{
		res: Result{Stderr: "Unit nginx.service could not be found.", Code: 4},
		err: errors.New("exit status 4"),
	}

	out, err := Collect(context.Background(), r, "systemctl_status", "systemctl", "status", "nginx")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var dr DebugResult
	if err := json.Unmarshal([]byte(out), &dr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if dr.Success {
		t.Error("success = true for non-zero exit")
	}
	if !strings.Contains(dr.Error, "could not be found") {
		t.Errorf("error = %q, want stderr content", dr.Error)
	}
}

func TestCollectTimeout(t *testing.T) {
	r := cannedRunner{
		res: Result{TimedOut: true, Code: 1},
		err: errors.New("signal: killed"),
	}

	out, err := Collect(context.Background(), r, "journalctl_recent", "journalctl", "-n", "50")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var dr DebugResult
	if err := json.Unmarshal([]byte(out), &dr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if dr.Success || dr.Error != "command timed out" {
		t.Errorf("success=%v error=%q", dr.Success, dr.Error)
	}
}

func TestCommandLine(t *testing.T) {
	if got := CommandLine("df", nil); got != "df" {
		t.Errorf("got %q", got)
	}
	if got := CommandLine("df", []string{"-h"}); got != "df -h" {
		t.Errorf("got %q", got)
	}
}
