package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/raidctl/raid/internal/issues"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// captureRunner records the last command it was asked to run.
type captureRunner struct {
	name string
	args []string
}

func (c *captureRunner) Run(_ context.Context, name string, args []string, _ time.Duration) (hostexec.Result, error) {
	c.name = name
	c.args = args
	return hostexec.Result{Stdout: "captured"}, nil
}

func TestDefaultRegistryContents(t *testing.T) {
	idx, err := issues.NewIndex(issues.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer idx.Close()

	reg := NewToolRegistry(&captureRunner{}, idx, DefaultSet())

	wanted := []string{
		"systemctl_status", "systemctl_failed", "systemctl_list",
		"journalctl_recent", "journalctl_service", "journalctl_errors", "journalctl_boot", "dmesg_errors",
		"kubectl_pods", "kubectl_describe_pod", "kubectl_logs", "kubectl_events", "kubectl_nodes",
		"container_list", "container_inspect",
		"disk_usage", "memory_info", "process_top", "system_overview",
		"network_interfaces", "network_connections",
		"ask_user", "known_issues",
	}
	for _, name := range wanted {
		if _, ok := reg[name]; !ok {
			t.Errorf("registry missing %s", name)
		}
	}
	if len(reg) != len(wanted) {
		t.Errorf("registry has %d tools, want %d", len(reg), len(wanted))
	}
}

func TestEverySchemaIsValidJSON(t *testing.T) {
	reg := NewToolRegistry(&captureRunner{}, nil, DefaultSet())
	for name, tool := range reg {
		var obj map[string]any
		if err := json.Unmarshal([]byte(tool.SchemaJSON), &obj); err != nil {
			t.Errorf("tool %s has invalid schema JSON: %v", name, err)
		}
		if tool.Description == "" {
			t.Errorf("tool %s has no description", name)
		}
	}
}

func TestSelectiveSet(t *testing.T) {
	reg := NewToolRegistry(&captureRunner{}, nil, Set{System: true})
	if _, ok := reg["disk_usage"]; !ok {
		t.Error("system tools missing")
	}
	if _, ok := reg["kubectl_pods"]; ok {
		t.Error("kubernetes tools present despite disabled category")
	}
	if _, ok := reg["ask_user"]; ok {
		t.Error("meta tools present despite disabled category")
	}
}

func TestToolCommandConstruction(t *testing.T) {
	runner := &captureRunner{}
	reg := NewToolRegistry(runner, nil, DefaultSet())

	tests := []struct {
		tool     string
		args     map[string]any
		wantName string
		wantArgs string
	}{
		{"systemctl_status", map[string]any{"service": "nginx"}, "systemctl", "status nginx --no-pager -l"},
		{"journalctl_service", map[string]any{"service": "sshd", "lines": float64(20)}, "journalctl", "-u sshd -n 20 --no-pager"},
		{"journalctl_recent", map[string]any{}, "journalctl", "-n 50 --no-pager"},
		{"kubectl_logs", map[string]any{"pod": "api-7f9", "namespace": "prod", "previous": true}, "kubectl", "logs api-7f9 --tail 100 -n prod --previous"},
		{"kubectl_pods", map[string]any{}, "kubectl", "get pods -o wide --all-namespaces"},
		{"disk_usage", map[string]any{}, "df", "-h"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool := reg[tt.tool]
			if _, err := tool.Fn(context.Background(), tt.args); err != nil {
				t.Fatalf("Fn: %v", err)
			}
			if runner.name != tt.wantName {
				t.Errorf("command = %s, want %s", runner.name, tt.wantName)
			}
			if got := strings.Join(runner.args, " "); got != tt.wantArgs {
				t.Errorf("args = %q, want %q", got, tt.wantArgs)
			}
		})
	}
}

func TestJournalLinesAreBounded(t *testing.T) {
	runner := &captureRunner{}
	reg := NewToolRegistry(runner, nil, DefaultSet())

	if _, err := reg["journalctl_recent"].Fn(context.Background(), map[string]any{"lines": float64(99999)}); err != nil {
		t.Fatalf("Fn: %v", err)
	}
	if got := strings.Join(runner.args, " "); got != "-n 500 --no-pager" {
		t.Errorf("args = %q, want capped line count", got)
	}
}
