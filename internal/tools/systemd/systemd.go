// Package systemd exposes systemctl-based diagnostics as agent tools.
package systemd

import (
	"context"
	"fmt"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// NewStatusTool reports the status of one systemd unit.
func NewStatusTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "systemctl_status",
		Description: "Shows the full status of a systemd service: active state, recent log lines, main PID, memory usage. Use when a specific service is suspected.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"service": {"type":"string","description":"Unit name, e.g. nginx or nginx.service"}
			},
			"required": ["service"]
		}`,
		Category: "systemd",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			service, ok := args["service"].(string)
			if !ok || service == "" {
				return "", fmt.Errorf("service must be a non-empty string")
			}
			return hostexec.Collect(ctx, r, "systemctl_status",
				"systemctl", "status", service, "--no-pager", "-l")
		},
	}
}

// NewFailedUnitsTool lists every unit currently in the failed state.
func NewFailedUnitsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "systemctl_failed",
		Description: "Lists all systemd units in the failed state. A good first call when the problem statement does not name a service.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "systemd",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "systemctl_failed",
				"systemctl", "--failed", "--no-pager")
		},
	}
}

// NewListUnitsTool lists running services for a broad overview.
func NewListUnitsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "systemctl_list",
		Description: "Lists loaded service units and their states (running, exited, failed).",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "systemd",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "systemctl_list",
				"systemctl", "list-units", "--type=service", "--no-pager")
		},
	}
}
