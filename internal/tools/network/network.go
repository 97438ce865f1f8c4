// Package network exposes interface and socket diagnostics as agent tools.
package network

import (
	"context"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// NewInterfacesTool lists network interfaces and addresses.
func NewInterfacesTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "network_interfaces",
		Description: "Lists network interfaces with addresses and link state. Use for connectivity problems or missing/duplicate addresses.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "network",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "network_interfaces",
				"ip", "-brief", "addr")
		},
	}
}

// NewConnectionsTool lists open sockets and listening ports.
func NewConnectionsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "network_connections",
		Description: "Lists TCP/UDP sockets with owning processes. Use to find what is listening on a port or where connections pile up.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "network",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "network_connections",
				"ss", "-tunap")
		},
	}
}
