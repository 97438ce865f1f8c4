// Package system exposes disk, memory, and process diagnostics as agent tools.
package system

import (
	"context"
	"time"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/sysinfo"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// NewDiskUsageTool reports filesystem usage.
func NewDiskUsageTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "disk_usage",
		Description: "Shows filesystem usage per mount point. Use for disk-full suspicions and inode exhaustion.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "system",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "disk_usage", "df", "-h")
		},
	}
}

// NewMemoryInfoTool reports memory and swap usage.
func NewMemoryInfoTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "memory_info",
		Description: "Shows memory and swap usage. Use for OOM suspicions and memory pressure.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "system",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "memory_info", "free", "-h")
		},
	}
}

// NewProcessTopTool lists the heaviest processes.
func NewProcessTopTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "process_top",
		Description: "Lists processes sorted by CPU usage, heaviest first. Use for load spikes and runaway processes.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "system",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "process_top",
				"ps", "aux", "--sort=-pcpu")
		},
	}
}

// NewOverviewTool reports static host facts without running anything.
func NewOverviewTool() agent.Tool {
	return agent.Tool{
		Name:        "system_overview",
		Description: "Returns basic host facts: OS, kernel, CPU count, memory, root disk, and whether Kubernetes or a container runtime is present. Cheap; no commands executed.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "system",
		Fn: func(_ context.Context, _ map[string]any) (string, error) {
			started := time.Now()
			out := hostexec.DebugResult{
				ToolName:        "system_overview",
				Command:         "(host facts)",
				Success:         true,
				Output:          sysinfo.Collect().Summary(),
				ExecutionTimeMS: time.Since(started).Milliseconds(),
			}
			return out.Marshal()
		},
	}
}
