package tools

import (
	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/issues"
	"github.com/raidctl/raid/internal/tools/container"
	"github.com/raidctl/raid/internal/tools/hostexec"
	"github.com/raidctl/raid/internal/tools/journal"
	"github.com/raidctl/raid/internal/tools/kube"
	"github.com/raidctl/raid/internal/tools/meta"
	"github.com/raidctl/raid/internal/tools/network"
	"github.com/raidctl/raid/internal/tools/system"
	"github.com/raidctl/raid/internal/tools/systemd"
)

// Set selects which diagnostic categories get registered. The zero
// value registers nothing; DefaultSet enables everything.
type Set struct {
	Systemd    bool
	Journal    bool
	Kubernetes bool
	Container  bool
	System     bool
	Network    bool
	Meta       bool
}

// DefaultSet enables every category.
func DefaultSet() Set {
	return Set{
		Systemd:    true,
		Journal:    true,
		Kubernetes: true,
		Container:  true,
		System:     true,
		Network:    true,
		Meta:       true,
	}
}

// NewToolRegistry assembles the diagnostic tool catalogue. The runner
// decides how host commands execute (real or dry-run); the issue index
// may be nil, which skips the known_issues tool.
func NewToolRegistry(runner hostexec.Runner, issueIndex *issues.Index, set Set) agent.ToolRegistry {
	reg := make(agent.ToolRegistry)

	add := func(t agent.Tool) { reg[t.Name] = t }

	if set.Systemd {
		add(systemd.NewStatusTool(runner))
		add(systemd.NewFailedUnitsTool(runner))
		add(systemd.NewListUnitsTool(runner))
	}

	if set.Journal {
		add(journal.NewRecentTool(runner))
		add(journal.NewServiceTool(runner))
		add(journal.NewErrorsTool(runner))
		add(journal.NewBootTool(runner))
		add(journal.NewDmesgErrorsTool(runner))
	}

	if set.Kubernetes {
		add(kube.NewPodsTool(runner))
		add(kube.NewDescribePodTool(runner))
		add(kube.NewLogsTool(runner))
		add(kube.NewEventsTool(runner))
		add(kube.NewNodesTool(runner))
	}

	if set.Container {
		add(container.NewListTool())
		add(container.NewInspectTool())
	}

	if set.System {
		add(system.NewDiskUsageTool(runner))
		add(system.NewMemoryInfoTool(runner))
		add(system.NewProcessTopTool(runner))
		add(system.NewOverviewTool())
	}

	if set.Network {
		add(network.NewInterfacesTool(runner))
		add(network.NewConnectionsTool(runner))
	}

	if set.Meta {
		add(meta.NewAskUserTool())
		if issueIndex != nil {
			add(meta.NewKnownIssuesTool(issueIndex))
		}
	}

	return reg
}
