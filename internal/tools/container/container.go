// Package container exposes container-runtime diagnostics as agent
// tools, talking to the Docker API directly instead of shelling out.
package container

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	units "github.com/docker/go-units"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

// newClient connects to the local daemon. Created per call so the tool
// registry builds fine on hosts without Docker; the failure surfaces as
// a tool result instead.
func newClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// shortID renders the 12-character short form Docker prints. IDs from
// other runtimes can be shorter than that.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func failure(toolName, command string, started time.Time, err error) (string, error) {
	out := hostexec.DebugResult{
		ToolName:        toolName,
		Command:         command,
		Success:         false,
		Error:           err.Error(),
		ExecutionTimeMS: time.Since(started).Milliseconds(),
	}
	return out.Marshal()
}

// NewListTool lists all containers, running or not.
func NewListTool() agent.Tool {
	return agent.Tool{
		Name:        "container_list",
		Description: "Lists all containers (running and stopped) with image, state, and uptime. Use to spot crashed or restarting containers.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "container",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			const command = "docker container list --all"
			started := time.Now()

			cli, err := newClient()
			if err != nil {
				return failure("container_list", command, started, err)
			}
			defer cli.Close()

			containers, err := cli.ContainerList(ctx, container.ListOptions{All: true})
			if err != nil {
				return failure("container_list", command, started, err)
			}

			var b strings.Builder
			for _, c := range containers {
				name := shortID(c.ID)
				if len(c.Names) > 0 {
					name = strings.TrimPrefix(c.Names[0], "/")
				}
				age := units.HumanDuration(time.Since(time.Unix(c.Created, 0)))
				fmt.Fprintf(&b, "%s  %s  %s  %s  created %s ago\n",
					name, c.Image, c.State, c.Status, age)
			}
			if b.Len() == 0 {
				b.WriteString("no containers found")
			}

			out := hostexec.DebugResult{
				ToolName:        "container_list",
				Command:         command,
				Success:         true,
				Output:          strings.TrimRight(b.String(), "\n"),
				ExecutionTimeMS: time.Since(started).Milliseconds(),
			}
			return out.Marshal()
		},
	}
}

// NewInspectTool returns the full inspect document for one container.
func NewInspectTool() agent.Tool {
	return agent.Tool{
		Name:        "container_inspect",
		Description: "Returns the full inspect document for one container: exit code, OOM-killed flag, restart policy, mounts, network settings.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"container": {"type":"string","description":"Container name or ID"}
			},
			"required": ["container"]
		}`,
		Category: "container",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			name, ok := args["container"].(string)
			if !ok || name == "" {
				return "", fmt.Errorf("container must be a non-empty string")
			}
			command := "docker container inspect " + name
			started := time.Now()

			cli, err := newClient()
			if err != nil {
				return failure("container_inspect", command, started, err)
			}
			defer cli.Close()

			insp, err := cli.ContainerInspect(ctx, name)
			if err != nil {
				return failure("container_inspect", command, started, err)
			}
			data, err := json.MarshalIndent(insp, "", "  ")
			if err != nil {
				return failure("container_inspect", command, started, err)
			}

			out := hostexec.DebugResult{
				ToolName:        "container_inspect",
				Command:         command,
				Success:         true,
				Output:          string(data),
				ExecutionTimeMS: time.Since(started).Milliseconds(),
			}
			return out.Marshal()
		},
	}
}
