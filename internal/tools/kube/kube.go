// Package kube exposes kubectl-based cluster diagnostics as agent tools.
package kube

import (
	"context"
	"fmt"
	"strconv"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

const namespaceProperty = `"namespace": {"type":"string","description":"Kubernetes namespace (default: all namespaces)"}`

func namespaceArgs(args map[string]any) []string {
	if ns, ok := args["namespace"].(string); ok && ns != "" {
		return []string{"-n", ns}
	}
	return []string{"--all-namespaces"}
}

// NewPodsTool lists pods and their states.
func NewPodsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "kubectl_pods",
		Description: "Lists pods with status, restarts, and age. Start here for CrashLoopBackOff, Pending, or Evicted pods.",
		SchemaJSON:  `{"type":"object","properties":{` + namespaceProperty + `}}`,
		Category:    "kubernetes",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			kargs := append([]string{"get", "pods", "-o", "wide"}, namespaceArgs(args)...)
			return hostexec.Collect(ctx, r, "kubectl_pods", "kubectl", kargs...)
		},
	}
}

// NewDescribePodTool shows the full state of one pod.
func NewDescribePodTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "kubectl_describe_pod",
		Description: "Describes one pod: container states, probes, events, resource limits. Use after kubectl_pods identifies a problem pod.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"pod": {"type":"string","description":"Pod name"},
				"namespace": {"type":"string","description":"Namespace the pod lives in (default: default)"}
			},
			"required": ["pod"]
		}`,
		Category: "kubernetes",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			pod, ok := args["pod"].(string)
			if !ok || pod == "" {
				return "", fmt.Errorf("pod must be a non-empty string")
			}
			kargs := []string{"describe", "pod", pod}
			if ns, ok := args["namespace"].(string); ok && ns != "" {
				kargs = append(kargs, "-n", ns)
			}
			return hostexec.Collect(ctx, r, "kubectl_describe_pod", "kubectl", kargs...)
		},
	}
}

// NewLogsTool tails a pod's logs.
func NewLogsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "kubectl_logs",
		Description: "Shows recent logs from a pod. Set previous=true to read the logs of the last crashed container instance.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"pod": {"type":"string","description":"Pod name"},
				"namespace": {"type":"string","description":"Namespace the pod lives in (default: default)"},
				"lines": {"type":"integer","minimum":1,"maximum":500,"description":"How many log lines to return (default 100)"},
				"previous": {"type":"boolean","description":"Read logs from the previous container instance"}
			},
			"required": ["pod"]
		}`,
		Category: "kubernetes",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			pod, ok := args["pod"].(string)
			if !ok || pod == "" {
				return "", fmt.Errorf("pod must be a non-empty string")
			}
			lines := 100
			switch v := args["lines"].(type) {
			case float64:
				lines = int(v)
			case int:
				lines = v
			}
			if lines <= 0 || lines > 500 {
				lines = 100
			}
			kargs := []string{"logs", pod, "--tail", strconv.Itoa(lines)}
			if ns, ok := args["namespace"].(string); ok && ns != "" {
				kargs = append(kargs, "-n", ns)
			}
			if prev, ok := args["previous"].(bool); ok && prev {
				kargs = append(kargs, "--previous")
			}
			return hostexec.Collect(ctx, r, "kubectl_logs", "kubectl", kargs...)
		},
	}
}

// NewEventsTool shows recent cluster events.
func NewEventsTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "kubectl_events",
		Description: "Shows recent cluster events sorted by time: scheduling failures, image pull errors, OOM kills, probe failures.",
		SchemaJSON:  `{"type":"object","properties":{` + namespaceProperty + `}}`,
		Category:    "kubernetes",
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			kargs := append([]string{"get", "events", "--sort-by=.lastTimestamp"}, namespaceArgs(args)...)
			return hostexec.Collect(ctx, r, "kubectl_events", "kubectl", kargs...)
		},
	}
}

// NewNodesTool shows node status and capacity.
func NewNodesTool(r hostexec.Runner) agent.Tool {
	return agent.Tool{
		Name:        "kubectl_nodes",
		Description: "Lists cluster nodes with readiness, roles, versions, and internal addresses. Use for NotReady nodes or capacity questions.",
		SchemaJSON:  `{"type":"object","properties":{}}`,
		Category:    "kubernetes",
		Fn: func(ctx context.Context, _ map[string]any) (string, error) {
			return hostexec.Collect(ctx, r, "kubectl_nodes",
				"kubectl", "get", "nodes", "-o", "wide")
		},
	}
}
