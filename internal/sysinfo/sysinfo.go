// Package sysinfo gathers basic host facts for the diagnostic prompt
// and the system_overview tool.
package sysinfo

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// Info is a point-in-time snapshot of the host.
type Info struct {
	Hostname         string `json:"hostname"`
	OS               string `json:"os"`
	Kernel           string `json:"kernel"`
	Arch             string `json:"arch"`
	NumCPU           int    `json:"num_cpu"`
	MemTotal         uint64 `json:"mem_total_bytes"`
	MemAvailable     uint64 `json:"mem_available_bytes"`
	RootDiskTotal    uint64 `json:"root_disk_total_bytes"`
	RootDiskFree     uint64 `json:"root_disk_free_bytes"`
	Kubernetes       bool   `json:"kubernetes"`
	ContainerRuntime string `json:"container_runtime,omitempty"`
}

// Collect gathers whatever host facts are available. Missing sources
// leave fields zero instead of failing: a partial picture still helps.
func Collect() Info {
	info := Info{
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
	}

	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		info.OS = parseOSRelease(string(data))
	}
	if data, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		info.Kernel = strings.TrimSpace(string(data))
	}
	if data, err := os.ReadFile("/proc/meminfo"); err == nil {
		info.MemTotal, info.MemAvailable = parseMeminfo(string(data))
	}
	info.RootDiskTotal, info.RootDiskFree = rootDisk()

	info.Kubernetes = os.Getenv("KUBERNETES_SERVICE_HOST") != "" || commandExists("kubectl")
	for _, rt := range []string{"docker", "podman"} {
		if commandExists(rt) {
			info.ContainerRuntime = rt
			break
		}
	}

	return info
}

// Summary renders the snapshot as the text block embedded in the
// system prompt and returned by the system_overview tool.
func (i Info) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hostname: %s\n", orUnknown(i.Hostname))
	fmt.Fprintf(&b, "os: %s (kernel %s, %s)\n", orUnknown(i.OS), orUnknown(i.Kernel), i.Arch)
	fmt.Fprintf(&b, "cpus: %d\n", i.NumCPU)
	if i.MemTotal > 0 {
		fmt.Fprintf(&b, "memory: %s available of %s\n",
			units.BytesSize(float64(i.MemAvailable)), units.BytesSize(float64(i.MemTotal)))
	}
	if i.RootDiskTotal > 0 {
		fmt.Fprintf(&b, "root disk: %s free of %s\n",
			units.BytesSize(float64(i.RootDiskFree)), units.BytesSize(float64(i.RootDiskTotal)))
	}
	if i.Kubernetes {
		b.WriteString("kubernetes: detected\n")
	}
	if i.ContainerRuntime != "" {
		fmt.Fprintf(&b, "container runtime: %s\n", i.ContainerRuntime)
	}
	return strings.TrimRight(b.String(), "\n")
}

func parseOSRelease(data string) string {
	for _, line := range strings.Split(data, "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return ""
}

// parseMeminfo extracts MemTotal and MemAvailable, in bytes.
func parseMeminfo(data string) (total, available uint64) {
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = kb * 1024
		case "MemAvailable:":
			available = kb * 1024
		}
	}
	return total, available
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
