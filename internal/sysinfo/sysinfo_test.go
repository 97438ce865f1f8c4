package sysinfo

import (
	"strings"
	"testing"
)

func TestParseMeminfo(t *testing.T) {
	data := `MemTotal:       16307732 kB
MemFree:         1204984 kB
MemAvailable:    9554012 kB
Buffers:          471244 kB`

	total, available := parseMeminfo(data)
	if total != 16307732*1024 {
		t.Errorf("total = %d", total)
	}
	if available != 9554012*1024 {
		t.Errorf("available = %d", available)
	}
}

func TestParseMeminfoGarbage(t *testing.T) {
	total, available := parseMeminfo("not meminfo at all\nMemTotal: abc kB\n")
	if total != 0 || available != 0 {
		t.Errorf("got %d/%d from garbage input", total, available)
	}
}

func TestParseOSRelease(t *testing.T) {
	data := `NAME="Ubuntu"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
PRETTY_NAME="Ubuntu 22.04.3 LTS"
ID=ubuntu`

	if got := parseOSRelease(data); got != "Ubuntu 22.04.3 LTS" {
		t.Errorf("got %q", got)
	}
	if got := parseOSRelease("ID=minimal\n"); got != "" {
		t.Errorf("got %q for missing PRETTY_NAME", got)
	}
}

func TestSummary(t *testing.T) {
	info := Info{
		Hostname:     "web-01",
		OS:           "Ubuntu 22.04.3 LTS",
		Kernel:       "5.15.0-89-generic",
		Arch:         "amd64",
		NumCPU:       8,
		MemTotal:     16 << 30,
		MemAvailable: 4 << 30,
		Kubernetes:   true,
	}
	s := info.Summary()
	for _, want := range []string{"web-01", "Ubuntu 22.04.3 LTS", "cpus: 8", "kubernetes: detected", "16GiB"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestSummaryUnknownFields(t *testing.T) {
	s := Info{Arch: "arm64", NumCPU: 2}.Summary()
	if !strings.Contains(s, "unknown") {
		t.Errorf("summary should mark missing facts unknown:\n%s", s)
	}
	if strings.Contains(s, "memory:") {
		t.Errorf("summary should omit zero memory:\n%s", s)
	}
}
