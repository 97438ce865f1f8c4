package prompts

import (
	"strings"
	"testing"
)

func TestDiagnosticPromptRegistered(t *testing.T) {
	p, err := DefaultRegistry().Get("diagnostic")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, want := range []string{"ask_user", "Root cause", "Remediation"} {
		if !strings.Contains(p.Content, want) {
			t.Errorf("diagnostic prompt missing %q", want)
		}
	}
}

func TestRegistryGetUnknownID(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("nope"); err == nil {
		t.Error("expected error for unregistered prompt")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Prompt{ID: "t", Content: "old"})
	reg.Register(&Prompt{ID: "t", Content: "new"})

	p, err := reg.Get("t")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Content != "new" {
		t.Errorf("content = %q, want the replacement", p.Content)
	}
}

func TestBuildDiagnosticPrompt(t *testing.T) {
	out, err := BuildDiagnosticPrompt("hostname: web-01\ncpus: 8", "[disk-full] Root filesystem full")
	if err != nil {
		t.Fatalf("BuildDiagnosticPrompt: %v", err)
	}
	if !strings.Contains(out, "SYSTEM CONTEXT:\nhostname: web-01") {
		t.Error("system context fragment missing")
	}
	if !strings.Contains(out, "[disk-full]") {
		t.Error("known issues fragment missing")
	}
	// Fragments come after the base prompt.
	if strings.Index(out, "expert Linux system administrator") > strings.Index(out, "SYSTEM CONTEXT") {
		t.Error("base prompt should precede fragments")
	}
}

func TestBuildDiagnosticPromptWithoutContext(t *testing.T) {
	out, err := BuildDiagnosticPrompt("", "")
	if err != nil {
		t.Fatalf("BuildDiagnosticPrompt: %v", err)
	}
	if strings.Contains(out, "SYSTEM CONTEXT") || strings.Contains(out, "KNOWN ISSUES") {
		t.Error("empty fragments should be omitted")
	}
}

func TestBuilderVariables(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Prompt{ID: "t", Content: "host is {{host}}"})

	b, err := NewPromptBuilder(reg, "t")
	if err != nil {
		t.Fatalf("NewPromptBuilder: %v", err)
	}
	out, err := b.SetVariable("host", "db-02").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out != "host is db-02" {
		t.Errorf("got %q", out)
	}
}
