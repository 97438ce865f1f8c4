package issues

import (
	"strings"
	"testing"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(DefaultCatalog())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestSearchFindsRelevantIssue(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Search("pod stuck in CrashLoopBackOff restarting", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no matches for a catalogued symptom")
	}
	if matches[0].Issue.ID != "k8s-crashloop" {
		t.Errorf("top match = %s, want k8s-crashloop", matches[0].Issue.ID)
	}
}

func TestSearchRanksByRelevance(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Search("no space left on device", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) < 2 {
		t.Fatalf("got %d matches, want at least disk-full and inode-exhaustion", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted by score: %v then %v", matches[i-1].Score, matches[i].Score)
		}
	}
}

func TestSearchNoMatches(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Search("zzqx nonexistent flurble", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches for gibberish", len(matches))
	}
	if got := FormatMatches(matches); got != "no known issues matched" {
		t.Errorf("FormatMatches on empty = %q", got)
	}
}

func TestNewIndexRejectsDuplicateIDs(t *testing.T) {
	catalog := []KnownIssue{
		{ID: "dup", Title: "one", Cause: "c", Remediation: "r"},
		{ID: "dup", Title: "two", Cause: "c", Remediation: "r"},
	}
	if _, err := NewIndex(catalog); err == nil {
		t.Fatal("duplicate IDs accepted")
	}
}

func TestFormatMatches(t *testing.T) {
	idx := newTestIndex(t)
	matches, err := idx.Search("certificate has expired", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	out := FormatMatches(matches)
	for _, want := range []string{"[cert-expired]", "cause:", "remediation:"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}
