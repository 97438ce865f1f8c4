package agent

import "testing"

func TestBudgetTrackerConsume(t *testing.T) {
	b := NewBudgetTracker(3)

	for i := 0; i < 3; i++ {
		if !b.TryConsume(1) {
			t.Fatalf("consume %d refused under limit", i+1)
		}
	}
	if b.TryConsume(1) {
		t.Fatal("consume allowed past the limit")
	}
	if b.Used != 3 {
		t.Errorf("used = %d, want 3", b.Used)
	}
	if !b.Exhausted() {
		t.Error("tracker not exhausted at limit")
	}
	if b.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", b.Remaining())
	}
}

func TestBudgetTrackerRefusalLeavesStateUntouched(t *testing.T) {
	b := NewBudgetTracker(5)
	b.TryConsume(4)

	if b.TryConsume(2) {
		t.Fatal("overshooting consume accepted")
	}
	if b.Used != 4 {
		t.Errorf("refused consume mutated Used: %d", b.Used)
	}
	if !b.TryConsume(1) {
		t.Error("exact-fit consume refused")
	}
}

func TestBudgetTrackerExtend(t *testing.T) {
	b := NewBudgetTracker(2)
	b.TryConsume(2)

	b.Extend(3)
	if b.Limit != 5 {
		t.Errorf("limit = %d, want 5 (additive extension)", b.Limit)
	}
	if b.ExtensionsGranted != 1 {
		t.Errorf("extensions = %d, want 1", b.ExtensionsGranted)
	}
	if b.Remaining() != 3 {
		t.Errorf("remaining = %d, want 3", b.Remaining())
	}

	b.Extend(0)
	b.Extend(-1)
	if b.Limit != 5 || b.ExtensionsGranted != 1 {
		t.Error("non-positive extensions must be ignored")
	}
}

func TestBudgetTrackerDefaultLimit(t *testing.T) {
	if b := NewBudgetTracker(0); b.Limit != DefaultToolCallLimit {
		t.Errorf("limit = %d, want %d", b.Limit, DefaultToolCallLimit)
	}
	if b := NewBudgetTracker(-7); b.Limit != DefaultToolCallLimit {
		t.Errorf("limit = %d, want %d", b.Limit, DefaultToolCallLimit)
	}
}
