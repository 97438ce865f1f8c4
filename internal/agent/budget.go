package agent

// DefaultToolCallLimit is the ceiling on tool invocations per session
// when the caller does not configure one.
const DefaultToolCallLimit = 50

// BudgetTracker counts tool invocations against a configured ceiling.
// Used never exceeds Limit without an explicit operator-granted extension.
type BudgetTracker struct {
	Used              int `json:"used"`
	Limit             int `json:"limit"`
	ExtensionsGranted int `json:"extensions_granted"`
}

// NewBudgetTracker creates a tracker with the given ceiling.
// A non-positive limit falls back to DefaultToolCallLimit.
func NewBudgetTracker(limit int) *BudgetTracker {
	if limit <= 0 {
		limit = DefaultToolCallLimit
	}
	return &BudgetTracker{Limit: limit}
}

// TryConsume reports whether n more invocations fit under the ceiling.
// Only on success does Used increase.
func (b *BudgetTracker) TryConsume(n int) bool {
	if b.Used+n > b.Limit {
		return false
	}
	b.Used += n
	return true
}

// Extend raises the ceiling additively and records the grant.
func (b *BudgetTracker) Extend(n int) {
	if n <= 0 {
		return
	}
	b.Limit += n
	b.ExtensionsGranted++
}

// Remaining returns how many invocations are still allowed.
func (b *BudgetTracker) Remaining() int {
	r := b.Limit - b.Used
	if r < 0 {
		return 0
	}
	return r
}

// Exhausted reports whether no invocations remain.
func (b *BudgetTracker) Exhausted() bool {
	return b.Used >= b.Limit
}
