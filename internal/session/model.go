package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/raidctl/raid/internal/agent"
)

// Session is a persisted diagnostic session: the problem under
// investigation plus the exact agent state needed to resume it.
type Session struct {
	ID        string         `json:"id"`
	Problem   string         `json:"problem"`
	Model     string         `json:"model"`
	Provider  string         `json:"provider"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Snapshot  agent.Snapshot `json:"snapshot"`
}

// New creates a session record around an agent snapshot.
func New(problem, provider, model string, snap agent.Snapshot) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Problem:   problem,
		Provider:  provider,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
		Snapshot:  snap,
	}
}

// Meta is a lightweight representation for listing.
type Meta struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
