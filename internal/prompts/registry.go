package prompts

import (
	"fmt"
	"sync"
)

// Prompt is a registered system prompt.
type Prompt struct {
	ID          string
	Content     string
	Description string
	Tags        []string
}

// Registry holds the system prompts a session can be started with.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]*Prompt
}

var defaultRegistry *Registry
var defaultRegistryOnce sync.Once

// DefaultRegistry returns the process-wide registry that built-in
// prompts register themselves into.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty prompt registry.
func NewRegistry() *Registry {
	return &Registry{prompts: make(map[string]*Prompt)}
}

// Register adds a prompt, replacing any previous prompt with the same ID.
func (r *Registry) Register(p *Prompt) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[p.ID] = p
}

// Get retrieves a prompt by ID.
func (r *Registry) Get(id string) (*Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", id)
	}
	return p, nil
}
