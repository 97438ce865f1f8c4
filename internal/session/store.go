// Package session persists suspended diagnostic sessions so a paused
// or limit-reached investigation survives a process restart.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store handles persistence of sessions as JSON files.
type Store struct {
	basePath string
}

// NewStore creates a session store under the given config directory.
func NewStore(configDir string) *Store {
	return &Store{basePath: filepath.Join(configDir, "sessions")}
}

// Save persists a session, refreshing its UpdatedAt stamp.
func (s *Store) Save(sess *Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session has no ID")
	}
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	sess.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	filename := filepath.Join(s.basePath, sess.ID+".json")
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves one session by ID.
func (s *Store) Load(id string) (*Session, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes a persisted session, typically after it resumes to a
// terminal state.
func (s *Store) Delete(id string) error {
	err := os.Remove(filepath.Join(s.basePath, id+".json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns all persisted sessions, newest first.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return []Meta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list session directory: %w", err)
	}

	var metas []Meta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			continue // skip unreadable files
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue // skip invalid files
		}
		metas = append(metas, Meta{
			ID:        sess.ID,
			Problem:   sess.Problem,
			Status:    string(sess.Snapshot.Status),
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}
