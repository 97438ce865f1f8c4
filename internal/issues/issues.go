// Package issues holds the catalogue of known failure patterns and a
// full-text index used to surface the ones relevant to a problem
// statement.
package issues

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

// KnownIssue is one documented failure pattern with its fix.
type KnownIssue struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Symptoms    []string `json:"symptoms"`
	Cause       string   `json:"cause"`
	Remediation string   `json:"remediation"`
	Tags        []string `json:"tags,omitempty"`
}

// Match is a catalogue hit with its relevance score.
type Match struct {
	Issue KnownIssue
	Score float64
}

// Index is an in-memory full-text index over the catalogue.
type Index struct {
	idx  bleve.Index
	byID map[string]KnownIssue
}

// NewIndex builds an in-memory index over the given catalogue.
func NewIndex(catalog []KnownIssue) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create issue index: %w", err)
	}

	byID := make(map[string]KnownIssue, len(catalog))
	for _, issue := range catalog {
		if issue.ID == "" {
			return nil, fmt.Errorf("known issue %q has no ID", issue.Title)
		}
		if _, dup := byID[issue.ID]; dup {
			return nil, fmt.Errorf("duplicate known issue ID: %s", issue.ID)
		}
		byID[issue.ID] = issue
		if err := idx.Index(issue.ID, issue); err != nil {
			return nil, fmt.Errorf("failed to index issue %s: %w", issue.ID, err)
		}
	}

	return &Index{idx: idx, byID: byID}, nil
}

// Search returns the catalogue entries most relevant to the query,
// best first.
func (x *Index) Search(query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("issue search failed: %w", err)
	}

	matches := make([]Match, 0, len(res.Hits))
	for _, hit := range res.Hits {
		issue, ok := x.byID[hit.ID]
		if !ok {
			continue
		}
		matches = append(matches, Match{Issue: issue, Score: hit.Score})
	}
	return matches, nil
}

// Len reports the catalogue size.
func (x *Index) Len() int { return len(x.byID) }

// Close releases the index.
func (x *Index) Close() error { return x.idx.Close() }

// FormatMatches renders matches as the text block shown to the model.
func FormatMatches(matches []Match) string {
	if len(matches) == 0 {
		return "no known issues matched"
	}
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n", m.Issue.ID, m.Issue.Title)
		if len(m.Issue.Symptoms) > 0 {
			fmt.Fprintf(&b, "  symptoms: %s\n", strings.Join(m.Issue.Symptoms, "; "))
		}
		fmt.Fprintf(&b, "  cause: %s\n", m.Issue.Cause)
		fmt.Fprintf(&b, "  remediation: %s\n", m.Issue.Remediation)
	}
	return strings.TrimRight(b.String(), "\n")
}
