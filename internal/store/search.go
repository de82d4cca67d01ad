package store

import (
	"context"
	"fmt"
	"strings"
)

// JournalHit is one journal entry matching a search.
type JournalHit struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

const defaultSearchLimit = 20

// SearchJournals finds the caller's entries whose title or content match
// query. Locked entries match but never expose a snippet.
func (db *DB) SearchJournals(ctx context.Context, query string, limit int) ([]JournalHit, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []JournalHit{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	hits, err := searchJournals(ctx, db, reader(ctx), terms, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search journals: %w", err)
	}
	return hits, nil
}

func scanHits(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]JournalHit, error) {
	out := []JournalHit{}
	for rows.Next() {
		var h JournalHit
		if err := rows.Scan(&h.ID, &h.Date, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
