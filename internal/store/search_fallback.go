//go:build !sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"strings"
)

func initSearch(_ *sql.DB) error {
	// FTS5 not compiled in; searches scan journals with LIKE.
	return nil
}

func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// searchJournals requires every term to appear in the title or content.
func searchJournals(ctx context.Context, db *DB, author string, terms []string, limit int) ([]JournalHit, error) {
	var where strings.Builder
	args := []any{author}
	for _, t := range terms {
		where.WriteString(` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		p := likePattern(t)
		args = append(args, p, p)
	}
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, date, title, CASE WHEN locked THEN '' ELSE substr(content, 1, 200) END
		FROM journals
		WHERE author = ?`+where.String()+`
		ORDER BY date DESC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHits(rows)
}
