//go:build sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"strings"
)

// journals_fts mirrors title and content through triggers, so every write
// path keeps it current.
func initSearch(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS journals_fts USING fts5(
			title,
			content,
			content = 'journals',
			content_rowid = 'id',
			tokenize = 'unicode61 remove_diacritics 2'
		);
		CREATE TRIGGER IF NOT EXISTS journals_fts_ai AFTER INSERT ON journals BEGIN
			INSERT INTO journals_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END;
		CREATE TRIGGER IF NOT EXISTS journals_fts_ad AFTER DELETE ON journals BEGIN
			INSERT INTO journals_fts(journals_fts, rowid, title, content) VALUES ('delete', old.id, old.title, old.content);
		END;
		CREATE TRIGGER IF NOT EXISTS journals_fts_au AFTER UPDATE ON journals BEGIN
			INSERT INTO journals_fts(journals_fts, rowid, title, content) VALUES ('delete', old.id, old.title, old.content);
			INSERT INTO journals_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END;
		INSERT INTO journals_fts(journals_fts) VALUES ('rebuild');
	`)
	return err
}

// matchExpr quotes every term so user input is never parsed as FTS syntax.
func matchExpr(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

func searchJournals(ctx context.Context, db *DB, author string, terms []string, limit int) ([]JournalHit, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT j.id, j.date, j.title,
		       CASE WHEN j.locked THEN '' ELSE snippet(journals_fts, 1, '<b>', '</b>', '...', 16) END
		FROM journals_fts
		JOIN journals j ON j.id = journals_fts.rowid
		WHERE journals_fts MATCH ? AND j.author = ?
		ORDER BY rank
		LIMIT ?
	`, matchExpr(terms), author, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHits(rows)
}
