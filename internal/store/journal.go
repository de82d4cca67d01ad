package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/models"
)

const journalCols = `id, author, date, title, content, locked, access_type, shared_with, cover_image,
	color_hex, has_attachments, entropy, source_path, source_checksum, created_at, updated_at`

func scanJournal(s scanner) (models.Journal, error) {
	var j models.Journal
	var shared string
	err := s.Scan(&j.ID, &j.Author, &j.Date, &j.Title, &j.Content, &j.Locked, &j.AccessType, &shared,
		&j.CoverImage, &j.ColorHex, &j.HasAttachments, &j.Entropy, &j.SourcePath, &j.SourceChecksum,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return j, err
	}
	if err := json.Unmarshal([]byte(shared), &j.SharedWith); err != nil {
		return j, fmt.Errorf("decode shared_with: %w", err)
	}
	return j, nil
}

func sharedJSON(s []string) string {
	if s == nil {
		s = []string{}
	}
	b, _ := json.Marshal(s)
	return string(b)
}

// JournalByDate returns the caller's entry on date, or nil.
func (db *DB) JournalByDate(ctx context.Context, date string) (*models.Journal, error) {
	j, err := queryOne(ctx, db.conn, scanJournal,
		`SELECT `+journalCols+` FROM journals WHERE author = ? AND date = ?`, reader(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("store: journal by date: %w", err)
	}
	return j, nil
}

// JournalsForDates returns the caller's entries on any of dates.
func (db *DB) JournalsForDates(ctx context.Context, dates []string) ([]string, []models.Journal, error) {
	if len(dates) == 0 {
		return dates, []models.Journal{}, nil
	}
	in, args := inDates(dates, reader(ctx))
	out, err := queryAll(ctx, db.conn, scanJournal,
		`SELECT `+journalCols+` FROM journals WHERE author = ? AND date `+in, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("store: journals for dates: %w", err)
	}
	return dates, out, nil
}

// Journal returns one of the caller's entries.
func (db *DB) Journal(ctx context.Context, id int64) (*models.Journal, error) {
	return found[models.Journal](models.KindJournal, id)(queryOne(ctx, db.conn, scanJournal,
		`SELECT `+journalCols+` FROM journals WHERE id = ? AND author = ?`, id, reader(ctx)))
}

// CreateJournal stores j for the caller. A second entry for the same date
// fails with apperr.ErrAlreadyExists.
func (db *DB) CreateJournal(ctx context.Context, j models.Journal) (int64, error) {
	author, err := writer(ctx, "create", models.KindJournal)
	if err != nil {
		return 0, err
	}
	if err := validate(j); err != nil {
		return 0, err
	}
	now := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO journals (author, date, title, content, locked, access_type, shared_with, cover_image,
			color_hex, has_attachments, entropy, source_path, source_checksum, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		author, j.Date, j.Title, j.Content, j.Locked, j.AccessType, sharedJSON(j.SharedWith), j.CoverImage,
		j.ColorHex, j.HasAttachments, j.Entropy, j.SourcePath, j.SourceChecksum, now, now)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("journal entry for %s: %w", j.Date, apperr.ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("store: create journal: %w", err)
	}
	return res.LastInsertId()
}

// UpdateJournal replaces the editable fields of entry id.
func (db *DB) UpdateJournal(ctx context.Context, id int64, j models.Journal) error {
	author, err := writer(ctx, "update", models.KindJournal)
	if err != nil {
		return err
	}
	if err := validate(j); err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "journals", id, author, "update", models.KindJournal); err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		UPDATE journals SET date = ?, title = ?, content = ?, locked = ?, access_type = ?, shared_with = ?,
			cover_image = ?, color_hex = ?, has_attachments = ?, entropy = ?, updated_at = ?
		WHERE id = ?`,
		j.Date, j.Title, j.Content, j.Locked, j.AccessType, sharedJSON(j.SharedWith),
		j.CoverImage, j.ColorHex, j.HasAttachments, j.Entropy, db.timestamp(), id)
	if isUniqueViolation(err) {
		return fmt.Errorf("journal entry for %s: %w", j.Date, apperr.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("store: update journal: %w", err)
	}
	return nil
}

// DeleteJournal removes entry id.
func (db *DB) DeleteJournal(ctx context.Context, id int64) error {
	author, err := writer(ctx, "delete", models.KindJournal)
	if err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "journals", id, author, "delete", models.KindJournal); err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete journal: %w", err)
	}
	return nil
}

// UpsertJournalSource writes an entry imported from a vault file, replacing
// whatever entry the caller had on that date.
func (db *DB) UpsertJournalSource(ctx context.Context, j models.Journal) error {
	author, err := writer(ctx, "import", models.KindJournal)
	if err != nil {
		return err
	}
	if err := validate(j); err != nil {
		return err
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	// A file renamed to a new date leaves its old row behind; drop it first.
	if _, err := tx.ExecContext(ctx, `DELETE FROM journals WHERE author = ? AND source_path = ? AND date <> ?`,
		author, j.SourcePath, j.Date); err != nil {
		return fmt.Errorf("store: clear moved journal: %w", err)
	}
	now := db.timestamp()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO journals (author, date, title, content, locked, access_type, source_path, source_checksum,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(author, date) DO UPDATE SET
			title           = excluded.title,
			content         = excluded.content,
			locked          = excluded.locked,
			access_type     = excluded.access_type,
			source_path     = excluded.source_path,
			source_checksum = excluded.source_checksum,
			updated_at      = excluded.updated_at`,
		author, j.Date, j.Title, j.Content, j.Locked, j.AccessType, j.SourcePath, j.SourceChecksum, now, now)
	if err != nil {
		return fmt.Errorf("store: upsert journal source: %w", err)
	}
	return tx.Commit()
}

// JournalSources maps each imported source path to its stored checksum.
func (db *DB) JournalSources(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT source_path, source_checksum FROM journals WHERE author = ? AND source_path <> ''`, reader(ctx))
	if err != nil {
		return nil, fmt.Errorf("store: journal sources: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// DeleteJournalSource removes the entry imported from path and returns its
// date, or "" when there was none.
func (db *DB) DeleteJournalSource(ctx context.Context, path string) (string, error) {
	author, err := writer(ctx, "delete", models.KindJournal)
	if err != nil {
		return "", err
	}
	var date string
	err = db.conn.QueryRowContext(ctx,
		`DELETE FROM journals WHERE author = ? AND source_path = ? RETURNING date`, author, path).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: delete journal source: %w", err)
	}
	return date, nil
}
