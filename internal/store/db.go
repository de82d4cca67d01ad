// Package store is the SQLite persistence backend for tracked records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/models"
)

// DB wraps a sql.DB with the record operations.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string, opts ...Option) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	if err := initSearch(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: init search: %w", err)
	}
	db := &DB{conn: conn, now: time.Now}
	for _, o := range opts {
		o(db)
	}
	return db, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC().Truncate(time.Microsecond)
}

// writer returns the caller's principal id, refusing anonymous callers.
func writer(ctx context.Context, verb string, kind models.Kind) (string, error) {
	p := identity.FromContext(ctx)
	if p.IsAnonymous() {
		return "", fmt.Errorf("%w: Anonymous principals cannot %s %s", apperr.ErrUnauthenticated, verb, kind.Plural())
	}
	return p.ID, nil
}

func reader(ctx context.Context) string {
	return identity.FromContext(ctx).ID
}

// checkAuthor verifies the row exists and belongs to author.
func (db *DB) checkAuthor(ctx context.Context, table string, id int64, author, verb string, kind models.Kind) error {
	var owner string
	err := db.conn.QueryRowContext(ctx, `SELECT author FROM `+table+` WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", kind.Singular(), id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: %s author: %w", table, err)
	}
	if owner != author {
		return fmt.Errorf("%w: only the author can %s this %s", apperr.ErrUnauthorized, verb, kind.Singular())
	}
	return nil
}

func validate(v interface{ Validate() error }) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, conn *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryOne[T any](ctx context.Context, conn *sql.DB, scan func(scanner) (T, error), query string, args ...any) (*T, error) {
	v, err := scan(conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// inDates renders "IN (?, ?, ...)" and the matching args after prefix.
func inDates(dates []string, prefix ...any) (string, []any) {
	args := append([]any{}, prefix...)
	for _, d := range dates {
		args = append(args, d)
	}
	return "IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(dates)), ", ") + ")", args
}

// found turns a nil lookup result into ErrNotFound.
func found[T any](kind models.Kind, id int64) func(*T, error) (*T, error) {
	return func(v *T, err error) (*T, error) {
		if err != nil {
			return nil, fmt.Errorf("store: get %s: %w", kind.Singular(), err)
		}
		if v == nil {
			return nil, fmt.Errorf("%s %d: %w", kind.Singular(), id, apperr.ErrNotFound)
		}
		return v, nil
	}
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
