package store

import (
	"context"
	"fmt"

	"github.com/starford/daybook/internal/models"
)

func scanProfile(s scanner) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.Scan(&p.Username, &p.Email, &p.Theme.Kind, &p.Theme.Custom, &p.Language.Kind, &p.Language.Custom,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CallerProfile returns the caller's profile, or nil.
func (db *DB) CallerProfile(ctx context.Context) (*models.UserProfile, error) {
	p, err := queryOne(ctx, db.conn, scanProfile, `
		SELECT username, email, theme_kind, theme_custom, language_kind, language_custom, created_at, updated_at
		FROM profiles WHERE principal = ?`, reader(ctx))
	if err != nil {
		return nil, fmt.Errorf("store: caller profile: %w", err)
	}
	return p, nil
}

// SaveCallerProfile creates or replaces the caller's profile.
func (db *DB) SaveCallerProfile(ctx context.Context, p models.UserProfile) error {
	principal, err := writer(ctx, "save", models.KindProfile)
	if err != nil {
		return err
	}
	if err := validate(p); err != nil {
		return err
	}
	now := db.timestamp()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO profiles (principal, username, email, theme_kind, theme_custom, language_kind, language_custom,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(principal) DO UPDATE SET
			username        = excluded.username,
			email           = excluded.email,
			theme_kind      = excluded.theme_kind,
			theme_custom    = excluded.theme_custom,
			language_kind   = excluded.language_kind,
			language_custom = excluded.language_custom,
			updated_at      = excluded.updated_at`,
		principal, p.Username, p.Email, p.Theme.Kind, p.Theme.Custom, p.Language.Kind, p.Language.Custom, now, now)
	if err != nil {
		return fmt.Errorf("store: save profile: %w", err)
	}
	return nil
}

// SetupStatus reports whether the caller has saved a profile.
func (db *DB) SetupStatus(ctx context.Context) (bool, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM profiles WHERE principal = ?`, reader(ctx)).Scan(&n); err != nil {
		return false, fmt.Errorf("store: setup status: %w", err)
	}
	return n > 0, nil
}
