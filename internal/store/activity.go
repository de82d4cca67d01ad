package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starford/daybook/internal/models"
)

const activityCols = `id, author, date, name, description, start_time, end_time, duration,
	goal_kind, goal_custom, recurring, cover_image, color_hex, created_at, updated_at`

func scanActivity(s scanner) (models.Activity, error) {
	var a models.Activity
	var dur sql.NullInt64
	err := s.Scan(&a.ID, &a.Author, &a.Date, &a.Name, &a.Description, &a.StartTime, &a.EndTime, &dur,
		&a.GoalType.Kind, &a.GoalType.Custom, &a.Recurring, &a.CoverImage, &a.ColorHex, &a.CreatedAt, &a.UpdatedAt)
	a.Duration = intPtr(dur)
	return a, err
}

// ActivitiesByDate returns the caller's activities on date.
func (db *DB) ActivitiesByDate(ctx context.Context, date string) ([]models.Activity, error) {
	out, err := queryAll(ctx, db.conn, scanActivity,
		`SELECT `+activityCols+` FROM activities WHERE author = ? AND date = ? ORDER BY id`, reader(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("store: activities by date: %w", err)
	}
	return out, nil
}

// ActivitiesForDates returns the caller's activities on any of dates.
func (db *DB) ActivitiesForDates(ctx context.Context, dates []string) ([]string, []models.Activity, error) {
	if len(dates) == 0 {
		return dates, []models.Activity{}, nil
	}
	in, args := inDates(dates, reader(ctx))
	out, err := queryAll(ctx, db.conn, scanActivity,
		`SELECT `+activityCols+` FROM activities WHERE author = ? AND date `+in, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("store: activities for dates: %w", err)
	}
	return dates, out, nil
}

// Activity returns one of the caller's activities.
func (db *DB) Activity(ctx context.Context, id int64) (*models.Activity, error) {
	return found[models.Activity](models.KindActivity, id)(queryOne(ctx, db.conn, scanActivity,
		`SELECT `+activityCols+` FROM activities WHERE id = ? AND author = ?`, id, reader(ctx)))
}

// CreateActivity stores a for the caller and returns its id.
func (db *DB) CreateActivity(ctx context.Context, a models.Activity) (int64, error) {
	author, err := writer(ctx, "create", models.KindActivity)
	if err != nil {
		return 0, err
	}
	if err := validate(a); err != nil {
		return 0, err
	}
	now := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO activities (author, date, name, description, start_time, end_time, duration,
			goal_kind, goal_custom, recurring, cover_image, color_hex, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		author, a.Date, a.Name, a.Description, a.StartTime, a.EndTime, nullInt(a.Duration),
		a.GoalType.Kind, a.GoalType.Custom, a.Recurring, a.CoverImage, a.ColorHex, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: create activity: %w", err)
	}
	return res.LastInsertId()
}

// UpdateActivity replaces the editable fields of activity id.
func (db *DB) UpdateActivity(ctx context.Context, id int64, a models.Activity) error {
	author, err := writer(ctx, "update", models.KindActivity)
	if err != nil {
		return err
	}
	if err := validate(a); err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "activities", id, author, "update", models.KindActivity); err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		UPDATE activities SET date = ?, name = ?, description = ?, start_time = ?, end_time = ?,
			duration = ?, goal_kind = ?, goal_custom = ?, recurring = ?, cover_image = ?,
			color_hex = ?, updated_at = ?
		WHERE id = ?`,
		a.Date, a.Name, a.Description, a.StartTime, a.EndTime, nullInt(a.Duration),
		a.GoalType.Kind, a.GoalType.Custom, a.Recurring, a.CoverImage, a.ColorHex, db.timestamp(), id)
	if err != nil {
		return fmt.Errorf("store: update activity: %w", err)
	}
	return nil
}

// DeleteActivity removes activity id.
func (db *DB) DeleteActivity(ctx context.Context, id int64) error {
	author, err := writer(ctx, "delete", models.KindActivity)
	if err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "activities", id, author, "delete", models.KindActivity); err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete activity: %w", err)
	}
	return nil
}
