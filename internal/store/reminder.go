package store

import (
	"context"
	"fmt"

	"github.com/starford/daybook/internal/models"
)

const reminderCols = `id, author, name, description, repeat_schema, color_hex, target_date, created_at, updated_at`

func scanReminder(s scanner) (models.Reminder, error) {
	var r models.Reminder
	err := s.Scan(&r.ID, &r.Author, &r.Name, &r.Description, &r.RepeatSchema, &r.ColorHex, &r.TargetDate,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// RemindersByDate returns the caller's reminders targeting date.
func (db *DB) RemindersByDate(ctx context.Context, date string) ([]models.Reminder, error) {
	out, err := queryAll(ctx, db.conn, scanReminder,
		`SELECT `+reminderCols+` FROM reminders WHERE author = ? AND target_date = ? ORDER BY id`, reader(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("store: reminders by date: %w", err)
	}
	return out, nil
}

// RemindersForDates returns the caller's reminders targeting any of dates.
func (db *DB) RemindersForDates(ctx context.Context, dates []string) ([]string, []models.Reminder, error) {
	if len(dates) == 0 {
		return dates, []models.Reminder{}, nil
	}
	in, args := inDates(dates, reader(ctx))
	out, err := queryAll(ctx, db.conn, scanReminder,
		`SELECT `+reminderCols+` FROM reminders WHERE author = ? AND target_date `+in, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("store: reminders for dates: %w", err)
	}
	return dates, out, nil
}

// Reminder returns one of the caller's reminders.
func (db *DB) Reminder(ctx context.Context, id int64) (*models.Reminder, error) {
	return found[models.Reminder](models.KindReminder, id)(queryOne(ctx, db.conn, scanReminder,
		`SELECT `+reminderCols+` FROM reminders WHERE id = ? AND author = ?`, id, reader(ctx)))
}

// CreateReminder stores r for the caller and returns its id.
func (db *DB) CreateReminder(ctx context.Context, r models.Reminder) (int64, error) {
	author, err := writer(ctx, "create", models.KindReminder)
	if err != nil {
		return 0, err
	}
	if err := validate(r); err != nil {
		return 0, err
	}
	now := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO reminders (author, name, description, repeat_schema, color_hex, target_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		author, r.Name, r.Description, r.RepeatSchema, r.ColorHex, r.TargetDate, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: create reminder: %w", err)
	}
	return res.LastInsertId()
}

// UpdateReminder replaces the editable fields of reminder id.
func (db *DB) UpdateReminder(ctx context.Context, id int64, r models.Reminder) error {
	author, err := writer(ctx, "update", models.KindReminder)
	if err != nil {
		return err
	}
	if err := validate(r); err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "reminders", id, author, "update", models.KindReminder); err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		UPDATE reminders SET name = ?, description = ?, repeat_schema = ?, color_hex = ?, target_date = ?, updated_at = ?
		WHERE id = ?`,
		r.Name, r.Description, r.RepeatSchema, r.ColorHex, r.TargetDate, db.timestamp(), id)
	if err != nil {
		return fmt.Errorf("store: update reminder: %w", err)
	}
	return nil
}

// DeleteReminder removes reminder id.
func (db *DB) DeleteReminder(ctx context.Context, id int64) error {
	author, err := writer(ctx, "delete", models.KindReminder)
	if err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "reminders", id, author, "delete", models.KindReminder); err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete reminder: %w", err)
	}
	return nil
}
