package store

import (
	"context"
	"fmt"

	"github.com/starford/daybook/internal/models"
)

const habitCols = `id, author, date, name, description, is_completed, created_at, updated_at`

func scanHabit(s scanner) (models.Habit, error) {
	var h models.Habit
	err := s.Scan(&h.ID, &h.Author, &h.Date, &h.Name, &h.Description, &h.IsCompleted, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// HabitsByDate returns the caller's habits on date.
func (db *DB) HabitsByDate(ctx context.Context, date string) ([]models.Habit, error) {
	out, err := queryAll(ctx, db.conn, scanHabit,
		`SELECT `+habitCols+` FROM habits WHERE author = ? AND date = ? ORDER BY id`, reader(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("store: habits by date: %w", err)
	}
	return out, nil
}

// HabitsForDates returns the caller's habits on any of dates.
func (db *DB) HabitsForDates(ctx context.Context, dates []string) ([]string, []models.Habit, error) {
	if len(dates) == 0 {
		return dates, []models.Habit{}, nil
	}
	in, args := inDates(dates, reader(ctx))
	out, err := queryAll(ctx, db.conn, scanHabit,
		`SELECT `+habitCols+` FROM habits WHERE author = ? AND date `+in, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("store: habits for dates: %w", err)
	}
	return dates, out, nil
}

// Habit returns one of the caller's habits.
func (db *DB) Habit(ctx context.Context, id int64) (*models.Habit, error) {
	return found[models.Habit](models.KindHabit, id)(queryOne(ctx, db.conn, scanHabit,
		`SELECT `+habitCols+` FROM habits WHERE id = ? AND author = ?`, id, reader(ctx)))
}

// CreateHabit stores h for the caller and returns its id.
func (db *DB) CreateHabit(ctx context.Context, h models.Habit) (int64, error) {
	author, err := writer(ctx, "create", models.KindHabit)
	if err != nil {
		return 0, err
	}
	if err := validate(h); err != nil {
		return 0, err
	}
	now := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO habits (author, date, name, description, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		author, h.Date, h.Name, h.Description, h.IsCompleted, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: create habit: %w", err)
	}
	return res.LastInsertId()
}

// UpdateHabit replaces the editable fields of habit id.
func (db *DB) UpdateHabit(ctx context.Context, id int64, h models.Habit) error {
	author, err := writer(ctx, "update", models.KindHabit)
	if err != nil {
		return err
	}
	if err := validate(h); err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "habits", id, author, "update", models.KindHabit); err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		UPDATE habits SET date = ?, name = ?, description = ?, is_completed = ?, updated_at = ?
		WHERE id = ?`,
		h.Date, h.Name, h.Description, h.IsCompleted, db.timestamp(), id)
	if err != nil {
		return fmt.Errorf("store: update habit: %w", err)
	}
	return nil
}

// DeleteHabit removes habit id.
func (db *DB) DeleteHabit(ctx context.Context, id int64) error {
	author, err := writer(ctx, "delete", models.KindHabit)
	if err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "habits", id, author, "delete", models.KindHabit); err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete habit: %w", err)
	}
	return nil
}
