package store

import (
	"context"
	"fmt"

	"github.com/starford/daybook/internal/models"
)

const financeCols = `id, author, date, title, description, purpose, amount, finance_type, recurring, created_at, updated_at`

func scanFinance(s scanner) (models.Finance, error) {
	var f models.Finance
	err := s.Scan(&f.ID, &f.Author, &f.Date, &f.Title, &f.Description, &f.Purpose, &f.Amount,
		&f.FinanceType, &f.Recurring, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// FinancesByDate returns the caller's finance entries on date.
func (db *DB) FinancesByDate(ctx context.Context, date string) ([]models.Finance, error) {
	out, err := queryAll(ctx, db.conn, scanFinance,
		`SELECT `+financeCols+` FROM finances WHERE author = ? AND date = ? ORDER BY id`, reader(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("store: finances by date: %w", err)
	}
	return out, nil
}

// FinancesForDates returns the caller's finance entries on any of dates.
func (db *DB) FinancesForDates(ctx context.Context, dates []string) ([]string, []models.Finance, error) {
	if len(dates) == 0 {
		return dates, []models.Finance{}, nil
	}
	in, args := inDates(dates, reader(ctx))
	out, err := queryAll(ctx, db.conn, scanFinance,
		`SELECT `+financeCols+` FROM finances WHERE author = ? AND date `+in, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("store: finances for dates: %w", err)
	}
	return dates, out, nil
}

// Finance returns one of the caller's finance entries.
func (db *DB) Finance(ctx context.Context, id int64) (*models.Finance, error) {
	return found[models.Finance](models.KindFinance, id)(queryOne(ctx, db.conn, scanFinance,
		`SELECT `+financeCols+` FROM finances WHERE id = ? AND author = ?`, id, reader(ctx)))
}

// CreateFinance stores f for the caller and returns its id.
func (db *DB) CreateFinance(ctx context.Context, f models.Finance) (int64, error) {
	author, err := writer(ctx, "create", models.KindFinance)
	if err != nil {
		return 0, err
	}
	if err := validate(f); err != nil {
		return 0, err
	}
	now := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO finances (author, date, title, description, purpose, amount, finance_type, recurring, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		author, f.Date, f.Title, f.Description, f.Purpose, f.Amount, f.FinanceType, f.Recurring, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: create finance: %w", err)
	}
	return res.LastInsertId()
}

// UpdateFinance replaces the editable fields of finance entry id.
func (db *DB) UpdateFinance(ctx context.Context, id int64, f models.Finance) error {
	author, err := writer(ctx, "update", models.KindFinance)
	if err != nil {
		return err
	}
	if err := validate(f); err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "finances", id, author, "update", models.KindFinance); err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		UPDATE finances SET date = ?, title = ?, description = ?, purpose = ?, amount = ?,
			finance_type = ?, recurring = ?, updated_at = ?
		WHERE id = ?`,
		f.Date, f.Title, f.Description, f.Purpose, f.Amount, f.FinanceType, f.Recurring, db.timestamp(), id)
	if err != nil {
		return fmt.Errorf("store: update finance: %w", err)
	}
	return nil
}

// DeleteFinance removes finance entry id.
func (db *DB) DeleteFinance(ctx context.Context, id int64) error {
	author, err := writer(ctx, "delete", models.KindFinance)
	if err != nil {
		return err
	}
	if err := db.checkAuthor(ctx, "finances", id, author, "delete", models.KindFinance); err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM finances WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete finance: %w", err)
	}
	return nil
}
