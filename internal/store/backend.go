package store

import (
	"context"

	"github.com/starford/daybook/internal/models"
)

// Backend is the persistence collaborator. The caller is always the
// principal on ctx; reads only ever see the caller's own records.
//
// The ForDates methods echo the requested dates and return a flat list in
// no particular order. Dates with no records are simply absent from it.
type Backend interface {
	ActivitiesByDate(ctx context.Context, date string) ([]models.Activity, error)
	ActivitiesForDates(ctx context.Context, dates []string) ([]string, []models.Activity, error)
	Activity(ctx context.Context, id int64) (*models.Activity, error)
	CreateActivity(ctx context.Context, a models.Activity) (int64, error)
	UpdateActivity(ctx context.Context, id int64, a models.Activity) error
	DeleteActivity(ctx context.Context, id int64) error

	FinancesByDate(ctx context.Context, date string) ([]models.Finance, error)
	FinancesForDates(ctx context.Context, dates []string) ([]string, []models.Finance, error)
	Finance(ctx context.Context, id int64) (*models.Finance, error)
	CreateFinance(ctx context.Context, f models.Finance) (int64, error)
	UpdateFinance(ctx context.Context, id int64, f models.Finance) error
	DeleteFinance(ctx context.Context, id int64) error

	HabitsByDate(ctx context.Context, date string) ([]models.Habit, error)
	HabitsForDates(ctx context.Context, dates []string) ([]string, []models.Habit, error)
	Habit(ctx context.Context, id int64) (*models.Habit, error)
	CreateHabit(ctx context.Context, h models.Habit) (int64, error)
	UpdateHabit(ctx context.Context, id int64, h models.Habit) error
	DeleteHabit(ctx context.Context, id int64) error

	// JournalByDate returns nil when the caller has no entry that day.
	JournalByDate(ctx context.Context, date string) (*models.Journal, error)
	JournalsForDates(ctx context.Context, dates []string) ([]string, []models.Journal, error)
	Journal(ctx context.Context, id int64) (*models.Journal, error)
	CreateJournal(ctx context.Context, j models.Journal) (int64, error)
	UpdateJournal(ctx context.Context, id int64, j models.Journal) error
	DeleteJournal(ctx context.Context, id int64) error
	// SearchJournals matches title and content; an empty query finds nothing.
	SearchJournals(ctx context.Context, query string, limit int) ([]JournalHit, error)

	RemindersByDate(ctx context.Context, date string) ([]models.Reminder, error)
	RemindersForDates(ctx context.Context, dates []string) ([]string, []models.Reminder, error)
	Reminder(ctx context.Context, id int64) (*models.Reminder, error)
	CreateReminder(ctx context.Context, r models.Reminder) (int64, error)
	UpdateReminder(ctx context.Context, id int64, r models.Reminder) error
	DeleteReminder(ctx context.Context, id int64) error

	// CallerProfile returns nil when the caller has not saved one.
	CallerProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerProfile(ctx context.Context, p models.UserProfile) error
	SetupStatus(ctx context.Context) (bool, error)

	Ping(ctx context.Context) error
}

// Verify *DB satisfies Backend at compile time.
var _ Backend = (*DB)(nil)
