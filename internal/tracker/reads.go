package tracker

import (
	"context"

	"github.com/starford/daybook/internal/aggregate"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/querycache"
	"github.com/starford/daybook/internal/store"
)

// readDay is a cached single-date read.
func readDay[T any](ctx context.Context, s *Service, kind, date string,
	fetch func(store.Backend, context.Context, string) (T, error)) (T, error) {
	var zero T
	if err := s.checkDate(date); err != nil {
		return zero, err
	}
	b, err := s.attached()
	if err != nil {
		return zero, err
	}
	key := querycache.DayKey(identity.FromContext(ctx).ID, kind, date)
	return querycache.Get(ctx, s.cache, key, func(ctx context.Context) (T, error) {
		return fetch(b, ctx, date)
	})
}

// readRange is a cached batched read grouped by each record's own date.
func readRange[T any](ctx context.Context, s *Service, kind string, dates []string,
	fetch func(store.Backend, context.Context, []string) ([]string, []T, error),
	dateOf func(T) string) (map[string][]T, error) {
	if err := s.checkDates(dates); err != nil {
		return nil, err
	}
	b, err := s.attached()
	if err != nil {
		return nil, err
	}
	key := querycache.RangeKey(identity.FromContext(ctx).ID, kind, dates)
	return querycache.Get(ctx, s.cache, key, func(ctx context.Context) (map[string][]T, error) {
		_, records, err := fetch(b, ctx, dates)
		if err != nil {
			return nil, err
		}
		return aggregate.GroupByDate(dates, records, dateOf), nil
	})
}

// Activities returns the caller's activities on date.
func (s *Service) Activities(ctx context.Context, date string) ([]models.Activity, error) {
	return readDay(ctx, s, string(models.KindActivity), date, store.Backend.ActivitiesByDate)
}

// ActivitiesRange returns the caller's activities for every date in dates.
func (s *Service) ActivitiesRange(ctx context.Context, dates []string) (map[string][]models.Activity, error) {
	return readRange(ctx, s, string(models.KindActivity), dates, store.Backend.ActivitiesForDates, aggregate.ActivityDate)
}

// Finances returns the caller's finance entries on date.
func (s *Service) Finances(ctx context.Context, date string) ([]models.Finance, error) {
	return readDay(ctx, s, string(models.KindFinance), date, store.Backend.FinancesByDate)
}

// FinancesRange returns the caller's finance entries for every date in dates.
func (s *Service) FinancesRange(ctx context.Context, dates []string) (map[string][]models.Finance, error) {
	return readRange(ctx, s, string(models.KindFinance), dates, store.Backend.FinancesForDates, aggregate.FinanceDate)
}

// Habits returns the caller's habits on date.
func (s *Service) Habits(ctx context.Context, date string) ([]models.Habit, error) {
	return readDay(ctx, s, string(models.KindHabit), date, store.Backend.HabitsByDate)
}

// HabitsRange returns the caller's habits for every date in dates.
func (s *Service) HabitsRange(ctx context.Context, dates []string) (map[string][]models.Habit, error) {
	return readRange(ctx, s, string(models.KindHabit), dates, store.Backend.HabitsForDates, aggregate.HabitDate)
}

// Journal returns the caller's journal entry on date, or nil.
func (s *Service) Journal(ctx context.Context, date string) (*models.Journal, error) {
	return readDay(ctx, s, string(models.KindJournal), date, store.Backend.JournalByDate)
}

// JournalsRange returns the caller's journal entries for every date in dates.
func (s *Service) JournalsRange(ctx context.Context, dates []string) (map[string][]models.Journal, error) {
	return readRange(ctx, s, string(models.KindJournal), dates, store.Backend.JournalsForDates, aggregate.JournalDate)
}

// Reminders returns the caller's reminders targeting date.
func (s *Service) Reminders(ctx context.Context, date string) ([]models.Reminder, error) {
	return readDay(ctx, s, string(models.KindReminder), date, store.Backend.RemindersByDate)
}

// RemindersRange returns the caller's reminders for every target date in
// dates.
func (s *Service) RemindersRange(ctx context.Context, dates []string) (map[string][]models.Reminder, error) {
	return readRange(ctx, s, string(models.KindReminder), dates, store.Backend.RemindersForDates, aggregate.ReminderDate)
}

// ReminderDates returns which of dates carry at least one reminder.
func (s *Service) ReminderDates(ctx context.Context, dates []string) (map[string]struct{}, error) {
	if err := s.checkDates(dates); err != nil {
		return nil, err
	}
	b, err := s.attached()
	if err != nil {
		return nil, err
	}
	key := querycache.RangeKey(identity.FromContext(ctx).ID, kindReminderDates, dates)
	return querycache.Get(ctx, s.cache, key, func(ctx context.Context) (map[string]struct{}, error) {
		_, rs, err := b.RemindersForDates(ctx, dates)
		if err != nil {
			return nil, err
		}
		return aggregate.DatesWithReminders(rs), nil
	})
}

// Profile returns the caller's profile, or nil before setup.
func (s *Service) Profile(ctx context.Context) (*models.UserProfile, error) {
	b, err := s.attached()
	if err != nil {
		return nil, err
	}
	key := querycache.Key{Principal: identity.FromContext(ctx).ID, Kind: string(models.KindProfile)}
	return querycache.Get(ctx, s.cache, key, b.CallerProfile)
}

// SetupStatus reports whether the caller has a profile. It always asks the
// backend.
func (s *Service) SetupStatus(ctx context.Context) (models.SetupStatus, error) {
	b, err := s.attached()
	if err != nil {
		return models.SetupStatus{}, err
	}
	ok, err := b.SetupStatus(ctx)
	if err != nil {
		return models.SetupStatus{}, err
	}
	return models.SetupStatus{HasProfile: ok}, nil
}

// maxSearchResults caps one journal search.
const maxSearchResults = 50

// SearchJournals full-text searches the caller's journal. Results are not
// cached.
func (s *Service) SearchJournals(ctx context.Context, query string, limit int) ([]store.JournalHit, error) {
	b, err := s.attached()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	return b.SearchJournals(ctx, query, limit)
}
