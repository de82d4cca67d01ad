package tracker

import (
	"context"
	"errors"

	"github.com/starford/daybook/internal/aggregate"
	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/store"
)

type (
	getter[T any]  func(store.Backend, context.Context, int64) (*T, error)
	creator[T any] func(store.Backend, context.Context, T) (int64, error)
	updater[T any] func(store.Backend, context.Context, int64, T) error
	deleter        func(store.Backend, context.Context, int64) error
)

func create[T any](ctx context.Context, s *Service, kind models.Kind, v T, dateOf func(T) string, call creator[T]) (int64, error) {
	b, err := s.guard(ctx, "create", kind)
	if err != nil {
		return 0, err
	}
	id, err := call(b, ctx, v)
	s.finish(ctx, kind, "create", err, dateOf(v))
	return id, err
}

// previousDate looks up the stored record so its old date can be
// invalidated too. A missing record is left for the write to report.
func previousDate[T any](ctx context.Context, b store.Backend, id int64, get getter[T], dateOf func(T) string) (string, error) {
	prev, err := get(b, ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dateOf(*prev), nil
}

func update[T any](ctx context.Context, s *Service, kind models.Kind, id int64, v T, dateOf func(T) string, get getter[T], call updater[T]) error {
	b, err := s.guard(ctx, "update", kind)
	if err != nil {
		return err
	}
	old, err := previousDate(ctx, b, id, get, dateOf)
	if err != nil {
		return err
	}
	err = call(b, ctx, id, v)
	s.finish(ctx, kind, "update", err, old, dateOf(v))
	return err
}

func remove[T any](ctx context.Context, s *Service, kind models.Kind, id int64, dateOf func(T) string, get getter[T], call deleter) error {
	b, err := s.guard(ctx, "delete", kind)
	if err != nil {
		return err
	}
	old, err := previousDate(ctx, b, id, get, dateOf)
	if err != nil {
		return err
	}
	err = call(b, ctx, id)
	s.finish(ctx, kind, "delete", err, old)
	return err
}

// CreateActivity stores a new activity for the caller.
func (s *Service) CreateActivity(ctx context.Context, a models.Activity) (int64, error) {
	return create(ctx, s, models.KindActivity, a, aggregate.ActivityDate, store.Backend.CreateActivity)
}

// UpdateActivity replaces activity id.
func (s *Service) UpdateActivity(ctx context.Context, id int64, a models.Activity) error {
	return update(ctx, s, models.KindActivity, id, a, aggregate.ActivityDate, store.Backend.Activity, store.Backend.UpdateActivity)
}

// DeleteActivity removes activity id.
func (s *Service) DeleteActivity(ctx context.Context, id int64) error {
	return remove(ctx, s, models.KindActivity, id, aggregate.ActivityDate, store.Backend.Activity, store.Backend.DeleteActivity)
}

// CreateFinance stores a new finance entry for the caller.
func (s *Service) CreateFinance(ctx context.Context, f models.Finance) (int64, error) {
	return create(ctx, s, models.KindFinance, f, aggregate.FinanceDate, store.Backend.CreateFinance)
}

// UpdateFinance replaces finance entry id.
func (s *Service) UpdateFinance(ctx context.Context, id int64, f models.Finance) error {
	return update(ctx, s, models.KindFinance, id, f, aggregate.FinanceDate, store.Backend.Finance, store.Backend.UpdateFinance)
}

// DeleteFinance removes finance entry id.
func (s *Service) DeleteFinance(ctx context.Context, id int64) error {
	return remove(ctx, s, models.KindFinance, id, aggregate.FinanceDate, store.Backend.Finance, store.Backend.DeleteFinance)
}

// CreateHabit stores a new habit for the caller.
func (s *Service) CreateHabit(ctx context.Context, h models.Habit) (int64, error) {
	return create(ctx, s, models.KindHabit, h, aggregate.HabitDate, store.Backend.CreateHabit)
}

// UpdateHabit replaces habit id.
func (s *Service) UpdateHabit(ctx context.Context, id int64, h models.Habit) error {
	return update(ctx, s, models.KindHabit, id, h, aggregate.HabitDate, store.Backend.Habit, store.Backend.UpdateHabit)
}

// DeleteHabit removes habit id.
func (s *Service) DeleteHabit(ctx context.Context, id int64) error {
	return remove(ctx, s, models.KindHabit, id, aggregate.HabitDate, store.Backend.Habit, store.Backend.DeleteHabit)
}

// CreateJournal stores the caller's journal entry for a date.
func (s *Service) CreateJournal(ctx context.Context, j models.Journal) (int64, error) {
	return create(ctx, s, models.KindJournal, j, aggregate.JournalDate, store.Backend.CreateJournal)
}

// UpdateJournal replaces journal entry id.
func (s *Service) UpdateJournal(ctx context.Context, id int64, j models.Journal) error {
	return update(ctx, s, models.KindJournal, id, j, aggregate.JournalDate, store.Backend.Journal, store.Backend.UpdateJournal)
}

// DeleteJournal removes journal entry id.
func (s *Service) DeleteJournal(ctx context.Context, id int64) error {
	return remove(ctx, s, models.KindJournal, id, aggregate.JournalDate, store.Backend.Journal, store.Backend.DeleteJournal)
}

// CreateReminder stores a new reminder for the caller.
func (s *Service) CreateReminder(ctx context.Context, r models.Reminder) (int64, error) {
	return create(ctx, s, models.KindReminder, r, aggregate.ReminderDate, store.Backend.CreateReminder)
}

// UpdateReminder replaces reminder id.
func (s *Service) UpdateReminder(ctx context.Context, id int64, r models.Reminder) error {
	return update(ctx, s, models.KindReminder, id, r, aggregate.ReminderDate, store.Backend.Reminder, store.Backend.UpdateReminder)
}

// DeleteReminder removes reminder id.
func (s *Service) DeleteReminder(ctx context.Context, id int64) error {
	return remove(ctx, s, models.KindReminder, id, aggregate.ReminderDate, store.Backend.Reminder, store.Backend.DeleteReminder)
}

// SaveProfile creates or replaces the caller's profile.
func (s *Service) SaveProfile(ctx context.Context, p models.UserProfile) error {
	b, err := s.guard(ctx, "save", models.KindProfile)
	if err != nil {
		return err
	}
	err = b.SaveCallerProfile(ctx, p)
	s.finish(ctx, models.KindProfile, "save", err)
	return err
}
