package tracker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/daybook/internal/aggregate"
	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/models"
)

// DayView is everything the day page shows.
type DayView struct {
	Date           string                      `json:"date"`
	Activities     []models.Activity           `json:"activities"`
	Finances       []models.Finance            `json:"finances"`
	Habits         []models.Habit              `json:"habits"`
	Journal        *models.Journal             `json:"journal"`
	Reminders      []models.Reminder           `json:"reminders"`
	Timeline       []aggregate.TimelineSegment `json:"timeline"`
	Groups         []aggregate.ActivityGroup   `json:"groups"`
	Overview       aggregate.Overview          `json:"overview"`
	FinanceTotals  aggregate.FinanceTotals     `json:"financeTotals"`
	CompletionRate int                         `json:"completionRate"`
}

// Day loads all records of date concurrently and derives the day's charts.
func (s *Service) Day(ctx context.Context, date string) (*DayView, error) {
	if err := s.checkDate(date); err != nil {
		return nil, err
	}
	v := &DayView{Date: date}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { v.Activities, err = s.Activities(gctx, date); return })
	g.Go(func() (err error) { v.Finances, err = s.Finances(gctx, date); return })
	g.Go(func() (err error) { v.Habits, err = s.Habits(gctx, date); return })
	g.Go(func() (err error) { v.Journal, err = s.Journal(gctx, date); return })
	g.Go(func() (err error) { v.Reminders, err = s.Reminders(gctx, date); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	v.Timeline = aggregate.BuildTimeline(v.Activities)
	v.Groups = aggregate.GroupActivitiesByName(v.Activities)
	v.Overview = aggregate.DailyOverview(v.Activities, v.Finances, v.Habits)
	v.FinanceTotals = aggregate.RollupFinances(v.Finances).Display()
	v.CompletionRate = aggregate.CompletionRate(v.Habits)
	return v, nil
}

// TimelineView is the 24-hour strip for one day.
type TimelineView struct {
	Date     string                      `json:"date"`
	Segments []aggregate.TimelineSegment `json:"segments"`
	Groups   []aggregate.ActivityGroup   `json:"groups"`
}

// Timeline projects date's timed activities.
func (s *Service) Timeline(ctx context.Context, date string) (*TimelineView, error) {
	acts, err := s.Activities(ctx, date)
	if err != nil {
		return nil, err
	}
	return &TimelineView{
		Date:     date,
		Segments: aggregate.BuildTimeline(acts),
		Groups:   aggregate.GroupActivitiesByName(acts),
	}, nil
}

// DashboardView holds the trend charts for the last N days.
type DashboardView struct {
	Days         int                        `json:"days"`
	Dates        []string                   `json:"dates"`
	FinanceTrend []aggregate.FinancePoint   `json:"financeTrend"`
	Breakdown    aggregate.FinanceBreakdown `json:"breakdown"`
	HabitTrend   []aggregate.HabitPoint     `json:"habitTrend"`
	TimeSpent    []aggregate.TimeSpent      `json:"timeSpent"`
}

// Dashboard aggregates the last days days (7 or 30) ending today.
func (s *Service) Dashboard(ctx context.Context, days int) (*DashboardView, error) {
	if days != 7 && days != 30 {
		return nil, fmt.Errorf("%w: dashboard range must be 7 or 30 days, got %d", apperr.ErrInvalid, days)
	}
	dates := s.cal.LastNDays(days)

	var (
		finances   map[string][]models.Finance
		habits     map[string][]models.Habit
		activities map[string][]models.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { finances, err = s.FinancesRange(gctx, dates); return })
	g.Go(func() (err error) { habits, err = s.HabitsRange(gctx, dates); return })
	g.Go(func() (err error) { activities, err = s.ActivitiesRange(gctx, dates); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardView{
		Days:         days,
		Dates:        dates,
		FinanceTrend: aggregate.FinanceTrend(dates, finances),
		Breakdown:    aggregate.Breakdown(dates, finances),
		HabitTrend:   aggregate.HabitTrend(dates, habits),
		TimeSpent:    aggregate.TimeByActivityName(aggregate.Flatten(dates, activities)),
	}, nil
}

// Month builds the month grid with reminder indicators. selected may be
// empty.
func (s *Service) Month(ctx context.Context, year int, month time.Month, selected string) (*aggregate.CalendarMonth, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: no such month %d-%02d", apperr.ErrInvalid, year, int(month))
	}
	if selected != "" {
		if err := s.checkDate(selected); err != nil {
			return nil, err
		}
	}
	marks, err := s.ReminderDates(ctx, s.cal.MonthDates(year, month))
	if err != nil {
		return nil, err
	}
	cm := aggregate.BuildCalendar(year, month, s.cal.Today(), selected, marks)
	return &cm, nil
}
