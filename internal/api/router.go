package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/tracker"
)

// NewRouter creates a chi router with all API routes mounted. events, if
// non-nil, is served at GET /events behind the same authentication.
func NewRouter(svc *tracker.Service, auth identity.Authenticator, events http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(auth))

	r.Get("/days/{date}", h.Day)
	r.Get("/days/{date}/timeline", h.Timeline)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/calendar/{year}/{month}", h.Calendar)

	r.Route("/activities", resource[models.Activity, []models.Activity]{
		day: svc.Activities, days: svc.ActivitiesRange,
		create: svc.CreateActivity, update: svc.UpdateActivity, remove: svc.DeleteActivity,
	}.routes(h))
	r.Route("/finances", resource[models.Finance, []models.Finance]{
		day: svc.Finances, days: svc.FinancesRange,
		create: svc.CreateFinance, update: svc.UpdateFinance, remove: svc.DeleteFinance,
	}.routes(h))
	r.Route("/habits", resource[models.Habit, []models.Habit]{
		day: svc.Habits, days: svc.HabitsRange,
		create: svc.CreateHabit, update: svc.UpdateHabit, remove: svc.DeleteHabit,
	}.routes(h))
	r.Route("/journal", func(r chi.Router) {
		r.Get("/search", h.SearchJournals)
		resource[models.Journal, *models.Journal]{
			day: svc.Journal, days: svc.JournalsRange,
			create: svc.CreateJournal, update: svc.UpdateJournal, remove: svc.DeleteJournal,
		}.routes(h)(r)
	})
	r.Route("/reminders", func(r chi.Router) {
		r.Get("/dates", h.ReminderDates)
		resource[models.Reminder, []models.Reminder]{
			day: svc.Reminders, days: svc.RemindersRange,
			create: svc.CreateReminder, update: svc.UpdateReminder, remove: svc.DeleteReminder,
		}.routes(h)(r)
	})

	r.Get("/profile", h.Profile)
	r.Put("/profile", h.SaveProfile)
	r.Get("/profile/setup-status", h.SetupStatus)

	r.Post("/session", h.Login)
	r.Delete("/session", h.Logout)

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}
	return r
}
