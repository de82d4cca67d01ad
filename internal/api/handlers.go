package api

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/tracker"
)

// Handler holds API route handlers.
type Handler struct {
	svc *tracker.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

// Day handles GET /api/days/{date}.
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Day(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Timeline handles GET /api/days/{date}/timeline.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Timeline(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Dashboard handles GET /api/dashboard?days=7|30.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: days must be a number", apperr.ErrInvalid))
			return
		}
		days = n
	}
	v, err := h.svc.Dashboard(r.Context(), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Calendar handles GET /api/calendar/{year}/{month}?selected=.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthParams(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.svc.Month(r.Context(), year, month, r.URL.Query().Get("selected"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ReminderDates handles GET /api/reminders/dates. It takes the same date
// parameters as the range routes, or year and month.
func (h *Handler) ReminderDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var dates []string
	if q.Has("year") || q.Has("month") {
		year, month, err := monthParams(q.Get("year"), q.Get("month"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		dates = h.svc.Calendar().MonthDates(year, month)
	} else {
		var err error
		if dates, err = h.datesParam(r); err != nil {
			writeError(w, r, err)
			return
		}
	}
	marks, err := h.svc.ReminderDates(r.Context(), dates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]string, 0, len(marks))
	for d := range marks {
		out = append(out, d)
	}
	slices.Sort(out)
	writeJSON(w, http.StatusOK, map[string]any{"dates": out})
}

func monthParams(y, m string) (int, time.Month, error) {
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad year %q", apperr.ErrInvalid, y)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: bad month %q", apperr.ErrInvalid, m)
	}
	return year, time.Month(month), nil
}

// Profile handles GET /api/profile. The body is null before setup.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveProfile handles PUT /api/profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeJSON[models.UserProfile](w, r)
	if !ok {
		return
	}
	if err := h.svc.SaveProfile(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetupStatus handles GET /api/profile/setup-status.
func (h *Handler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.SetupStatus(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[loginRequest](w, r)
	if !ok {
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Logout handles DELETE /api/session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchJournals handles GET /api/journal/search?q=&limit=.
func (h *Handler) SearchJournals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, fmt.Errorf("%w: limit must be a positive number", apperr.ErrInvalid))
			return
		}
		limit = n
	}
	hits, err := h.svc.SearchJournals(r.Context(), q.Get("q"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": hits})
}
