package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/daybook/internal/apperr"
)

// maxRangeDays bounds /range requests.
const maxRangeDays = 366

// resource wires one record kind's CRUD and range routes. D is what a
// single-day read returns.
type resource[T, D any] struct {
	day    func(context.Context, string) (D, error)
	days   func(context.Context, []string) (map[string][]T, error)
	create func(context.Context, T) (int64, error)
	update func(context.Context, int64, T) error
	remove func(context.Context, int64) error
}

type idResponse struct {
	ID int64 `json:"id"`
}

// rangeResponse lists records grouped by their own date. Every requested
// date is present.
type rangeResponse[T any] struct {
	Dates  []string       `json:"dates"`
	ByDate map[string][]T `json:"byDate"`
}

func (res resource[T, D]) routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			date := r.URL.Query().Get("date")
			if date == "" {
				date = h.svc.Calendar().Today()
			}
			v, err := res.day(r.Context(), date)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, v)
		})

		r.Get("/range", func(w http.ResponseWriter, r *http.Request) {
			dates, err := h.datesParam(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			byDate, err := res.days(r.Context(), dates)
			if err != nil {
				writeError(w, r, err)
				return
			}
			out := make(map[string][]T, len(dates))
			for _, d := range dates {
				out[d] = byDate[d]
				if out[d] == nil {
					out[d] = []T{}
				}
			}
			writeJSON(w, http.StatusOK, rangeResponse[T]{Dates: dates, ByDate: out})
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			v, ok := decodeJSON[T](w, r)
			if !ok {
				return
			}
			id, err := res.create(r.Context(), v)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, idResponse{ID: id})
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := idParam(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			v, ok := decodeJSON[T](w, r)
			if !ok {
				return
			}
			if err := res.update(r.Context(), id, v); err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, idResponse{ID: id})
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := idParam(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if err := res.remove(r.Context(), id); err != nil {
				writeError(w, r, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", apperr.ErrInvalid, raw)
	}
	return id, nil
}

// datesParam reads either ?dates=a,b,c or ?start=&end= (inclusive).
func (h *Handler) datesParam(r *http.Request) ([]string, error) {
	q := r.URL.Query()
	var dates []string
	if raw := q.Get("dates"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dates = append(dates, d)
			}
		}
	} else {
		start, end := q.Get("start"), q.Get("end")
		if start == "" || end == "" {
			return nil, fmt.Errorf("%w: give dates or start and end", apperr.ErrInvalid)
		}
		cal := h.svc.Calendar()
		n, err := cal.Span(start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
		}
		if n > maxRangeDays {
			return nil, fmt.Errorf("%w: at most %d dates per request", apperr.ErrInvalid, maxRangeDays)
		}
		if dates, err = cal.Range(start, end); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
		}
	}
	if len(dates) > maxRangeDays {
		return nil, fmt.Errorf("%w: at most %d dates per request", apperr.ErrInvalid, maxRangeDays)
	}
	return dates, nil
}
