// Package tracker orchestrates reads and mutations of tracked records: it
// caches reads per principal and date scope, refuses writes without an
// identity or a backend, and invalidates the affected reads after each
// successful write.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/localdate"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/observability"
	"github.com/starford/daybook/internal/querycache"
	"github.com/starford/daybook/internal/store"
)

// kindReminderDates caches the calendar's reminder indicator sets.
const kindReminderDates = "reminderDates"

// Notifier receives invalidation notices after successful writes.
type Notifier interface {
	PublishInvalidation(principal, kind string, dates ...string)
}

type nopNotifier struct{}

func (nopNotifier) PublishInvalidation(string, string, ...string) {}

// Service is the query/mutation surface used by the transports.
//
// Values returned from reads may be shared with other callers through the
// cache and must not be modified.
type Service struct {
	cache    *querycache.Cache
	notifier Notifier
	sessions identity.SessionManager
	cal      *localdate.Calendar
	log      *slog.Logger

	mu      sync.RWMutex
	backend store.Backend
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets where invalidation notices go.
func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

// WithSessions enables Login and Logout.
func WithSessions(m identity.SessionManager) Option { return func(s *Service) { s.sessions = m } }

// WithCalendar sets the calendar used for "today" and dashboard ranges.
func WithCalendar(c *localdate.Calendar) Option { return func(s *Service) { s.cal = c } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithBackend attaches b at construction time.
func WithBackend(b store.Backend) Option { return func(s *Service) { s.backend = b } }

// New returns a Service reading through cache. Until a backend is attached
// every call fails with apperr.ErrConnectionUnavailable.
func New(cache *querycache.Cache, opts ...Option) *Service {
	s := &Service{
		cache:    cache,
		notifier: nopNotifier{},
		cal:      localdate.Local,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Attach makes b the backend for all subsequent calls.
func (s *Service) Attach(b store.Backend) {
	s.mu.Lock()
	s.backend = b
	s.mu.Unlock()
}

// Ready reports whether a backend is attached.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend != nil
}

// Calendar returns the service's calendar.
func (s *Service) Calendar() *localdate.Calendar { return s.cal }

func (s *Service) attached() (store.Backend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return nil, apperr.ErrConnectionUnavailable
	}
	return s.backend, nil
}

// guard performs the local checks that precede every write: an identity
// must be present, then a backend must be attached.
func (s *Service) guard(ctx context.Context, verb string, kind models.Kind) (store.Backend, error) {
	if !identity.Authenticated(ctx) {
		msg := fmt.Sprintf("Please log in to %s %s.", verb, kind.Plural())
		if kind == models.KindProfile {
			msg = "Please log in to save your profile."
		}
		return nil, apperr.WithMessage(apperr.ErrUnauthenticated, msg)
	}
	return s.attached()
}

func (s *Service) checkDate(date string) error {
	if !s.cal.IsValid(date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", apperr.ErrInvalid, date)
	}
	return nil
}

func (s *Service) checkDates(dates []string) error {
	for _, d := range dates {
		if err := s.checkDate(d); err != nil {
			return err
		}
	}
	return nil
}

// invalidate drops every cached read of kinds that covers one of dates and
// announces the change. No dates means every read of those kinds.
func (s *Service) invalidate(principal string, kinds []string, dates []string) {
	dates = compactDates(dates)
	for _, kind := range kinds {
		if len(dates) == 0 {
			s.cache.Invalidate(querycache.Pattern{Principal: principal, Kind: kind})
		}
		for _, d := range dates {
			s.cache.Invalidate(querycache.Pattern{Principal: principal, Kind: kind, Date: d})
		}
		s.notifier.PublishInvalidation(principal, kind, dates...)
	}
}

// NotifyChanged invalidates reads after a write that bypassed the service,
// such as a journal vault import.
func (s *Service) NotifyChanged(principal string, kind models.Kind, dates ...string) {
	s.invalidate(principal, kindsFor(kind), dates)
}

// kindsFor lists the cache kinds a write to kind makes stale.
func kindsFor(kind models.Kind) []string {
	switch kind {
	case models.KindReminder:
		return []string{string(models.KindReminder), kindReminderDates}
	case models.KindProfile:
		return []string{string(models.KindProfile), "setupStatus"}
	}
	return []string{string(kind)}
}

// finish records the outcome of a write and, on success, invalidates.
func (s *Service) finish(ctx context.Context, kind models.Kind, op string, err error, dates ...string) {
	observability.RecordMutation(string(kind), op, err)
	p := identity.FromContext(ctx)
	if err != nil {
		s.log.Warn("mutation failed", "entity", kind, "op", op, "principal", p.ID, "err", err)
		return
	}
	s.log.Debug("mutation", "entity", kind, "op", op, "principal", p.ID, "dates", dates)
	s.invalidate(p.ID, kindsFor(kind), dates)
}

func compactDates(dates []string) []string {
	out := slices.DeleteFunc(slices.Clone(dates), func(d string) bool { return d == "" })
	slices.Sort(out)
	return slices.Compact(out)
}
