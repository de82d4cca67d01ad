// Package journalvault imports a folder of Markdown journal files into the
// store and keeps it in step with the folder.
package journalvault

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/starford/daybook/internal/checksum"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/localdate"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/observability"
	"github.com/starford/daybook/internal/parser"
	"github.com/starford/daybook/internal/storage"
)

// ErrNoDate marks a file whose frontmatter and name both lack a valid date.
var ErrNoDate = errors.New("journal file has no valid date")

// Store is the part of the backend the vault writes to. Calls carry the
// vault owner as the context principal.
type Store interface {
	UpsertJournalSource(ctx context.Context, j models.Journal) error
	JournalSources(ctx context.Context) (map[string]string, error)
	DeleteJournalSource(ctx context.Context, path string) (string, error)
}

// Notifier is told which reads a sync made stale.
type Notifier interface {
	NotifyChanged(principal string, kind models.Kind, dates ...string)
}

type nopNotifier struct{}

func (nopNotifier) NotifyChanged(string, models.Kind, ...string) {}

// Vault syncs one directory into the owner's journal.
type Vault struct {
	files  *storage.FS
	store  Store
	owner  identity.Principal
	notify Notifier
	cal    *localdate.Calendar
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Vault.
type Option func(*Vault)

// WithNotifier sets who hears about changed journal reads.
func WithNotifier(n Notifier) Option { return func(v *Vault) { v.notify = n } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(v *Vault) { v.log = l } }

// WithCalendar sets the calendar used to validate dates.
func WithCalendar(c *localdate.Calendar) Option { return func(v *Vault) { v.cal = c } }

// New returns a Vault importing files for owner.
func New(files *storage.FS, st Store, owner identity.Principal, opts ...Option) *Vault {
	v := &Vault{
		files:  files,
		store:  st,
		owner:  owner,
		notify: nopNotifier{},
		cal:    localdate.Local,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Result counts what one sync pass did.
type Result struct {
	Imported int `json:"imported"`
	Removed  int `json:"removed"`
	Skipped  int `json:"skipped"`
}

// Changed reports whether the pass touched the store.
func (r Result) Changed() bool { return r.Imported+r.Removed > 0 }

type candidate struct {
	meta    storage.FileMeta
	journal models.Journal
}

// Sync brings the owner's imported entries up to date with the folder:
// rows whose file is gone are removed first, then new or changed files are
// upserted. When two files claim the same date the first path in lexical
// order wins and the other is skipped.
func (v *Vault) Sync(ctx context.Context) (Result, error) {
	var res Result
	ctx = identity.WithPrincipal(ctx, v.owner)

	metas, err := v.files.List("")
	if err != nil {
		return res, err
	}
	sources, err := v.store.JournalSources(ctx)
	if err != nil {
		return res, err
	}
	slices.SortFunc(metas, func(a, b storage.FileMeta) int { return cmp.Compare(a.Path, b.Path) })

	winners := make(map[string]candidate, len(metas))
	for _, m := range metas {
		data, err := v.files.Read(m.Path)
		if err != nil {
			v.log.Warn("vault: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			res.Skipped++
			continue
		}
		j, err := v.toJournal(m.Path, data)
		if err != nil {
			v.log.Warn("vault: skipped file", slog.String("path", m.Path), slog.String("error", err.Error()))
			res.Skipped++
			continue
		}
		if prev, dup := winners[j.Date]; dup {
			v.log.Warn("vault: duplicate date", slog.String("path", m.Path),
				slog.String("date", j.Date), slog.String("kept", prev.meta.Path))
			res.Skipped++
			continue
		}
		winners[j.Date] = candidate{meta: m, journal: j}
	}

	onDisk := make(map[string]struct{}, len(winners))
	for _, c := range winners {
		onDisk[c.meta.Path] = struct{}{}
	}
	for p := range sources {
		if _, ok := onDisk[p]; ok {
			continue
		}
		if _, err := v.store.DeleteJournalSource(ctx, p); err != nil {
			v.log.Warn("vault: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		v.log.Debug("vault: removed stale", slog.String("path", p))
		res.Removed++
	}

	for _, c := range winners {
		if sources[c.meta.Path] == c.meta.Checksum {
			continue
		}
		if err := v.store.UpsertJournalSource(ctx, c.journal); err != nil {
			v.log.Warn("vault: import failed", slog.String("path", c.meta.Path), slog.String("error", err.Error()))
			res.Skipped++
			continue
		}
		v.log.Debug("vault: imported", slog.String("path", c.meta.Path), slog.String("date", c.journal.Date))
		res.Imported++
	}

	if res.Changed() {
		// A moved file also clears its old date, so drop every journal read.
		v.notify.NotifyChanged(v.owner.ID, models.KindJournal)
	}
	observability.RecordVaultSync(v.now())
	return res, nil
}

// toJournal builds the entry a file describes.
func (v *Vault) toJournal(path string, data []byte) (models.Journal, error) {
	e := parser.Parse(path, data)
	if !v.cal.IsValid(e.Date) {
		return models.Journal{}, fmt.Errorf("%w: %q", ErrNoDate, e.Date)
	}
	access := models.AccessPrivate
	if e.Access == string(models.AccessPublic) {
		access = models.AccessPublic
	}
	return models.Journal{
		Date:           e.Date,
		Title:          e.Title,
		Content:        e.Body,
		Locked:         e.Locked,
		AccessType:     access,
		SourcePath:     path,
		SourceChecksum: checksum.Sum(data),
	}, nil
}
