package journalvault

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/store"
	"github.com/starford/daybook/internal/testutil"
)

type recorder struct {
	mu    sync.Mutex
	calls int
}

func (r *recorder) NotifyChanged(_ string, kind models.Kind, _ ...string) {
	if kind != models.KindJournal {
		return
	}
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type env struct {
	dir   string
	fs    *storage.FS
	db    *store.DB
	vault *Vault
	rec   *recorder
	ctx   context.Context
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir, fs := testutil.TestVault(t)
	db := testutil.TestDB(t)
	owner := identity.PrincipalFor("ana")
	rec := &recorder{}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &env{
		dir: dir, fs: fs, db: db, rec: rec,
		vault: New(fs, db, owner, WithNotifier(rec), WithLogger(quiet)),
		ctx:   identity.WithPrincipal(context.Background(), owner),
	}
}

func (e *env) write(t *testing.T, rel, content string) {
	t.Helper()
	if err := e.fs.Write(rel, []byte(content)); err != nil {
		t.Fatal(err)
	}
}

func (e *env) sync(t *testing.T) Result {
	t.Helper()
	res, err := e.vault.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	return res
}

func (e *env) journal(t *testing.T, date string) *models.Journal {
	t.Helper()
	j, err := e.db.JournalByDate(e.ctx, date)
	if err != nil {
		t.Fatal(err)
	}
	return j
}

func TestSyncImportsFrontmatterAndFileNameDates(t *testing.T) {
	e := newEnv(t)
	e.write(t, "march/notes.md", "---\ndate: 2024-03-05\ntitle: Tuesday\nlocked: true\naccess: public\n---\nWent running.\n")
	e.write(t, "2024-03-06.md", "# Wednesday\nRained.\n")
	e.write(t, "ideas.md", "no date anywhere")

	res := e.sync(t)
	if res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("Result = %+v", res)
	}
	if e.rec.count() != 1 {
		t.Errorf("notified %d times", e.rec.count())
	}

	j := e.journal(t, "2024-03-05")
	if j == nil || j.Title != "Tuesday" || !j.Locked || j.AccessType != models.AccessPublic || j.Content != "Went running.\n" {
		t.Fatalf("2024-03-05 = %+v", j)
	}
	if j.SourcePath != "march/notes.md" {
		t.Errorf("SourcePath = %q", j.SourcePath)
	}
	if j := e.journal(t, "2024-03-06"); j == nil || j.Title != "Wednesday" || j.AccessType != models.AccessPrivate {
		t.Errorf("2024-03-06 = %+v", j)
	}
}

func TestSyncSkipsUnchangedAndUpdatesChanged(t *testing.T) {
	e := newEnv(t)
	e.write(t, "2024-03-05.md", "first")
	e.sync(t)

	if res := e.sync(t); res.Changed() {
		t.Errorf("second pass changed something: %+v", res)
	}
	if e.rec.count() != 1 {
		t.Errorf("unchanged pass notified: %d", e.rec.count())
	}

	e.write(t, "2024-03-05.md", "second")
	if res := e.sync(t); res.Imported != 1 {
		t.Errorf("Result = %+v", res)
	}
	if j := e.journal(t, "2024-03-05"); j.Content != "second" {
		t.Errorf("Content = %q", j.Content)
	}
}

func TestSyncRemovesDeletedFiles(t *testing.T) {
	e := newEnv(t)
	e.write(t, "2024-03-05.md", "bye")
	e.sync(t)
	if err := os.Remove(filepath.Join(e.dir, "2024-03-05.md")); err != nil {
		t.Fatal(err)
	}
	if res := e.sync(t); res.Removed != 1 {
		t.Errorf("Result = %+v", res)
	}
	if j := e.journal(t, "2024-03-05"); j != nil {
		t.Errorf("entry survived: %+v", j)
	}
}

func TestSyncMovesEntryWhenDateChanges(t *testing.T) {
	e := newEnv(t)
	e.write(t, "entry.md", "---\ndate: 2024-03-05\n---\ntext")
	e.sync(t)
	e.write(t, "entry.md", "---\ndate: 2024-03-07\n---\ntext")
	e.sync(t)

	if j := e.journal(t, "2024-03-05"); j != nil {
		t.Errorf("old date still has %+v", j)
	}
	if j := e.journal(t, "2024-03-07"); j == nil {
		t.Error("new date missing")
	}
}

func TestSyncDuplicateDateKeepsFirstPath(t *testing.T) {
	e := newEnv(t)
	e.write(t, "a.md", "---\ndate: 2024-03-05\ntitle: A\n---\n")
	e.write(t, "b.md", "---\ndate: 2024-03-05\ntitle: B\n---\n")

	for range 2 {
		e.sync(t)
		if j := e.journal(t, "2024-03-05"); j == nil || j.Title != "A" {
			t.Fatalf("entry = %+v, want title A", j)
		}
	}
	if res := e.sync(t); res.Changed() {
		t.Errorf("duplicates keep flipping: %+v", res)
	}
}

func TestSyncReplacesManualEntryOnSameDate(t *testing.T) {
	e := newEnv(t)
	if _, err := e.db.CreateJournal(e.ctx, models.Journal{Date: "2024-03-05", Content: "typed", AccessType: models.AccessPrivate}); err != nil {
		t.Fatal(err)
	}
	e.write(t, "2024-03-05.md", "from vault")
	e.sync(t)
	if j := e.journal(t, "2024-03-05"); j.Content != "from vault" {
		t.Errorf("Content = %q", j.Content)
	}
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatchPicksUpNewAndRemovedFiles(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.vault.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.MkdirAll(filepath.Join(e.dir, "2024"), 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(e.dir, "2024", "2024-03-08.md"), []byte("# Friday"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		j, _ := e.db.JournalByDate(e.ctx, "2024-03-08")
		return j != nil && j.Title == "Friday"
	}, "new file not imported by watcher")

	if err := os.Remove(filepath.Join(e.dir, "2024", "2024-03-08.md")); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		j, _ := e.db.JournalByDate(e.ctx, "2024-03-08")
		return j == nil
	}, "removed file still imported")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not stop")
	}
}
