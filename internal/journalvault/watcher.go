package journalvault

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/daybook/internal/storage"
)

// settle is how long the watcher waits after the last event before syncing.
const settle = 200 * time.Millisecond

// Watch follows the vault directory until ctx is cancelled, running a sync
// shortly after each burst of Markdown changes. Directories created at
// runtime are watched too.
func (v *Vault) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := v.files.Root()
	if err := addDirsRecursive(w, root); err != nil {
		return err
	}
	v.log.Info("vault: watching", slog.String("root", root))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(settle)
			fire = timer.C
			return
		}
		timer.Reset(settle)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			v.log.Info("vault: watcher stopped")
			return nil

		case <-fire:
			res, err := v.Sync(ctx)
			if err != nil {
				v.log.Warn("vault: sync failed", slog.String("error", err.Error()))
				continue
			}
			if res.Changed() {
				v.log.Info("vault: synced", slog.Int("imported", res.Imported), slog.Int("removed", res.Removed))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirsRecursive(w, ev.Name); err != nil {
						v.log.Warn("vault: watch new dir failed", slog.String("path", ev.Name), slog.String("error", err.Error()))
					}
					schedule()
					continue
				}
			}
			// A removed or renamed directory shows up under its own name.
			if storage.IsJournalFile(ev.Name) || ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			v.log.Error("vault: watcher error", slog.String("error", err.Error()))
		}
	}
}

// addDirsRecursive watches root and every non-hidden directory below it.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
