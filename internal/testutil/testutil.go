// Package testutil provides shared test helpers for stores and vaults.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/store"
)

// Now is the fixed clock used by TestDB.
var Now = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

// TestDB creates a temporary SQLite store that is cleaned up with t.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "daybook-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name(), store.WithClock(func() time.Time { return Now }))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory.
func TestVault(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return fs.Root(), fs
}

// As returns a context acting as username.
func As(username string) context.Context {
	return identity.WithPrincipal(context.Background(), identity.PrincipalFor(username))
}
