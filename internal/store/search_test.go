package store

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/daybook/internal/models"
)

func hitIDs(hits []JournalHit) []int64 {
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	slices.Sort(ids)
	return ids
}

func TestSearchJournals(t *testing.T) {
	db := testDB(t)
	ana, ben := as("ana"), as("ben")

	entry := func(date, title, content string, locked bool) models.Journal {
		return models.Journal{Date: date, Title: title, Content: content, Locked: locked, AccessType: models.AccessPrivate}
	}
	run, err := db.CreateJournal(ana, entry("2024-03-01", "Long run", "Ran along the river before work", false))
	if err != nil {
		t.Fatal(err)
	}
	locked, err := db.CreateJournal(ana, entry("2024-03-02", "Private", "The river was cold", true))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateJournal(ana, entry("2024-03-03", "Office", "Meetings all day", false)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateJournal(ben, entry("2024-03-01", "Ben", "river swim", false)); err != nil {
		t.Fatal(err)
	}

	hits, err := db.SearchJournals(ana, "river", 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{run, locked}, hitIDs(hits)); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}
	for _, h := range hits {
		if h.ID == locked && h.Snippet != "" {
			t.Errorf("locked entry leaked snippet %q", h.Snippet)
		}
		if h.ID == run && h.Snippet == "" {
			t.Error("unlocked entry should carry a snippet")
		}
	}

	both, err := db.SearchJournals(ana, "river work", 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{run}, hitIDs(both)); diff != "" {
		t.Errorf("all terms must match (-want +got):\n%s", diff)
	}

	empty, err := db.SearchJournals(ana, "   ", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("blank query = %v, %v", empty, err)
	}

	if _, err := db.SearchJournals(ana, `"river" OR (`, 0); err != nil {
		t.Fatalf("query syntax must not leak into the match: %v", err)
	}
}

func TestSearchFollowsEdits(t *testing.T) {
	db := testDB(t)
	ctx := as("ana")

	j := models.Journal{Date: "2024-03-05", Title: "Tuesday", Content: "quiet", AccessType: models.AccessPrivate}
	id, err := db.CreateJournal(ctx, j)
	if err != nil {
		t.Fatal(err)
	}
	j.Content = "thunderstorm"
	if err := db.UpdateJournal(ctx, id, j); err != nil {
		t.Fatal(err)
	}

	if hits, _ := db.SearchJournals(ctx, "quiet", 0); len(hits) != 0 {
		t.Errorf("stale content still matches: %v", hitIDs(hits))
	}
	hits, err := db.SearchJournals(ctx, "thunderstorm", 0)
	if err != nil || len(hits) != 1 || hits[0].Date != "2024-03-05" {
		t.Fatalf("updated content: %+v, %v", hits, err)
	}

	if err := db.DeleteJournal(ctx, id); err != nil {
		t.Fatal(err)
	}
	if hits, _ := db.SearchJournals(ctx, "thunderstorm", 0); len(hits) != 0 {
		t.Errorf("deleted entry still matches: %v", hitIDs(hits))
	}
}
