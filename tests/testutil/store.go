package testutil

import (
	"context"
	"sort"
	"testing"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedBoard creates one list per title on s, each with the given cards,
// and returns the loaded board.
func SeedBoard(t *testing.T, s *store.SQLiteStore, lists map[string][]model.Card) *model.Board {
	t.Helper()

	ctx := context.Background()
	titles := make([]string, 0, len(lists))
	for title := range lists {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		l := model.List{Title: title}
		if err := s.CreateList(ctx, &l); err != nil {
			t.Fatalf("creating list %q: %v", title, err)
		}
		for _, c := range lists[title] {
			c.ListID = l.ID
			if err := s.CreateCard(ctx, &c); err != nil {
				t.Fatalf("creating card %q: %v", c.Title, err)
			}
		}
	}

	b, err := s.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("loading board: %v", err)
	}
	return b
}
