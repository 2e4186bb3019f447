package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/store"
	"github.com/nhle/taskboard/tests/testutil"
)

func TestCreateListAssignsIDAndOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := model.List{Title: "To Do"}
	second := model.List{Title: "Doing"}
	if err := s.CreateList(ctx, &first); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if err := s.CreateList(ctx, &second); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated IDs")
	}
	if first.SortOrder != 1 || second.SortOrder != 2 {
		t.Errorf("sort orders: got %d, %d, want 1, 2", first.SortOrder, second.SortOrder)
	}

	lists, err := s.GetLists(ctx)
	if err != nil {
		t.Fatalf("GetLists: %v", err)
	}
	if len(lists) != 2 || lists[0].Title != "To Do" || lists[1].Title != "Doing" {
		t.Errorf("GetLists: got %+v", lists)
	}
}

func TestCreateListRejectsBlankTitle(t *testing.T) {
	s := testutil.NewTestStore(t)
	if err := s.CreateList(context.Background(), &model.List{Title: "  "}); err == nil {
		t.Error("expected error for blank title")
	}
}

func TestCardCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	l := model.List{Title: "To Do"}
	if err := s.CreateList(ctx, &l); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	c := model.Card{
		ListID:  l.ID,
		Title:   "Write docs",
		DueDate: "2024-01-12",
		Checklist: []model.ChecklistItem{
			{Text: "outline"},
			{Text: "draft", Done: true},
		},
	}
	if err := s.CreateCard(ctx, &c); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	got, err := s.GetCardByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCardByID: %v", err)
	}
	if got.Title != "Write docs" || got.DueDate != "2024-01-12" {
		t.Errorf("GetCardByID: got %+v", got)
	}
	if len(got.Checklist) != 2 || got.Checklist[0].Text != "outline" || !got.Checklist[1].Done {
		t.Errorf("checklist: got %+v", got.Checklist)
	}

	got.Done = true
	got.Title = "Write better docs"
	if err := s.UpdateCard(ctx, *got); err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}
	cards, err := s.GetCards(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetCards: %v", err)
	}
	if len(cards) != 1 || !cards[0].Done || cards[0].Title != "Write better docs" {
		t.Errorf("GetCards after update: got %+v", cards)
	}

	if err := s.DeleteCard(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if _, err := s.GetCardByID(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetCardByID after delete: got %v, want ErrNotFound", err)
	}
	items, err := s.GetChecklistItems(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetChecklistItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("checklist rows should cascade on card delete, got %d", len(items))
	}
}

func TestMissingRowsReportNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.DeleteList(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteList: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteCard(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteCard: got %v, want ErrNotFound", err)
	}
	if err := s.UpdateCard(ctx, model.Card{ID: "nope", Title: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateCard: got %v, want ErrNotFound", err)
	}
	if err := s.ReplaceChecklist(ctx, "nope", nil); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReplaceChecklist: got %v, want ErrNotFound", err)
	}
}

func TestReplaceChecklistKeepsOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	b := testutil.SeedBoard(t, s, map[string][]model.Card{
		"To Do": {{Title: "Release"}},
	})
	card := b.Lists[0].Cards[0]

	items := []model.ChecklistItem{
		{Text: "c"}, {Text: "a", Done: true}, {Text: "b"},
	}
	if err := s.ReplaceChecklist(ctx, card.ID, items); err != nil {
		t.Fatalf("ReplaceChecklist: %v", err)
	}
	for i, it := range items {
		if it.ID == "" {
			t.Errorf("item %d: ID not written back", i)
		}
	}

	got, err := s.GetChecklistItems(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetChecklistItems: %v", err)
	}
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("item %d: got %q, want %q", i, got[i].Text, want[i])
		}
		if got[i].ID != items[i].ID {
			t.Errorf("item %d: ID changed from %q to %q", i, items[i].ID, got[i].ID)
		}
	}
	if !got[1].Done {
		t.Error("done flag lost")
	}
}

func TestSaveBoardRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	b := testutil.SeedBoard(t, s, map[string][]model.Card{
		"A": {{Title: "one"}, {Title: "two"}},
		"B": {{Title: "three"}},
	})

	card := b.FindCard(b.Lists[0].ID, b.Lists[0].Cards[1].ID)
	card.Checklist = append(card.EnsureChecklist(),
		model.ChecklistItem{Text: "sub 1"},
		model.ChecklistItem{Text: "sub 2", Done: true},
	)
	card.Done = true
	b.Lists[1].Title = "B renamed"
	b.AddCard(b.Lists[1].ID, model.Card{Title: "four"})

	if err := s.SaveBoard(ctx, b); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}

	got, err := s.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if len(got.Lists) != 2 {
		t.Fatalf("lists: got %d, want 2", len(got.Lists))
	}
	if got.Lists[1].Title != "B renamed" {
		t.Errorf("list title: got %q", got.Lists[1].Title)
	}
	if n := len(got.Lists[1].Cards); n != 2 {
		t.Errorf("list B cards: got %d, want 2", n)
	}

	saved := got.FindCard(card.ListID, card.ID)
	if saved == nil {
		t.Fatal("saved card not found")
	}
	if !saved.Done {
		t.Error("card done flag not saved")
	}
	if len(saved.Checklist) != 2 || saved.Checklist[1].Text != "sub 2" || !saved.Checklist[1].Done {
		t.Errorf("checklist: got %+v", saved.Checklist)
	}

	// Removing items and saving again must drop their rows.
	saved.Checklist = saved.Checklist[:1]
	if err := s.SaveBoard(ctx, got); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	items, err := s.GetChecklistItems(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetChecklistItems: %v", err)
	}
	if len(items) != 1 || items[0].Text != "sub 1" {
		t.Errorf("after shrink: got %+v", items)
	}
}

func TestLoadBoardEmptyChecklistIsNonNil(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := testutil.SeedBoard(t, s, map[string][]model.Card{"A": {{Title: "one"}}})

	if b.Lists[0].Cards[0].Checklist == nil {
		t.Error("expected empty non-nil checklist")
	}
}

func TestPreferences(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	got, err := s.GetPreference(ctx, "theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if got != "" {
		t.Errorf("unset preference: got %q, want empty", got)
	}

	for _, v := range []string{"dark", "light"} {
		if err := s.SetPreference(ctx, "theme", v); err != nil {
			t.Fatalf("SetPreference(%q): %v", v, err)
		}
		got, err := s.GetPreference(ctx, "theme")
		if err != nil {
			t.Fatalf("GetPreference: %v", err)
		}
		if got != v {
			t.Errorf("GetPreference: got %q, want %q", got, v)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := t.TempDir() + "/board.db"

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.SetPreference(context.Background(), "theme", "dark"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer s.Close()

	got, err := s.GetPreference(context.Background(), "theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if got != "dark" {
		t.Errorf("got %q, want dark", got)
	}
}

func TestSaveBoardKeepsOtherWritersChanges(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	b := testutil.SeedBoard(t, s, map[string][]model.Card{
		"A": {{Title: "one"}, {Title: "two"}},
		"B": {{Title: "three"}},
	})
	one := b.Lists[0].Cards[0]
	two := b.Lists[0].Cards[1]
	listB := b.Lists[1]

	// Another process deletes a card and a list and edits a checklist.
	if err := s.DeleteCard(ctx, one.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if err := s.DeleteList(ctx, listB.ID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if err := s.ReplaceChecklist(ctx, two.ID, []model.ChecklistItem{{Text: "from cli"}}); err != nil {
		t.Fatalf("ReplaceChecklist: %v", err)
	}

	// The stale board edits the deleted card and renames the surviving one.
	b.Lists[0].Cards[0].Done = true
	b.Lists[0].Cards[1].Title = "two renamed"
	b.Lists[1].Title = "B renamed"
	if err := s.SaveBoard(ctx, b); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}

	got, err := s.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if len(got.Lists) != 1 {
		t.Fatalf("deleted list came back: got %d lists", len(got.Lists))
	}
	if _, err := s.GetCardByID(ctx, one.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleted card came back: err=%v", err)
	}
	saved := got.FindCard(two.ListID, two.ID)
	if saved == nil || saved.Title != "two renamed" {
		t.Fatalf("surviving card: got %+v", saved)
	}
	if len(saved.Checklist) != 1 || saved.Checklist[0].Text != "from cli" {
		t.Errorf("untouched checklist was overwritten: got %+v", saved.Checklist)
	}
}

func TestSaveBoardDeletesRemovedRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	b := testutil.SeedBoard(t, s, map[string][]model.Card{
		"A": {{Title: "one"}, {Title: "two"}},
		"B": {{Title: "three"}},
	})
	removed := b.Lists[0].Cards[0].ID

	// A card created elsewhere was never on this board and must survive.
	other := model.Card{ListID: b.Lists[0].ID, Title: "from cli"}
	if err := s.CreateCard(ctx, &other); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	b.Lists[0].Cards = b.Lists[0].Cards[1:]
	b.Lists = b.Lists[:1]
	if err := s.SaveBoard(ctx, b); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}

	got, err := s.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if len(got.Lists) != 1 {
		t.Errorf("lists: got %d, want 1", len(got.Lists))
	}
	if _, err := s.GetCardByID(ctx, removed); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("removed card still stored: err=%v", err)
	}
	if _, err := s.GetCardByID(ctx, other.ID); err != nil {
		t.Errorf("card from another writer was deleted: %v", err)
	}
}
