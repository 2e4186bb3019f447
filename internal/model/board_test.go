package model

import "testing"

func testBoard() *Board {
	return &Board{Lists: []List{
		{ID: "todo", Title: "To Do", Cards: []Card{
			{ID: "c1", ListID: "todo", Title: "Write docs"},
			{ID: "c2", ListID: "todo", Title: "Ship release"},
		}},
		{ID: "done", Title: "Done"},
	}}
}

func TestFindCard(t *testing.T) {
	b := testBoard()

	tests := []struct {
		name   string
		listID string
		cardID string
		want   string
	}{
		{"existing card", "todo", "c2", "Ship release"},
		{"unknown card", "todo", "nope", ""},
		{"unknown list", "nope", "c1", ""},
		{"card in other list", "done", "c1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.FindCard(tt.listID, tt.cardID)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("FindCard(%q, %q) = %+v, want nil", tt.listID, tt.cardID, got)
				}
				return
			}
			if got == nil || got.Title != tt.want {
				t.Fatalf("FindCard(%q, %q) = %+v, want title %q", tt.listID, tt.cardID, got, tt.want)
			}
		})
	}
}

func TestFindCardReturnsPointerIntoBoard(t *testing.T) {
	b := testBoard()
	c := b.FindCard("todo", "c1")
	c.Done = true

	if !b.Lists[0].Cards[0].Done {
		t.Error("mutation through FindCard pointer was not visible on the board")
	}
}

func TestNilBoard(t *testing.T) {
	var b *Board
	if b.FindCard("todo", "c1") != nil {
		t.Error("nil board should resolve no cards")
	}
	if b.Cards() != nil {
		t.Error("nil board should have no cards")
	}
}

func TestEnsureChecklist(t *testing.T) {
	c := Card{}
	items := c.EnsureChecklist()
	if items == nil || len(items) != 0 {
		t.Fatalf("EnsureChecklist() = %#v, want empty non-nil slice", items)
	}

	c.Checklist = append(c.Checklist, ChecklistItem{Text: "a"})
	if got := c.EnsureChecklist(); len(got) != 1 {
		t.Errorf("EnsureChecklist() replaced existing items: %#v", got)
	}
}

func TestAddCard(t *testing.T) {
	b := testBoard()

	if !b.AddCard("done", Card{ID: "c3", Title: "Retro"}) {
		t.Fatal("AddCard to existing list returned false")
	}
	got := b.FindCard("done", "c3")
	if got == nil {
		t.Fatal("added card not found")
	}
	if got.ListID != "done" {
		t.Errorf("ListID: got %q, want done", got.ListID)
	}
	if got.SortOrder != 1 {
		t.Errorf("SortOrder: got %d, want 1", got.SortOrder)
	}

	if b.AddCard("missing", Card{ID: "c4"}) {
		t.Error("AddCard to missing list returned true")
	}
	if n := len(b.Cards()); n != 3 {
		t.Errorf("Cards(): got %d, want 3", n)
	}
}
