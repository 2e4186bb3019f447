package board

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskboard/internal/keys"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
)

func testBoard() *model.Board {
	return &model.Board{Lists: []model.List{
		{ID: "l1", Title: "To Do", Cards: []model.Card{
			{ID: "c1", ListID: "l1", Title: "Foobar task", DueDate: "2024-01-09"},
			{ID: "c2", ListID: "l1", Title: "Write docs"},
		}},
		{ID: "l2", Title: "Done", Cards: []model.Card{
			{ID: "c3", ListID: "l2", Title: "Kickoff", Done: true,
				Checklist: []model.ChecklistItem{{Text: "agenda", Done: true}}},
		}},
	}}
}

func newModel() Model {
	m := New(keys.DefaultKeyMap(), search.Filter{}, 120, 30)
	m.SetBoard(testBoard())
	m.SetClock(func() time.Time { return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.Local) })
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func TestSearchFiltersOnEveryKeystroke(t *testing.T) {
	m := newModel()
	m, _ = m.Update(runes("/"))
	if !m.Searching() {
		t.Fatal("expected search mode")
	}

	m = typeText(m, "f")
	if got := m.VisibleCount(); got != 2 {
		t.Errorf("after 'f': got %d visible, want 2", got)
	}
	m = typeText(m, "oo")
	if got := m.VisibleCount(); got != 1 {
		t.Errorf("after 'foo': got %d visible, want 1", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Searching() || m.Query() != "foo" {
		t.Errorf("enter should keep the query, got searching=%v query=%q", m.Searching(), m.Query())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Query() != "" || m.VisibleCount() != 3 {
		t.Errorf("esc should clear, got query=%q visible=%d", m.Query(), m.VisibleCount())
	}
}

func TestSearchMatchesChecklistText(t *testing.T) {
	m := newModel()
	m.SetQuery("AGENDA")
	if m.VisibleCount() != 1 {
		t.Errorf("got %d visible, want 1", m.VisibleCount())
	}
}

func TestNavigationAndOpen(t *testing.T) {
	m := newModel()

	m, _ = m.Update(runes("j"))
	card, ok := m.SelectedCard()
	if !ok || card.ID != "c2" {
		t.Fatalf("after j: got %+v", card)
	}

	m, _ = m.Update(runes("l"))
	card, ok = m.SelectedCard()
	if !ok || card.ID != "c3" {
		t.Fatalf("after l: got %+v (row should clamp)", card)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OpenChecklistMsg)
	if !ok || msg.ListID != "l2" || msg.CardID != "c3" {
		t.Errorf("got %#v", msg)
	}
}

func TestSelectionFollowsFilter(t *testing.T) {
	m := newModel()
	m.SetQuery("docs")

	card, ok := m.SelectedCard()
	if !ok || card.ID != "c2" {
		t.Errorf("got %+v, want c2", card)
	}
}

func TestViewShowsBadges(t *testing.T) {
	m := newModel()
	out := m.View()

	for _, want := range []string{"To Do", "Foobar task", "2024-01-09", "1d late", "1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyBoard(t *testing.T) {
	m := New(keys.DefaultKeyMap(), search.Filter{}, 80, 20)
	if _, ok := m.SelectedCard(); ok {
		t.Error("empty board has no selection")
	}
	if !strings.Contains(m.View(), "No lists yet") {
		t.Error("expected empty state")
	}
}
