package search

import (
	"testing"

	"github.com/nhle/taskboard/internal/model"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		query string
		text  string
		want  bool
	}{
		{"foo", "Foobar task", true},
		{"FOO", "foobar task", true},
		{"task", "Foobar task", true},
		{"baz", "Foobar task", false},
		{"", "anything", true},
		{"", "", true},
		{"x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.text, func(t *testing.T) {
			if got := Matches(tt.query, tt.text); got != tt.want {
				t.Errorf("Matches(%q, %q): got %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchesIsIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !Matches("bar", "Foobar") {
			t.Fatal("expected match")
		}
	}
}

func testLists() []model.List {
	return []model.List{
		{ID: "l1", Cards: []model.Card{
			{ID: "c1", Title: "Foobar task"},
			{ID: "c2", Title: "Write docs", Description: "README and guides"},
		}},
		{ID: "l2", Cards: []model.Card{
			{ID: "c3", Title: "Release", DueDate: "2024-01-12",
				Checklist: []model.ChecklistItem{{Text: "tag version"}}},
		}},
	}
}

func TestFilterSubstring(t *testing.T) {
	lists := testLists()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"c1", "c2", "c3"}},
		{"foo", []string{"c1"}},
		{"readme", []string{"c2"}},
		{"2024-01", []string{"c3"}},
		{"TAG", []string{"c3"}},
		{"nothing", nil},
		{" task", []string{"c1"}},
		{" foo", nil},
		{"task ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := Filter{}.Apply(tt.query, lists)
			if res.VisibleCount() != len(tt.want) {
				t.Fatalf("visible: got %v, want %v", res.Order, tt.want)
			}
			for _, id := range tt.want {
				if !res.Visible(id) {
					t.Errorf("%s should be visible", id)
				}
			}
			if got := len(res.Hidden(lists)); got != 3-len(tt.want) {
				t.Errorf("hidden: got %d, want %d", got, 3-len(tt.want))
			}
		})
	}
}

func TestFilterFuzzy(t *testing.T) {
	lists := testLists()
	f := Filter{Mode: ModeFuzzy}

	res := f.Apply("wdocs", lists)
	if !res.Visible("c2") {
		t.Errorf("fuzzy query should match c2, got %v", res.Order)
	}
	if res.Visible("c1") {
		t.Error("c1 should be hidden")
	}

	if got := f.Apply("", lists).VisibleCount(); got != 3 {
		t.Errorf("empty fuzzy query: got %d visible, want 3", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"fuzzy":     ModeFuzzy,
		" Fuzzy ":   ModeFuzzy,
		"substring": ModeSubstring,
		"":          ModeSubstring,
		"regex":     ModeSubstring,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q): got %q, want %q", in, got, want)
		}
	}
}
