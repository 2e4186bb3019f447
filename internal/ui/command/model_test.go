package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want CommandMsg
	}{
		{"theme", CommandMsg{Name: "theme"}},
		{"  Search  foo bar ", CommandMsg{Name: "search", Arg: "foo bar"}},
		{"clear", CommandMsg{Name: "clear"}},
		{"", CommandMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 24)
	for _, r := range "search foo" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	got, ok := cmd().(CommandMsg)
	if !ok || got.Name != "search" || got.Arg != "foo" {
		t.Errorf("got %#v", got)
	}
	if m.input.Value() != "" {
		t.Error("input should reset after enter")
	}
}

func TestEnterOnEmptyInputIsNoop(t *testing.T) {
	m := New(80, 24)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command")
	}
}
