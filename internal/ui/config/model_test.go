package config

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/theme"
)

func TestStartPrefillsCurrentSettings(t *testing.T) {
	tests := []struct {
		name    string
		current Settings
		want    Settings
	}{
		{
			name:    "dark fuzzy",
			current: Settings{Theme: theme.Dark, SearchMode: search.ModeFuzzy},
			want:    Settings{Theme: theme.Dark, SearchMode: search.ModeFuzzy},
		},
		{
			name:    "unknown values fall back",
			current: Settings{Theme: "sepia", SearchMode: "regex"},
			want:    Settings{Theme: theme.Light, SearchMode: search.ModeSubstring},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(80, 24)
			m.Start(tt.current)
			if got := m.Settings(); got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}
			if m.View() == "" {
				t.Error("View() is empty after Start")
			}
		})
	}
}

func TestUpdateWithoutFormIsNoop(t *testing.T) {
	m := New(80, 24)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command before Start")
	}
	if m.View() != "" {
		t.Error("expected empty view before Start")
	}
}
