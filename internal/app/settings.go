package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
	settingsview "github.com/nhle/taskboard/internal/ui/config"
)

func (m *Model) openSettings() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewSettings
	return m.settings.Start(settingsview.Settings{
		Theme:      m.toggler.Mode(),
		SearchMode: m.boardView.Filter().Mode,
	})
}

// applySettings switches theme and search mode, then writes both to the
// config file when one is configured.
func (m *Model) applySettings(s settingsview.Settings) {
	if s.Theme != m.toggler.Mode() {
		m.toggleTheme()
	}
	m.boardView.SetFilter(search.Filter{Mode: s.SearchMode})

	if m.config == nil {
		return
	}
	m.config.Display.Theme = string(s.Theme)
	m.config.Search.Mode = string(s.SearchMode)

	if m.configPath == "" {
		return
	}
	if err := model.SaveConfig(m.configPath, m.config); err != nil {
		m.logger.Warn("saving config", "path", m.configPath, "err", err)
		m.statusMsg = "could not save settings: " + err.Error()
		return
	}
	m.statusMsg = "settings saved"
}
