// Package config is the settings view: theme and search mode, edited with a
// huh form and written back to the YAML config by the app.
package config

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/theme"
)

// Settings are the user-editable preferences.
type Settings struct {
	Theme      theme.Mode
	SearchMode search.Mode
}

// SettingsSavedMsg is dispatched when the form is submitted.
type SettingsSavedMsg struct {
	Settings Settings
}

// ConfigDoneMsg signals the settings view should close without changes.
type ConfigDoneMsg struct{}

// formBindings keeps huh's value pointers valid across model copies.
type formBindings struct {
	theme      string
	searchMode string
}

// Model is the Bubble Tea model for the settings view.
type Model struct {
	form          *huh.Form
	fb            *formBindings
	width, height int
}

// New creates a new settings view model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start builds the form pre-filled with current.
func (m *Model) Start(current Settings) tea.Cmd {
	*m.fb = formBindings{
		theme:      string(theme.ParseMode(string(current.Theme))),
		searchMode: string(search.ParseMode(string(current.SearchMode))),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Settings returns the values currently selected in the form.
func (m Model) Settings() Settings {
	return Settings{
		Theme:      theme.ParseMode(m.fb.theme),
		SearchMode: search.ParseMode(m.fb.searchMode),
	}
}

// Update handles messages and reports completion or abort.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		s := m.Settings()
		m.form = nil
		return m, func() tea.Msg { return SettingsSavedMsg{Settings: s} }
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return ConfigDoneMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render("Settings") + "\n" + m.form.View())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption(theme.Icon(theme.Light)+" Light", string(theme.Light)),
					huh.NewOption(theme.Icon(theme.Dark)+" Dark", string(theme.Dark)),
				).
				Value(&m.fb.theme),
			huh.NewSelect[string]().
				Title("Search mode").
				Options(
					huh.NewOption("Substring - case-insensitive contains", string(search.ModeSubstring)),
					huh.NewOption("Fuzzy - ranked fuzzy match", string(search.ModeFuzzy)),
				).
				Value(&m.fb.searchMode),
		),
	).WithWidth(m.formWidth()).WithKeyMap(formKeyMap())
}

// formKeyMap lets esc abort the form.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	return km
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
