package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/keys"
	"github.com/nhle/taskboard/internal/theme"
)

// Commands lists the command palette entries shown under the key table.
var Commands = []struct{ Name, Help string }{
	{"search <query>", "filter cards"},
	{"clear", "clear the search filter"},
	{"theme", "toggle light/dark"},
	{"settings", "edit theme and search mode"},
	{"new", "add a card to the focused list"},
	{"quit", "exit"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render(fmt.Sprintf("Keyboard Shortcuts  %s", theme.Icon(theme.Current())))

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	var cmds []string
	for _, c := range Commands {
		cmds = append(cmds, fmt.Sprintf("%-16s %s", c.Name, theme.DimmedStyle.Render(c.Help)))
	}
	cmdTitle := titleStyle.MarginTop(1).Render("Commands (:)")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, helpText, cmdTitle, strings.Join(cmds, "\n"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
