package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/keys"
	"github.com/nhle/taskboard/internal/theme"
)

// BackMsg signals the parent to navigate back to the board.
type BackMsg struct{}

// ChangedMsg reports that the checklist of a card was mutated.
type ChangedMsg struct {
	CardID string
}

// Model is the card detail view: card metadata and its checklist.
type Model struct {
	board    checklist.Board
	manager  *checklist.Manager
	keys     *keys.KeyMap
	listID   string
	cardID   string
	view     checklist.View
	cursor   int
	adding   bool
	input    textinput.Model
	progress progress.Model
	now      func() time.Time
	width    int
	height   int
}

// New creates a detail view operating on cards of board through manager.
func New(board checklist.Board, manager *checklist.Manager, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new checklist item..."
	ti.Prompt = "+ "
	ti.Width = width - 8

	return Model{
		board:    board,
		manager:  manager,
		keys:     k,
		input:    ti,
		progress: newProgress(width),
		now:      time.Now,
		width:    width,
		height:   height,
	}
}

func newProgress(width int) progress.Model {
	from, to := theme.ProgressColors()
	p := progress.New(progress.WithGradient(from, to))
	p.Width = min(max(width-8, 10), 60)
	return p
}

// Open shows the checklist of the given card.
func (m *Model) Open(listID, cardID string) {
	m.listID = listID
	m.cardID = cardID
	m.cursor = 0
	m.adding = false
	m.input.Reset()
	m.input.Blur()
	m.view = m.manager.Render(listID, cardID)
}

// Refresh re-renders the open checklist from the board, keeping the cursor
// on the same item when it still exists.
func (m *Model) Refresh() {
	if m.cardID == "" {
		return
	}
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.view.Items) {
		selected = m.view.Items[m.cursor].ID
	}

	m.view = m.manager.Render(m.listID, m.cardID)
	for _, it := range m.view.Items {
		if selected != "" && it.ID == selected {
			m.cursor = it.Index
			return
		}
	}
	if m.cursor >= len(m.view.Items) {
		m.cursor = len(m.view.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetClock overrides the clock used for the due badge.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// RefreshTheme rebuilds the progress bar gradient for the active theme.
func (m *Model) RefreshTheme() {
	m.progress = newProgress(m.width)
}

// Editing reports whether the new-item input has focus.
func (m Model) Editing() bool {
	return m.adding
}

// CardID returns the card being shown.
func (m Model) CardID() string {
	return m.cardID
}

// Checklist returns the current checklist view model.
func (m Model) Checklist() checklist.View {
	return m.view
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.adding {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.adding {
		return m.handleInputKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		view, applied := m.manager.Add(m.listID, m.cardID, m.input.Value())
		m.view = view
		if !applied {
			m.adding = false
			m.input.Blur()
			return m, nil
		}
		m.input.Reset()
		m.cursor = len(view.Items) - 1
		return m, m.changed()
	case "esc":
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.AddItem):
		m.adding = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ToggleItem):
		return m.apply(m.manager.Toggle(m.listID, m.cardID, m.cursor))

	case key.Matches(msg, m.keys.DeleteItem):
		return m.apply(m.manager.DeleteOne(m.listID, m.cardID, m.cursor))

	case key.Matches(msg, m.keys.ClearDone):
		return m.apply(m.manager.DeleteDone(m.listID, m.cardID))
	}
	return m, nil
}

func (m Model) apply(view checklist.View, applied bool) (Model, tea.Cmd) {
	m.view = view
	if m.cursor >= len(view.Items) {
		m.cursor = len(view.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if !applied {
		return m, nil
	}
	return m, m.changed()
}

func (m Model) changed() tea.Cmd {
	id := m.cardID
	return func() tea.Msg { return ChangedMsg{CardID: id} }
}

// View renders the detail view.
func (m Model) View() string {
	if !m.view.Found {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Card not found")
	}

	var sections []string
	sections = append(sections, m.renderCardHeader()...)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(max(m.width-8, 1), 80)))
	sections = append(sections, "", separator, "")

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Checklist  %d/%d (%d%%)", m.view.Done, m.view.Total, m.view.Percent),
	))
	sections = append(sections, m.progress.ViewAs(float64(m.view.Percent)/100))
	sections = append(sections, "")

	if len(m.view.Items) == 0 {
		sections = append(sections, theme.DimmedStyle.Italic(true).Render("No items. Press a to add one."))
	}
	for _, it := range m.view.Items {
		sections = append(sections, m.renderItem(it))
	}

	if m.adding {
		sections = append(sections, "", m.input.View())
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderCardHeader() []string {
	card := m.board.FindCard(m.listID, m.cardID)
	if card == nil {
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	lines := []string{titleStyle.Render(card.Title)}

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	cat := duedate.Classify(card.DueDate, card.Done, m.now())
	due := card.DueDate
	if due == "" {
		due = "none"
	}
	lines = append(lines, fmt.Sprintf("%s %s %s",
		metaStyle.Render("Due:"),
		theme.DueBadgeStyle(cat).Render(due),
		theme.DimmedStyle.Render(strings.ToLower(cat.String())),
	))

	if card.Description != "" {
		lines = append(lines, "", card.Description)
	}
	return lines
}

func (m Model) renderItem(it checklist.ItemView) string {
	box := "[ ]"
	text := it.Text
	if it.Done {
		box = theme.DoneStyle(true).Render("[x]")
		text = theme.DoneItemStyle.Render(text)
	}
	line := box + " " + text

	if it.Index == m.cursor && !m.adding {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
	m.progress.Width = min(max(width-8, 10), 60)
}
