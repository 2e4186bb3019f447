package board

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/keys"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/theme"
)

// OpenChecklistMsg is sent when the user opens a card's checklist.
type OpenChecklistMsg struct {
	ListID string
	CardID string
	Title  string
}

// Model is the board view: one column per list with a live search filter.
type Model struct {
	board       *model.Board
	keys        *keys.KeyMap
	filter      search.Filter
	result      search.Result
	col         int
	row         int
	searchMode  bool
	searchInput textinput.Model
	now         func() time.Time
	width       int
	height      int
}

// New creates a board view.
func New(k *keys.KeyMap, filter search.Filter, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search cards..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		keys:        k,
		filter:      filter,
		searchInput: si,
		now:         time.Now,
		width:       width,
		height:      height,
	}
	m.refilter()
	return m
}

// SetBoard replaces the displayed board and re-applies the current query.
func (m *Model) SetBoard(b *model.Board) {
	m.board = b
	m.refilter()
}

// SetClock overrides the clock used for due badges.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// Refresh re-applies the query after the board changed underneath.
func (m *Model) Refresh() {
	m.refilter()
}

// Query returns the active search query.
func (m Model) Query() string {
	return m.searchInput.Value()
}

// SetQuery applies query as if it had been typed.
func (m *Model) SetQuery(query string) {
	m.searchInput.SetValue(query)
	m.refilter()
}

// Filter returns the active search filter.
func (m Model) Filter() search.Filter {
	return m.filter
}

// SetFilter replaces the search filter and re-applies the query.
func (m *Model) SetFilter(f search.Filter) {
	m.filter = f
	m.refilter()
}

// ClearQuery removes the search filter.
func (m *Model) ClearQuery() {
	m.searchMode = false
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.refilter()
}

// Searching reports whether the search box has keyboard focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// VisibleCount is the number of cards the current query shows.
func (m Model) VisibleCount() int {
	return m.result.VisibleCount()
}

func (m *Model) refilter() {
	var lists []model.List
	if m.board != nil {
		lists = m.board.Lists
	}
	m.result = m.filter.Apply(m.searchInput.Value(), lists)
	m.clamp()
}

func (m Model) lists() []model.List {
	if m.board == nil {
		return nil
	}
	return m.board.Lists
}

// visibleCards returns the cards of column col that pass the filter.
func (m Model) visibleCards(col int) []model.Card {
	lists := m.lists()
	if col < 0 || col >= len(lists) {
		return nil
	}
	var cards []model.Card
	for _, c := range lists[col].Cards {
		if m.result.Visible(c.ID) {
			cards = append(cards, c)
		}
	}
	return cards
}

func (m *Model) clamp() {
	n := len(m.lists())
	if m.col >= n {
		m.col = n - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	cards := len(m.visibleCards(m.col))
	if m.row >= cards {
		m.row = cards - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// SelectedList returns the list holding the cursor.
func (m Model) SelectedList() (model.List, bool) {
	lists := m.lists()
	if m.col < 0 || m.col >= len(lists) {
		return model.List{}, false
	}
	return lists[m.col], true
}

// SelectedCard returns the card under the cursor.
func (m Model) SelectedCard() (model.Card, bool) {
	cards := m.visibleCards(m.col)
	if m.row < 0 || m.row >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.row], true
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searchMode {
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.searchMode {
		return m.handleSearchKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleSearchKeys filters on every keystroke; enter keeps the query,
// esc drops it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.ClearQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refilter()
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.visibleCards(m.col))-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clamp()
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.lists())-1 {
			m.col++
			m.clamp()
		}
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Back):
		if m.searchInput.Value() != "" {
			m.ClearQuery()
		}
	case key.Matches(msg, m.keys.Select):
		card, ok := m.SelectedCard()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return OpenChecklistMsg{ListID: card.ListID, CardID: card.ID, Title: card.Title}
		}
	}
	return m, nil
}

// View renders the board.
func (m Model) View() string {
	lists := m.lists()

	var top string
	if m.searchMode || m.searchInput.Value() != "" {
		top = theme.SearchStyle.Render(m.searchInput.View())
	}

	if len(lists) == 0 {
		return m.renderEmptyState(top, "No lists yet.\n\nRun `taskboard list add <title>` or `taskboard seed <file>`.")
	}
	if m.result.VisibleCount() == 0 && m.searchInput.Value() != "" {
		return m.renderEmptyState(top, "No matching cards.\nPress esc to clear the search.")
	}

	colWidth := m.columnWidth(len(lists))
	columns := make([]string, 0, len(lists))
	for i, l := range lists {
		columns = append(columns, m.renderColumn(i, l, colWidth))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if top == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

func (m Model) renderEmptyState(top, text string) string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-lipgloss.Height(top)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if top == "" {
		return style.Render(text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, style.Render(text))
}

func (m Model) columnWidth(n int) int {
	if n == 0 {
		return m.width
	}
	w := m.width/n - 2
	if w < 24 {
		w = 24
	}
	return w
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
