package cardform

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/theme"
)

// CardCreatedMsg is dispatched when a new card is submitted.
type CardCreatedMsg struct {
	ListID string
	Card   model.Card
}

// CardUpdatedMsg is dispatched when an existing card is edited.
type CardUpdatedMsg struct {
	Card model.Card
}

// CardFormCancelMsg is dispatched when the user cancels the form.
type CardFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	dueDate     string
	done        bool
}

// Model is the Bubble Tea model for the card create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	listID   string
	editCard model.Card
	width    int
	height   int
}

// New creates a new card form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new card in listID.
func (m *Model) StartCreate(listID string) tea.Cmd {
	m.editMode = false
	m.listID = listID
	m.editCard = model.Card{}
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing card.
func (m *Model) StartEdit(card model.Card) tea.Cmd {
	m.editMode = true
	m.listID = card.ListID
	m.editCard = card
	*m.fb = formBindings{
		title:       card.Title,
		description: card.Description,
		dueDate:     card.DueDate,
		done:        card.Done,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the card form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CardFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the card form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Card"
	if m.editMode {
		titleText = "Edit Card"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(ValidateDueDate),
	}
	if m.editMode {
		fields = append(fields,
			huh.NewConfirm().
				Title("Done").
				Affirmative("Done").
				Negative("Open").
				Value(&m.fb.done),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight()).WithKeyMap(formKeyMap())
}

// formKeyMap lets esc abort the form.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	return km
}

func (m Model) handleSubmit() tea.Cmd {
	card := m.editCard
	card.Title = strings.TrimSpace(m.fb.title)
	card.Description = m.fb.description
	card.DueDate = strings.TrimSpace(m.fb.dueDate)
	card.Done = m.fb.done

	if m.editMode {
		return func() tea.Msg { return CardUpdatedMsg{Card: card} }
	}
	listID := m.listID
	return func() tea.Msg { return CardCreatedMsg{ListID: listID, Card: card} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// ValidateDueDate accepts an empty value or a YYYY-MM-DD date.
func ValidateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DueDateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
