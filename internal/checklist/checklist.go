// Package checklist manages the subtask list attached to a card.
//
// A Manager resolves a card through its Board, mutates the card's checklist
// in place, hands persistence to the host save hook and returns a View that
// renderers consume. Operations are not synchronized; the caller serializes
// them.
package checklist

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nhle/taskboard/internal/model"
)

// Board resolves cards by list and card ID.
type Board interface {
	FindCard(listID, cardID string) *model.Card
}

// SaveFunc persists the host board. It takes no arguments: the host knows
// what to write.
type SaveFunc func() error

// ItemView is one rendered checklist row.
type ItemView struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// View is the data a renderer needs to draw a card's checklist.
type View struct {
	ListID  string     `json:"list_id"`
	CardID  string     `json:"card_id"`
	Found   bool       `json:"found"`
	Items   []ItemView `json:"items"`
	Done    int        `json:"done"`
	Total   int        `json:"total"`
	Percent int        `json:"percent"`
}

// Manager applies checklist operations to cards of a board.
type Manager struct {
	board  Board
	save   SaveFunc
	logger *log.Logger
}

// NewManager returns a Manager. board and save may be nil; operations then
// degrade to no-ops or in-memory changes respectively.
func NewManager(board Board, save SaveFunc, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{board: board, save: save, logger: logger}
}

// Progress counts done items and returns the rounded completion percentage.
func Progress(items []model.ChecklistItem) (done, total, percent int) {
	total = len(items)
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	percent = int(math.Round(float64(done) * 100 / float64(total)))
	return done, total, percent
}

// Render builds the View for a card without changing anything.
func (m *Manager) Render(listID, cardID string) View {
	v := View{ListID: listID, CardID: cardID, Items: []ItemView{}}
	card := m.card(listID, cardID)
	if card == nil {
		return v
	}

	v.Found = true
	for i, it := range card.EnsureChecklist() {
		v.Items = append(v.Items, ItemView{Index: i, ID: it.ID, Text: it.Text, Done: it.Done})
	}
	v.Done, v.Total, v.Percent = Progress(card.Checklist)
	return v
}

// Add appends a new unchecked item. Blank text is ignored.
func (m *Manager) Add(listID, cardID, text string) (View, bool) {
	text = strings.TrimSpace(text)
	card := m.card(listID, cardID)
	if card == nil || text == "" {
		return m.Render(listID, cardID), false
	}

	card.Checklist = append(card.EnsureChecklist(), model.ChecklistItem{
		ID:   uuid.New().String(),
		Text: text,
	})
	m.persist("add", cardID)
	return m.Render(listID, cardID), true
}

// Toggle flips the done flag of the item at index.
func (m *Manager) Toggle(listID, cardID string, index int) (View, bool) {
	card := m.card(listID, cardID)
	if card == nil || !inRange(card.Checklist, index) {
		return m.Render(listID, cardID), false
	}

	card.Checklist[index].Done = !card.Checklist[index].Done
	m.persist("toggle", cardID)
	return m.Render(listID, cardID), true
}

// DeleteOne removes the item at index.
func (m *Manager) DeleteOne(listID, cardID string, index int) (View, bool) {
	card := m.card(listID, cardID)
	if card == nil || !inRange(card.Checklist, index) {
		return m.Render(listID, cardID), false
	}

	card.Checklist = append(card.Checklist[:index], card.Checklist[index+1:]...)
	m.persist("delete", cardID)
	return m.Render(listID, cardID), true
}

// DeleteDone removes every completed item, keeping the rest in order.
func (m *Manager) DeleteDone(listID, cardID string) (View, bool) {
	card := m.card(listID, cardID)
	if card == nil {
		return m.Render(listID, cardID), false
	}

	kept := make([]model.ChecklistItem, 0, len(card.Checklist))
	for _, it := range card.Checklist {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	card.Checklist = kept
	m.persist("clear-done", cardID)
	return m.Render(listID, cardID), true
}

func (m *Manager) card(listID, cardID string) *model.Card {
	if m.board == nil {
		return nil
	}
	return m.board.FindCard(listID, cardID)
}

// persist runs the save hook. Failures leave the in-memory change in place.
func (m *Manager) persist(op, cardID string) {
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		m.logger.Warn("saving checklist", "op", op, "card", cardID, "err", err)
	}
}

func inRange(items []model.ChecklistItem, index int) bool {
	return index >= 0 && index < len(items)
}
