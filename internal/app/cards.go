package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskboard/internal/model"
	boardsync "github.com/nhle/taskboard/internal/sync"
)

// boardLoadedMsg carries the board read from the store.
type boardLoadedMsg struct {
	board *model.Board
	err   error
}

// loadBoard returns a command that reads the whole board from the store.
func (m Model) loadBoard() tea.Cmd {
	s := m.store
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		b, err := s.LoadBoard(context.Background())
		return boardLoadedMsg{board: b, err: err}
	}
}

// applySync swaps in a board reloaded by the poller. Loads that started
// before this process last saved are stale and dropped.
func (m *Model) applySync(msg boardsync.SyncResultMsg) {
	if msg.Error != nil {
		m.statusMsg = "sync failed: " + msg.Error.Error()
		return
	}
	if msg.Changed && msg.Board != nil && !msg.StartedAt.Before(m.ref.savedAt) {
		m.SetBoard(msg.Board)
		return
	}
	// Re-classify due badges against the current clock.
	m.boardView.Refresh()
}

// SetBoard shows b without going through the store.
func (m *Model) SetBoard(b *model.Board) {
	if b == nil {
		b = &model.Board{}
	}
	m.ref.board = b
	m.boardView.SetBoard(b)
	m.detail.Refresh()
}

// persist saves the board synchronously. The board is only mutated on the
// update loop, so saving there keeps writes ordered with edits.
func (m *Model) persist(action string) {
	if m.store == nil {
		return
	}
	m.ref.savedAt = time.Now()
	if err := m.store.SaveBoard(context.Background(), m.ref.board); err != nil {
		m.logger.Warn("saving board", "action", action, "err", err)
		m.statusMsg = "save failed: " + err.Error()
	}
}

func (m *Model) startCreateCard() tea.Cmd {
	l, ok := m.boardView.SelectedList()
	if !ok {
		m.statusMsg = "create a list first: taskboard list add <title>"
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewCardCreate
	return m.cardForm.StartCreate(l.ID)
}

func (m *Model) createCard(listID string, card model.Card) {
	card.EnsureChecklist()
	if !m.ref.board.AddCard(listID, card) {
		m.statusMsg = "list no longer exists"
		return
	}
	m.persist("create card")
	m.boardView.Refresh()
}

func (m *Model) updateCard(card model.Card) {
	existing := m.ref.board.FindCard(card.ListID, card.ID)
	if existing == nil {
		m.statusMsg = "card no longer exists"
		return
	}
	existing.Title = strings.TrimSpace(card.Title)
	existing.Description = card.Description
	existing.DueDate = card.DueDate
	existing.Done = card.Done
	m.persist("update card")
	m.boardView.Refresh()
}

func (m *Model) toggleCardDone(listID, cardID string) {
	card := m.ref.board.FindCard(listID, cardID)
	if card == nil {
		return
	}
	card.Done = !card.Done
	m.persist("toggle card")
	m.boardView.Refresh()
}

func (m *Model) toggleTheme() {
	m.toggler.Toggle(context.Background())
	m.detail.RefreshTheme()
}
