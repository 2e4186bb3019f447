package model

import (
	"strconv"
	"strings"
	"time"
)

// DueDateLayout is the canonical storage format for card due dates.
const DueDateLayout = "2006-01-02"

// ChecklistItem is a subtask attached to a card.
// Operations address items by their position in Card.Checklist; ID only
// keeps persisted rows stable across reorders.
type ChecklistItem struct {
	ID   string `json:"id" db:"id" toml:"-"`
	Text string `json:"text" db:"text" toml:"text"`
	Done bool   `json:"done" db:"done" toml:"done"`
}

// Card is a unit of work positioned within a list.
type Card struct {
	ID          string    `json:"id" db:"id"`
	ListID      string    `json:"list_id" db:"list_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     string    `json:"due_date,omitempty" db:"due_date"`
	Done        bool      `json:"done" db:"done"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Checklist is populated by board loads, not by the cards table.
	Checklist []ChecklistItem `json:"checklist,omitempty" db:"-"`
}

// EnsureChecklist lazily creates an empty checklist and returns it.
func (c *Card) EnsureChecklist() []ChecklistItem {
	if c.Checklist == nil {
		c.Checklist = []ChecklistItem{}
	}
	return c.Checklist
}

// List is an ordered collection of cards.
type List struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Cards []Card `json:"cards" db:"-"`
}

// Board is the in-memory host store: every list with its cards.
type Board struct {
	Lists []List `json:"lists"`

	// Rows the store last read or wrote for this board. Cards map to the
	// checklist fingerprint at that time.
	storedLists map[string]struct{}
	storedCards map[string]string
}

// MarkStored records every list and card currently on the board as matching
// the store.
func (b *Board) MarkStored() {
	b.storedLists = make(map[string]struct{}, len(b.Lists))
	b.storedCards = make(map[string]string)
	for _, l := range b.Lists {
		b.storedLists[l.ID] = struct{}{}
		for _, c := range l.Cards {
			b.storedCards[c.ID] = ChecklistFingerprint(c.Checklist)
		}
	}
}

// StoredList reports whether the list was read from or written to the store.
func (b *Board) StoredList(id string) bool {
	_, ok := b.storedLists[id]
	return ok
}

// StoredCard reports whether the card was read from or written to the store,
// along with its checklist fingerprint at that time.
func (b *Board) StoredCard(id string) (string, bool) {
	fp, ok := b.storedCards[id]
	return fp, ok
}

// RemovedListIDs returns the IDs of stored lists no longer on the board.
func (b *Board) RemovedListIDs() []string {
	var ids []string
	for id := range b.storedLists {
		if b.FindList(id) == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// RemovedCardIDs returns the IDs of stored cards no longer on the board.
func (b *Board) RemovedCardIDs() []string {
	present := make(map[string]struct{})
	for _, l := range b.Lists {
		for _, c := range l.Cards {
			present[c.ID] = struct{}{}
		}
	}
	var ids []string
	for id := range b.storedCards {
		if _, ok := present[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ChecklistFingerprint identifies a checklist's content and order.
func ChecklistFingerprint(items []ChecklistItem) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.ID)
		sb.WriteByte(0)
		sb.WriteString(it.Text)
		sb.WriteByte(0)
		sb.WriteString(strconv.FormatBool(it.Done))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FindList returns the list with the given ID, or nil.
func (b *Board) FindList(listID string) *List {
	if b == nil {
		return nil
	}
	for i := range b.Lists {
		if b.Lists[i].ID == listID {
			return &b.Lists[i]
		}
	}
	return nil
}

// FindCard returns a pointer into the board for the given card, or nil when
// either the list or the card is unknown.
func (b *Board) FindCard(listID, cardID string) *Card {
	l := b.FindList(listID)
	if l == nil {
		return nil
	}
	for i := range l.Cards {
		if l.Cards[i].ID == cardID {
			return &l.Cards[i]
		}
	}
	return nil
}

// AddCard appends card to the list identified by listID.
// Returns false when the list does not exist.
func (b *Board) AddCard(listID string, card Card) bool {
	l := b.FindList(listID)
	if l == nil {
		return false
	}
	card.ListID = listID
	if card.SortOrder == 0 {
		card.SortOrder = len(l.Cards) + 1
	}
	l.Cards = append(l.Cards, card)
	return true
}

// Cards returns every card on the board in list order.
func (b *Board) Cards() []Card {
	if b == nil {
		return nil
	}
	var cards []Card
	for _, l := range b.Lists {
		cards = append(cards, l.Cards...)
	}
	return cards
}
