package store

import (
	"context"
	"errors"

	"github.com/nhle/taskboard/internal/model"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for the board: lists, cards,
// checklist items and key-value preferences.
type Store interface {
	// === List CRUD ===

	CreateList(ctx context.Context, list *model.List) error
	DeleteList(ctx context.Context, id string) error
	GetLists(ctx context.Context) ([]model.List, error)

	// === Card CRUD ===

	CreateCard(ctx context.Context, card *model.Card) error
	UpdateCard(ctx context.Context, card model.Card) error
	DeleteCard(ctx context.Context, id string) error
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	GetCards(ctx context.Context, listID string) ([]model.Card, error)

	// === Checklist ===

	GetChecklistItems(ctx context.Context, cardID string) ([]model.ChecklistItem, error)
	ReplaceChecklist(ctx context.Context, cardID string, items []model.ChecklistItem) error

	// === Board ===

	LoadBoard(ctx context.Context) (*model.Board, error)
	SaveBoard(ctx context.Context, board *model.Board) error

	// === Preferences ===

	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}
