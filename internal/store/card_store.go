package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/taskboard/internal/model"
)

const cardColumns = `id, list_id, title, description, due_date, done,
	sort_order, created_at, updated_at`

// CreateCard inserts a new card. Generates a UUID if ID is empty and
// defaults sort_order to max+1 within the list. Checklist items on the card
// are inserted as well.
func (s *SQLiteStore) CreateCard(ctx context.Context, card *model.Card) error {
	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("card title must not be empty")
	}
	if card.ListID == "" {
		return fmt.Errorf("card list_id must not be empty")
	}
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	if card.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM cards WHERE list_id = ?",
			card.ListID)
		if err != nil {
			return fmt.Errorf("getting max card sort_order: %w", err)
		}
		card.SortOrder = maxOrder + 1
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.ListID, card.Title, card.Description, card.DueDate,
		boolToInt(card.Done), card.SortOrder, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating card: %w", err)
	}

	if len(card.Checklist) > 0 {
		if err := replaceChecklistTx(ctx, tx, card.ID, card.Checklist, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateCard updates an existing card's fields by ID. The checklist is
// persisted separately through ReplaceChecklist or SaveBoard.
func (s *SQLiteStore) UpdateCard(ctx context.Context, card model.Card) error {
	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("card title must not be empty")
	}
	card.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards SET
			list_id = ?, title = ?, description = ?, due_date = ?,
			done = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		card.ListID, card.Title, card.Description, card.DueDate,
		boolToInt(card.Done), card.SortOrder, card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card %s: %w", card.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("card %s: %w", card.ID, ErrNotFound)
	}
	return nil
}

// DeleteCard removes a card by ID. Cascades to checklist_items.
func (s *SQLiteStore) DeleteCard(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting card %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetCardByID retrieves a single card by ID, including its checklist.
func (s *SQLiteStore) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	var card model.Card
	err := s.db.GetContext(ctx, &card,
		"SELECT "+cardColumns+" FROM cards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting card %s: %w", id, err)
	}

	items, err := s.GetChecklistItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading checklist for card %s: %w", id, err)
	}
	card.Checklist = items

	return &card, nil
}

// GetCards retrieves the cards of a list ordered by sort_order.
// Checklists are not loaded.
func (s *SQLiteStore) GetCards(ctx context.Context, listID string) ([]model.Card, error) {
	var cards []model.Card
	err := s.db.SelectContext(ctx, &cards,
		"SELECT "+cardColumns+" FROM cards WHERE list_id = ? ORDER BY sort_order, created_at",
		listID)
	if err != nil {
		return nil, fmt.Errorf("querying cards for list %s: %w", listID, err)
	}
	return cards, nil
}

// GetChecklistItems returns the checklist items of a card, ordered by
// sort_order. A card without items yields an empty, non-nil slice.
func (s *SQLiteStore) GetChecklistItems(
	ctx context.Context,
	cardID string,
) ([]model.ChecklistItem, error) {
	items := []model.ChecklistItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, text, done FROM checklist_items
		WHERE card_id = ? ORDER BY sort_order`,
		cardID)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	return items, nil
}

// ReplaceChecklist overwrites a card's checklist with items, preserving
// their order. Missing item IDs are generated and written back into items.
func (s *SQLiteStore) ReplaceChecklist(
	ctx context.Context,
	cardID string,
	items []model.ChecklistItem,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.GetContext(ctx, &exists,
		"SELECT COUNT(*) FROM cards WHERE id = ?", cardID); err != nil {
		return fmt.Errorf("checking card %s: %w", cardID, err)
	}
	if exists == 0 {
		return fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}

	if err := replaceChecklistTx(ctx, tx, cardID, items, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// replaceChecklistTx deletes and re-inserts a card's checklist rows inside tx.
func replaceChecklistTx(
	ctx context.Context,
	tx *sqlx.Tx,
	cardID string,
	items []model.ChecklistItem,
	now time.Time,
) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM checklist_items WHERE card_id = ?", cardID); err != nil {
		return fmt.Errorf("clearing checklist for card %s: %w", cardID, err)
	}

	if len(items) == 0 {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO checklist_items (id, card_id, text, done, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing checklist insert: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		if strings.TrimSpace(items[i].Text) == "" {
			return fmt.Errorf("checklist item text must not be empty")
		}
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx,
			items[i].ID, cardID, items[i].Text, boolToInt(items[i].Done), i+1, now,
		); err != nil {
			return fmt.Errorf("inserting checklist item %s: %w", items[i].ID, err)
		}
	}
	return nil
}
