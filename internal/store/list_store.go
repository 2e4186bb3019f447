package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskboard/internal/model"
)

// CreateList inserts a new list. Generates a UUID if ID is empty and
// defaults sort_order to max+1. The generated fields are written back.
func (s *SQLiteStore) CreateList(ctx context.Context, list *model.List) error {
	if strings.TrimSpace(list.Title) == "" {
		return fmt.Errorf("list title must not be empty")
	}
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	if list.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM lists")
		if err != nil {
			return fmt.Errorf("getting max sort_order: %w", err)
		}
		list.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, title, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		list.ID, list.Title, list.SortOrder, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating list: %w", err)
	}
	return nil
}

// DeleteList removes a list by ID. Cascades to cards and checklist_items.
func (s *SQLiteStore) DeleteList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting list %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetLists retrieves all lists ordered by sort_order. Cards are not loaded.
func (s *SQLiteStore) GetLists(ctx context.Context) ([]model.List, error) {
	var lists []model.List
	err := s.db.SelectContext(ctx, &lists, `
		SELECT id, title, sort_order, created_at, updated_at
		FROM lists ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	return lists, nil
}
