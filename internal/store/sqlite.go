package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/taskboard/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases and pragmas consistent.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadBoard reads every list with its cards and their checklists.
func (s *SQLiteStore) LoadBoard(ctx context.Context) (*model.Board, error) {
	lists, err := s.GetLists(ctx)
	if err != nil {
		return nil, err
	}

	for i := range lists {
		cards, err := s.GetCards(ctx, lists[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loading cards for list %s: %w", lists[i].ID, err)
		}
		for j := range cards {
			items, err := s.GetChecklistItems(ctx, cards[j].ID)
			if err != nil {
				return nil, fmt.Errorf("loading checklist for card %s: %w", cards[j].ID, err)
			}
			cards[j].Checklist = items
		}
		lists[i].Cards = cards
	}

	board := &model.Board{Lists: lists}
	board.MarkStored()
	return board, nil
}

// SaveBoard persists the whole board in one transaction. New lists and cards
// are inserted and known ones updated. Rows the board was loaded with but no
// longer holds are deleted, while rows another writer deleted in the meantime
// stay deleted. A card's checklist rows are only rewritten when the checklist
// changed since the board last synced with the store. Missing IDs are
// generated and written back into board.
func (s *SQLiteStore) SaveBoard(ctx context.Context, board *model.Board) error {
	if board == nil {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	for _, id := range board.RemovedCardIDs() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting card %s: %w", id, err)
		}
	}
	for _, id := range board.RemovedListIDs() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting list %s: %w", id, err)
		}
	}

	for i := range board.Lists {
		l := &board.Lists[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
		l.UpdatedAt = now
		if l.SortOrder == 0 {
			l.SortOrder = i + 1
		}

		ok, err := saveListTx(ctx, tx, l, board.StoredList(l.ID))
		if err != nil {
			return err
		}
		if !ok {
			// Deleted by another writer; its cards went with it.
			continue
		}

		for j := range l.Cards {
			c := &l.Cards[j]
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			c.ListID = l.ID
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			c.UpdatedAt = now
			if c.SortOrder == 0 {
				c.SortOrder = j + 1
			}

			fp, stored := board.StoredCard(c.ID)
			ok, err := saveCardTx(ctx, tx, c, stored)
			if err != nil {
				return err
			}
			if !ok || (stored && fp == model.ChecklistFingerprint(c.Checklist)) {
				continue
			}
			if err := replaceChecklistTx(ctx, tx, c.ID, c.Checklist, now); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing board: %w", err)
	}
	board.MarkStored()
	return nil
}

// saveListTx writes l inside tx. Stored lists are only updated; it reports
// false when such a list no longer exists.
func saveListTx(ctx context.Context, tx *sqlx.Tx, l *model.List, stored bool) (bool, error) {
	if stored {
		result, err := tx.ExecContext(ctx, `
			UPDATE lists SET title = ?, sort_order = ?, updated_at = ?
			WHERE id = ?`,
			l.Title, l.SortOrder, l.UpdatedAt, l.ID,
		)
		if err != nil {
			return false, fmt.Errorf("saving list %s: %w", l.ID, err)
		}
		rows, _ := result.RowsAffected()
		return rows > 0, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO lists (id, title, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at`,
		l.ID, l.Title, l.SortOrder, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return false, fmt.Errorf("saving list %s: %w", l.ID, err)
	}
	return true, nil
}

// saveCardTx writes c inside tx. Stored cards are only updated; it reports
// false when such a card no longer exists.
func saveCardTx(ctx context.Context, tx *sqlx.Tx, c *model.Card, stored bool) (bool, error) {
	if stored {
		result, err := tx.ExecContext(ctx, `
			UPDATE cards SET
				list_id = ?, title = ?, description = ?, due_date = ?,
				done = ?, sort_order = ?, updated_at = ?
			WHERE id = ?`,
			c.ListID, c.Title, c.Description, c.DueDate,
			boolToInt(c.Done), c.SortOrder, c.UpdatedAt, c.ID,
		)
		if err != nil {
			return false, fmt.Errorf("saving card %s: %w", c.ID, err)
		}
		rows, _ := result.RowsAffected()
		return rows > 0, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			list_id = excluded.list_id,
			title = excluded.title,
			description = excluded.description,
			due_date = excluded.due_date,
			done = excluded.done,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at`,
		c.ID, c.ListID, c.Title, c.Description, c.DueDate, boolToInt(c.Done),
		c.SortOrder, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return false, fmt.Errorf("saving card %s: %w", c.ID, err)
	}
	return true, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
