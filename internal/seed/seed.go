// Package seed imports a board description from TOML.
//
//	[[lists]]
//	title = "To Do"
//
//	[[lists.cards]]
//	title = "Write docs"
//	due = "2024-01-12"
//	checklist = [{ text = "outline" }, { text = "draft", done = true }]
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/model"
)

// File is the top-level TOML document.
type File struct {
	Lists []List `toml:"lists"`
}

// List describes one board list and its cards.
type List struct {
	Title string `toml:"title"`
	Cards []Card `toml:"cards"`
}

// Card describes one card.
type Card struct {
	Title       string                `toml:"title"`
	Description string                `toml:"description"`
	Due         string                `toml:"due"`
	Done        bool                  `toml:"done"`
	Checklist   []model.ChecklistItem `toml:"checklist"`
}

// Writer is the subset of the store used by Import.
type Writer interface {
	CreateList(ctx context.Context, l *model.List) error
	CreateCard(ctx context.Context, c *model.Card) error
}

// Summary counts what Import created.
type Summary struct {
	Lists int `json:"lists"`
	Cards int `json:"cards"`
	Items int `json:"items"`
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (File, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return File{}, fmt.Errorf("decoding seed: %w", err)
	}
	if err := validateShape(doc); err != nil {
		return File{}, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decoding seed: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks titles, due dates and checklist texts, reporting every
// problem found.
func (f File) Validate() error {
	var errs []error
	for i, l := range f.Lists {
		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Errorf("lists[%d]: title is required", i))
		}
		for j, c := range l.Cards {
			where := fmt.Sprintf("lists[%d].cards[%d]", i, j)
			if strings.TrimSpace(c.Title) == "" {
				errs = append(errs, fmt.Errorf("%s: title is required", where))
			}
			if c.Due != "" {
				if _, err := duedate.Parse(c.Due); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", where, err))
				}
			}
			for k, it := range c.Checklist {
				if strings.TrimSpace(it.Text) == "" {
					errs = append(errs, fmt.Errorf("%s.checklist[%d]: text is required", where, k))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Import creates every list and card of f through w.
func Import(ctx context.Context, w Writer, f File) (Summary, error) {
	var sum Summary
	for _, ls := range f.Lists {
		l := model.List{Title: strings.TrimSpace(ls.Title)}
		if err := w.CreateList(ctx, &l); err != nil {
			return sum, fmt.Errorf("creating list %q: %w", ls.Title, err)
		}
		sum.Lists++

		for _, cs := range ls.Cards {
			items := make([]model.ChecklistItem, 0, len(cs.Checklist))
			for _, it := range cs.Checklist {
				items = append(items, model.ChecklistItem{Text: strings.TrimSpace(it.Text), Done: it.Done})
			}
			c := model.Card{
				ListID:      l.ID,
				Title:       strings.TrimSpace(cs.Title),
				Description: cs.Description,
				DueDate:     normalizeDue(cs.Due),
				Done:        cs.Done,
				Checklist:   items,
			}
			if err := w.CreateCard(ctx, &c); err != nil {
				return sum, fmt.Errorf("creating card %q: %w", cs.Title, err)
			}
			sum.Cards++
			sum.Items += len(items)
		}
	}
	return sum, nil
}

// normalizeDue stores every accepted layout as a plain date.
func normalizeDue(s string) string {
	if s == "" {
		return ""
	}
	t, err := duedate.Parse(s)
	if err != nil {
		return s
	}
	return t.Format(model.DueDateLayout)
}
