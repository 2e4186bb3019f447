// Package search filters board cards by a free-text query.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nhle/taskboard/internal/model"
)

// Mode selects the matching strategy.
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModeFuzzy     Mode = "fuzzy"
)

// ParseMode maps a config value to a Mode, defaulting to substring.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeFuzzy {
		return ModeFuzzy
	}
	return ModeSubstring
}

// Matches reports whether text contains query, ignoring case.
// An empty query matches everything.
func Matches(query, text string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// CardText is the searchable text of a card.
func CardText(c model.Card) string {
	parts := []string{c.Title}
	if c.Description != "" {
		parts = append(parts, c.Description)
	}
	if c.DueDate != "" {
		parts = append(parts, c.DueDate)
	}
	for _, it := range c.Checklist {
		parts = append(parts, it.Text)
	}
	return strings.Join(parts, " ")
}

// Result records which cards a query left visible.
type Result struct {
	Query   string
	visible map[string]bool
	// Order lists visible card IDs; fuzzy mode sorts them by score.
	Order []string
}

// Visible reports whether the card should be shown.
func (r Result) Visible(cardID string) bool {
	return r.visible[cardID]
}

// VisibleCount is the number of cards left visible.
func (r Result) VisibleCount() int {
	return len(r.Order)
}

// Hidden returns the IDs of cards the query hid, in board order.
func (r Result) Hidden(lists []model.List) []string {
	var hidden []string
	for _, l := range lists {
		for _, c := range l.Cards {
			if !r.visible[c.ID] {
				hidden = append(hidden, c.ID)
			}
		}
	}
	return hidden
}

// Filter applies queries to a board.
type Filter struct {
	Mode Mode
}

// Apply evaluates query against every card in lists.
func (f Filter) Apply(query string, lists []model.List) Result {
	res := Result{Query: query, visible: make(map[string]bool)}

	var ids, corpus []string
	for _, l := range lists {
		for _, c := range l.Cards {
			ids = append(ids, c.ID)
			corpus = append(corpus, CardText(c))
		}
	}

	if f.Mode == ModeFuzzy && query != "" {
		for _, m := range fuzzy.Find(query, corpus) {
			res.visible[ids[m.Index]] = true
			res.Order = append(res.Order, ids[m.Index])
		}
		return res
	}

	for i, text := range corpus {
		if Matches(query, text) {
			res.visible[ids[i]] = true
			res.Order = append(res.Order, ids[i])
		}
	}
	return res
}
