package board

import (
	"fmt"
	"strings"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/theme"
)

func (m Model) renderColumn(idx int, l model.List, width int) string {
	cards := m.visibleCards(idx)
	active := idx == m.col

	title := fmt.Sprintf("%s (%d)", l.Title, len(cards))
	if hidden := len(l.Cards) - len(cards); hidden > 0 {
		title += theme.DimmedStyle.Render(fmt.Sprintf(" +%d hidden", hidden))
	}

	lines := []string{theme.ColumnTitleStyle.Render(title)}
	for i, c := range cards {
		lines = append(lines, m.renderCard(c, active && i == m.row, width-2))
	}
	if len(cards) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("no cards"))
	}

	style := theme.ColumnStyle
	if active {
		style = theme.ActiveColumnStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderCard draws a card as a title line plus a badge line.
func (m Model) renderCard(c model.Card, selected bool, width int) string {
	marker := theme.DoneStyle(c.Done).Render("○")
	if c.Done {
		marker = theme.DoneStyle(c.Done).Render("✓")
	}

	title := c.Title
	if c.Done {
		title = theme.DoneItemStyle.Render(title)
	}
	head := marker + " " + title

	var badges []string
	if badge := m.dueBadge(c); badge != "" {
		badges = append(badges, badge)
	}
	if progress := progressBadge(c.Checklist); progress != "" {
		badges = append(badges, progress)
	}

	content := head
	if len(badges) > 0 {
		content += "\n" + strings.Join(badges, " ")
	}

	style := theme.CardStyle
	if selected {
		style = theme.SelectedCardStyle
	}
	return style.Width(width).Render(content)
}

// dueBadge renders the due date coloured by urgency, or "" when unset.
func (m Model) dueBadge(c model.Card) string {
	if c.DueDate == "" {
		return ""
	}
	cat := duedate.Classify(c.DueDate, c.Done, m.now())

	label := c.DueDate
	if days, ok := duedate.DaysUntil(c.DueDate, m.now()); ok && !c.Done {
		switch {
		case days == 0:
			label += " today"
		case days < 0:
			label += fmt.Sprintf(" %dd late", -days)
		}
	}
	return theme.DueBadgeStyle(cat).Render(label)
}

// progressBadge renders "done/total" for cards with a checklist.
func progressBadge(items []model.ChecklistItem) string {
	done, total, _ := checklist.Progress(items)
	if total == 0 {
		return ""
	}
	style := theme.DimmedStyle
	if done == total {
		style = theme.DoneStyle(true)
	}
	return style.Render(fmt.Sprintf("☑ %d/%d", done, total))
}
