package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskboard/internal/duedate"
)

// Adaptive color pairs (dark terminal value, light terminal value).
// They resolve at render time, so Apply flips every style built from them.
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Board surface palette.
var (
	ColorBackground = lipgloss.AdaptiveColor{Dark: "#020617", Light: "#F8FAFC"}
	ColorCard       = lipgloss.AdaptiveColor{Dark: "#1E293B", Light: "#FFFFFF"}
	ColorCardBorder = lipgloss.AdaptiveColor{Dark: "#334155", Light: "#E2E8F0"}
	ColorText       = lipgloss.AdaptiveColor{Dark: "#E2E8F0", Light: "#0F172A"}
	ColorMuted      = lipgloss.AdaptiveColor{Dark: "#94A3B8", Light: "#64748B"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the checklist and form panels.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DimmedStyle renders secondary text such as descriptions and counters.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

// DoneItemStyle renders completed cards and checklist items.
var DoneItemStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Strikethrough(true)

// ColumnStyle frames one board list.
var ColumnStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorCardBorder)

// ActiveColumnStyle frames the list holding the cursor.
var ActiveColumnStyle = ColumnStyle.
	BorderForeground(ColorBlue)

// ColumnTitleStyle is the heading of a board list.
var ColumnTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorText).
	MarginBottom(1)

// CardStyle renders a card inside a column.
var CardStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorCard).
	Padding(0, 1)

// SelectedCardStyle renders the focused card.
var SelectedCardStyle = CardStyle.
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue).
	PaddingLeft(0)

// SearchStyle frames the search box in the header.
var SearchStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Padding(0, 1)

// DoneStyle colours a card's completion marker.
func DoneStyle(done bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if done {
		return base.Foreground(ColorGreen)
	}
	return base.Foreground(ColorGray)
}

// DueBadgeStyle returns the badge style for a due-date category.
func DueBadgeStyle(cat duedate.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch cat {
	case duedate.Completed:
		return base.Foreground(ColorGreen)
	case duedate.Overdue:
		return base.Foreground(ColorRed).Bold(true).Blink(true)
	case duedate.DueSoon:
		return base.Foreground(ColorOrange).Bold(true)
	case duedate.Future:
		return base.Foreground(ColorMuted)
	default:
		return base.Foreground(ColorGray)
	}
}

// ProgressColors returns the gradient endpoints for checklist progress bars.
func ProgressColors() (string, string) {
	if IsDark() {
		return ColorBlue.Dark, ColorGreen.Dark
	}
	return ColorBlue.Light, ColorGreen.Light
}
