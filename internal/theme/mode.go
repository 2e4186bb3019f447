package theme

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the board colour scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// PreferenceKey is the key the selected mode is stored under.
const PreferenceKey = "theme"

// ParseMode returns Dark only for "dark"; any other value is Light.
func ParseMode(s string) Mode {
	if strings.ToLower(strings.TrimSpace(s)) == string(Dark) {
		return Dark
	}
	return Light
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

var (
	mu      sync.RWMutex
	current = Light
)

// Apply makes mode the active scheme for every adaptive style.
func Apply(mode Mode) {
	mode = ParseMode(string(mode))

	mu.Lock()
	current = mode
	mu.Unlock()

	lipgloss.SetHasDarkBackground(mode == Dark)
}

// Current returns the active mode.
func Current() Mode {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IsDark reports whether the dark scheme is active.
func IsDark() bool {
	return Current() == Dark
}

// Icon is the header glyph for mode. It shows the scheme a toggle switches
// to: a sun while dark, a moon while light.
func Icon(mode Mode) string {
	if mode == Dark {
		return "☀"
	}
	return "☾"
}
