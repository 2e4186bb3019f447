package theme

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Preferences is the local key-value storage the toggle persists to.
type Preferences interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Toggler owns the dark flag and keeps it in sync with stored preferences.
type Toggler struct {
	mu     sync.Mutex
	prefs  Preferences
	logger *log.Logger
	mode   Mode
}

// NewToggler returns a Toggler starting in the initial mode. prefs may be
// nil, in which case changes are not persisted.
func NewToggler(prefs Preferences, initial Mode, logger *log.Logger) *Toggler {
	if logger == nil {
		logger = log.Default()
	}
	return &Toggler{prefs: prefs, logger: logger, mode: ParseMode(string(initial))}
}

// Load reads the stored preference and applies it. Without a stored value
// the initial mode is applied.
func (t *Toggler) Load(ctx context.Context) Mode {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.prefs != nil {
		stored, err := t.prefs.GetPreference(ctx, PreferenceKey)
		switch {
		case err != nil:
			t.logger.Warn("reading theme preference", "err", err)
		case stored != "":
			t.mode = ParseMode(stored)
		}
	}

	Apply(t.mode)
	return t.mode
}

// Toggle flips the mode, applies it and stores the new value.
func (t *Toggler) Toggle(ctx context.Context) Mode {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = t.mode.Opposite()
	Apply(t.mode)

	if t.prefs != nil {
		if err := t.prefs.SetPreference(ctx, PreferenceKey, string(t.mode)); err != nil {
			t.logger.Warn("saving theme preference", "mode", t.mode, "err", err)
		}
	}
	return t.mode
}

// Mode returns the toggler's current mode.
func (t *Toggler) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// IsDark reports whether the toggler is in dark mode.
func (t *Toggler) IsDark() bool {
	return t.Mode() == Dark
}
