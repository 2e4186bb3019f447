package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/keys"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/store"
	boardsync "github.com/nhle/taskboard/internal/sync"
	"github.com/nhle/taskboard/internal/theme"
	"github.com/nhle/taskboard/internal/ui"
	boardview "github.com/nhle/taskboard/internal/ui/board"
	"github.com/nhle/taskboard/internal/ui/cardform"
	"github.com/nhle/taskboard/internal/ui/command"
	settingsview "github.com/nhle/taskboard/internal/ui/config"
	"github.com/nhle/taskboard/internal/ui/detail"
	helpview "github.com/nhle/taskboard/internal/ui/help"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewCardCreate
	ViewCardEdit
	ViewSettings
)

// boardRef is the heap-allocated handle to the loaded board. The checklist
// manager and the save hook resolve through it, so replacing the board
// after a reload reaches them too.
type boardRef struct {
	board *model.Board

	// savedAt is when the board was last written from this process.
	savedAt time.Time
}

func (r *boardRef) FindCard(listID, cardID string) *model.Card {
	return r.board.FindCard(listID, cardID)
}

// Options configures the root model.
type Options struct {
	Store   store.Store
	Toggler *theme.Toggler
	Filter  search.Filter
	Logger  *log.Logger

	// Poller reloads the board when other processes change it. Optional.
	Poller *boardsync.Poller

	// Config and ConfigPath receive changes made in the settings view.
	// An empty ConfigPath keeps them in memory.
	Config     *model.AppConfig
	ConfigPath string

	// Now overrides the clock used for due badges.
	Now func() time.Time
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	ref          *boardRef
	manager      *checklist.Manager
	poller       *boardsync.Poller
	toggler      *theme.Toggler
	logger       *log.Logger
	keys         *keys.KeyMap
	boardView    boardview.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	cardForm     cardform.Model
	settings     settingsview.Model
	config       *model.AppConfig
	configPath   string
	ready        bool
	statusMsg    string
}

// New creates a new root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	toggler := opts.Toggler
	if toggler == nil {
		toggler = theme.NewToggler(opts.Store, theme.Light, logger)
	}

	ref := &boardRef{board: &model.Board{}}
	s := opts.Store
	save := func() error {
		if s == nil {
			return nil
		}
		ref.savedAt = time.Now()
		return s.SaveBoard(context.Background(), ref.board)
	}
	manager := checklist.NewManager(ref, save, logger)

	bv := boardview.New(k, opts.Filter, 80, 24)
	dv := detail.New(ref, manager, k, 80, 24)
	if opts.Now != nil {
		bv.SetClock(opts.Now)
		dv.SetClock(opts.Now)
	}

	return Model{
		currentView: ViewBoard,
		store:       s,
		ref:         ref,
		manager:     manager,
		poller:      opts.Poller,
		toggler:     toggler,
		logger:      logger,
		keys:        k,
		boardView:   bv,
		detail:      dv,
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		cardForm:    cardform.New(80, 24),
		settings:    settingsview.New(80, 24),
		config:      opts.Config,
		configPath:  opts.ConfigPath,
	}
}

// Board returns the board currently shown.
func (m Model) Board() *model.Board {
	return m.ref.board
}

// Init loads the board from the store and starts the poller.
func (m Model) Init() tea.Cmd {
	if m.poller == nil {
		return m.loadBoard()
	}
	return tea.Batch(m.loadBoard(), m.poller.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.boardView.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.cardForm.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case boardLoadedMsg:
		if msg.err != nil {
			m.logger.Error("loading board", "err", msg.err)
			m.statusMsg = "could not load board: " + msg.err.Error()
			return m, nil
		}
		m.ref.board = msg.board
		m.boardView.SetBoard(msg.board)
		return m, nil

	case boardsync.SyncResultMsg:
		m.applySync(msg)
		if m.poller == nil {
			return m, nil
		}
		return m, m.poller.WaitForNextResult()

	case boardview.OpenChecklistMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.Open(msg.ListID, msg.CardID)
		return m, nil

	case detail.ChangedMsg:
		m.boardView.Refresh()
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewBoard
		m.boardView.Refresh()
		return m, nil

	case cardform.CardCreatedMsg:
		m.currentView = ViewBoard
		m.createCard(msg.ListID, msg.Card)
		return m, nil

	case cardform.CardUpdatedMsg:
		m.currentView = ViewBoard
		m.updateCard(msg.Card)
		return m, nil

	case cardform.CardFormCancelMsg:
		m.currentView = ViewBoard
		return m, nil

	case settingsview.SettingsSavedMsg:
		m.currentView = ViewBoard
		m.applySettings(msg.Settings)
		return m, nil

	case settingsview.ConfigDoneMsg:
		m.currentView = ViewBoard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case tea.KeyMsg:
		m.statusMsg = ""
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturingInput reports whether a text field in the active view owns the
// keyboard, in which case single-letter shortcuts are passed through.
func (m Model) capturingInput() bool {
	switch m.currentView {
	case ViewBoard:
		return m.boardView.Searching()
	case ViewDetail:
		return m.detail.Editing()
	case ViewCommand, ViewCardCreate, ViewCardEdit, ViewSettings:
		return true
	}
	return false
}

// handleGlobalKey processes keys that work regardless of the active view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if m.currentView == ViewCommand && msg.String() == "esc" {
		m.currentView = m.previousView
		return nil, true
	}
	if m.capturingInput() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewBoard {
			return tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case "T":
		m.toggleTheme()
		return nil, true

	case "s":
		if m.currentView == ViewBoard {
			return m.openSettings(), true
		}

	case "n":
		if m.currentView == ViewBoard {
			return m.startCreateCard(), true
		}

	case "e":
		if m.currentView == ViewBoard {
			card, ok := m.boardView.SelectedCard()
			if ok {
				m.previousView = m.currentView
				m.currentView = ViewCardEdit
				return m.cardForm.StartEdit(card), true
			}
		}

	case "x":
		if m.currentView == ViewBoard {
			card, ok := m.boardView.SelectedCard()
			if ok {
				m.toggleCardDone(card.ListID, card.ID)
			}
			return nil, true
		}
	}
	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewCardCreate, ViewCardEdit:
		m.cardForm, cmd = m.cardForm.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Taskboard", ui.HeaderStatus(m.boardView.Query(), m.toggler.Mode()))
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBoard:
		return m.boardView.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewCardCreate, ViewCardEdit:
		return m.cardForm.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewBoard {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		if m.detail.Editing() {
			return "enter add | esc done"
		}
		return "a add | space check | d delete | D clear done | esc back"
	case ViewCardCreate, ViewCardEdit, ViewSettings:
		return "enter submit | esc cancel"
	default:
		if m.boardView.Searching() {
			return "type to filter | enter keep | esc clear"
		}
		return "q quit | ? help | / search | n new | e edit | x done | T theme | s settings"
	}
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd command.CommandMsg) tea.Cmd {
	switch cmd.Name {
	case "quit", "q":
		return tea.Quit
	case "theme":
		m.toggleTheme()
	case "search", "find":
		m.currentView = ViewBoard
		m.boardView.SetQuery(cmd.Arg)
	case "clear":
		m.boardView.ClearQuery()
	case "settings", "config":
		m.currentView = ViewBoard
		return m.openSettings()
	case "new", "card":
		if m.currentView == ViewBoard {
			return m.startCreateCard()
		}
	default:
		m.statusMsg = "unknown command: " + cmd.Name
	}
	return nil
}
