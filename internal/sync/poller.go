// Package sync reloads the board in the background so the terminal UI
// picks up edits made by the CLI or the HTTP server against the same
// database.
package sync

import (
	"context"
	"encoding/json"
	"hash/fnv"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/taskboard/internal/model"
)

// SyncState represents the current state of the poller.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the poller's last known state.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// SyncResultMsg is a tea.Msg sent after every reload.
type SyncResultMsg struct {
	// Board is the reloaded board; nil when Changed is false or on error.
	Board *model.Board

	// Changed reports whether the board differs from the previous reload.
	Changed bool

	// StartedAt is when the load began. A receiver that saved after this
	// moment must discard Board, since it predates that save.
	StartedAt time.Time

	Error error
}

// BoardLoader reads the whole board.
type BoardLoader interface {
	LoadBoard(ctx context.Context) (*model.Board, error)
}

// fetchTimeout is the maximum time allowed for a single load.
const fetchTimeout = 10 * time.Second

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 5 * time.Second

// Poller reloads the board on a ticker and on demand.
type Poller struct {
	loader    BoardLoader
	interval  time.Duration
	logger    *log.Logger
	resultCh  chan SyncResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
	status    SyncStatus
	lastHash  uint64
	hasHash   bool
}

// New creates a Poller reading through loader every interval.
func New(loader BoardLoader, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		loader:    loader,
		interval:  interval,
		logger:    logger,
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start returns a tea.Cmd that starts the polling goroutine and waits for
// its first result. Call WaitForNextResult after handling each
// SyncResultMsg to keep listening.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.poll()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate reload. A pending trigger absorbs this one.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Status returns the poller's current state.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// poll runs the reload loop until Stop.
func (p *Poller) poll() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch()
		case <-p.triggerCh:
			p.fetch()
		}
	}
}

// fetch loads the board once and sends the result.
func (p *Poller) fetch() {
	p.setStatus(SyncRunning, nil)
	started := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	board, err := p.loader.LoadBoard(ctx)
	if err != nil {
		p.logger.Warn("reloading board", "err", err)
		p.setStatus(SyncError, err)
		p.sendResult(SyncResultMsg{StartedAt: started, Error: err})
		return
	}

	h, err := boardHash(board)
	if err != nil {
		p.setStatus(SyncError, err)
		p.sendResult(SyncResultMsg{StartedAt: started, Error: err})
		return
	}

	p.mu.Lock()
	changed := !p.hasHash || h != p.lastHash
	p.lastHash, p.hasHash = h, true
	p.mu.Unlock()

	p.setStatus(SyncIdle, nil)

	res := SyncResultMsg{Changed: changed, StartedAt: started}
	if changed {
		res.Board = board
	}
	if !p.sendResult(res) && changed {
		// Report the change again on the next fetch.
		p.mu.Lock()
		p.hasHash = false
		p.mu.Unlock()
	}
}

// boardHash fingerprints a board so unchanged reloads can be skipped.
func boardHash(b *model.Board) (uint64, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64(), nil
}

// setStatus updates the poller state.
func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// sendResult sends a SyncResultMsg on the result channel without blocking.
// It reports whether the message was queued.
func (p *Poller) sendResult(msg SyncResultMsg) bool {
	select {
	case p.resultCh <- msg:
		return true
	default:
		return false
	}
}

// waitForResult returns a tea.Cmd that waits for the next result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.stopCh:
			return nil
		}
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next reload.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
