package save

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/pixel-angler/core"
	"github.com/lixenwraith/pixel-angler/economy"
)

// Autosaver writes ledger changes off the game loop
// Bursts coalesce: only the newest pending state is written
type Autosaver struct {
	store  *Store
	logger *slog.Logger

	pending chan economy.State
	stop    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	once    sync.Once

	writes atomic.Int64
}

// NewAutosaver creates a stopped autosaver
func NewAutosaver(store *Store, logger *slog.Logger) *Autosaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Autosaver{
		store:   store,
		logger:  logger,
		pending: make(chan economy.State, 1),
		stop:    make(chan struct{}),
	}
}

// Name implements service.Service
func (a *Autosaver) Name() string {
	return "autosave"
}

// Dependencies implements service.Service
func (a *Autosaver) Dependencies() []string {
	return nil
}

// Init implements service.Service
func (a *Autosaver) Init(args ...any) error {
	return nil
}

// Start launches the writer goroutine
func (a *Autosaver) Start() error {
	if !a.running.CompareAndSwap(false, true) {
		return nil
	}
	a.wg.Add(1)
	core.Go(a.run)
	return nil
}

// Stop flushes the pending state and halts the writer; idempotent
func (a *Autosaver) Stop() error {
	a.once.Do(func() {
		close(a.stop)
		a.wg.Wait()
		a.flush()
	})
	return nil
}

// Queue replaces the pending state without blocking
func (a *Autosaver) Queue(state economy.State) {
	for {
		select {
		case a.pending <- state:
			return
		default:
		}
		select {
		case <-a.pending:
		default:
		}
	}
}

// Writes returns the number of completed saves
func (a *Autosaver) Writes() int64 {
	return a.writes.Load()
}

func (a *Autosaver) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.stop:
			return
		case state := <-a.pending:
			a.write(state)
		}
	}
}

func (a *Autosaver) flush() {
	select {
	case state := <-a.pending:
		a.write(state)
	default:
	}
}

func (a *Autosaver) write(state economy.State) {
	if err := a.store.Save(state); err != nil {
		a.logger.Error("autosave failed", "error", err)
		return
	}
	a.writes.Add(1)
	a.logger.Debug("ledger saved", "balance", state.Balance, "fish", len(state.Inventory))
}
