package economy

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/gear"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("gear already owned")
	ErrNotOwned          = errors.New("gear not owned")
	ErrUnknownGear       = errors.New("unknown gear")
	ErrUnknownFish       = errors.New("fish not in inventory")
)

// State is the persisted holdings blob
type State struct {
	Inventory      []fish.Fish `json:"inventory" yaml:"inventory"`
	Balance        int         `json:"balance" yaml:"balance"`
	OwnedGearIDs   []string    `json:"ownedGearIds" yaml:"ownedGearIds"`
	EquippedGearID string      `json:"equippedGearId" yaml:"equippedGearId"`
}

// Clone returns a deep copy
func (s State) Clone() State {
	s.Inventory = slices.Clone(s.Inventory)
	s.OwnedGearIDs = slices.Clone(s.OwnedGearIDs)
	return s
}

// Ledger is the sole mutator of balance and holdings
// Safe for concurrent use; the spectator feed reads while the loop writes
type Ledger struct {
	mu       sync.RWMutex
	catalog  *gear.Catalog
	state    State
	onChange func(State)
	logger   *slog.Logger
}

// NewLedger creates a ledger owning only the starter rod
func NewLedger(catalog *gear.Catalog, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	starter := catalog.Starter().ID
	return &Ledger{
		catalog: catalog,
		logger:  logger,
		state: State{
			OwnedGearIDs:   []string{starter},
			EquippedGearID: starter,
		},
	}
}

// OnChange registers fn to receive a copy after every mutation; call before use
func (l *Ledger) OnChange(fn func(State)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// State returns a copy of the holdings
func (l *Ledger) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Clone()
}

// Restore replaces holdings with a loaded blob, repairing references the catalog no longer knows
func (l *Ledger) Restore(s State) {
	s = s.Clone()
	starter := l.catalog.Starter().ID

	owned := []string{starter}
	for _, id := range s.OwnedGearIDs {
		if _, ok := l.catalog.Lookup(id); !ok {
			l.logger.Warn("dropping unknown gear from save", "id", id)
			continue
		}
		if !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	s.OwnedGearIDs = owned

	if !slices.Contains(owned, s.EquippedGearID) {
		s.EquippedGearID = starter
	}
	if s.Balance < 0 {
		s.Balance = 0
	}

	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// commit publishes the change outside the lock
func (l *Ledger) commit() {
	l.mu.RLock()
	fn := l.onChange
	snap := l.state.Clone()
	l.mu.RUnlock()
	if fn != nil {
		fn(snap)
	}
}

// FishCaught adds a landed fish; balance is only credited by a sale
func (l *Ledger) FishCaught(f fish.Fish) {
	l.mu.Lock()
	l.state.Inventory = append(l.state.Inventory, f)
	l.mu.Unlock()
	l.commit()
}

// SellFish removes one fish and credits its price
func (l *Ledger) SellFish(id string) (int, error) {
	l.mu.Lock()
	idx := slices.IndexFunc(l.state.Inventory, func(f fish.Fish) bool { return f.ID == id })
	if idx < 0 {
		l.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrUnknownFish, id)
	}
	price := l.state.Inventory[idx].Price
	l.state.Inventory = slices.Delete(l.state.Inventory, idx, idx+1)
	l.state.Balance += price
	l.mu.Unlock()

	l.logger.Debug("fish sold", "id", id, "price", price)
	l.commit()
	return price, nil
}

// SellAll empties the inventory and returns the gold credited
func (l *Ledger) SellAll() (int, error) {
	l.mu.Lock()
	total := fish.TotalValue(l.state.Inventory)
	count := len(l.state.Inventory)
	l.state.Inventory = nil
	l.state.Balance += total
	l.mu.Unlock()

	if count == 0 {
		return 0, nil
	}
	l.logger.Debug("inventory sold", "count", count, "total", total)
	l.commit()
	return total, nil
}

// BuyGear debits the price and adds the rod to owned gear
func (l *Ledger) BuyGear(id string) error {
	item, ok := l.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGear, id)
	}

	l.mu.Lock()
	if slices.Contains(l.state.OwnedGearIDs, id) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, id)
	}
	if l.state.Balance < item.Price {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientFunds, id, item.Price, l.state.Balance)
	}
	l.state.Balance -= item.Price
	l.state.OwnedGearIDs = append(l.state.OwnedGearIDs, id)
	l.mu.Unlock()

	l.logger.Info("gear purchased", "id", id, "price", item.Price)
	l.commit()
	return nil
}

// EquipGear selects an owned rod
func (l *Ledger) EquipGear(id string) error {
	if _, ok := l.catalog.Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGear, id)
	}

	l.mu.Lock()
	if !slices.Contains(l.state.OwnedGearIDs, id) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotOwned, id)
	}
	l.state.EquippedGearID = id
	l.mu.Unlock()

	l.commit()
	return nil
}

// EquippedGearID returns the selected rod id
func (l *Ledger) EquippedGearID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.EquippedGearID
}

// Owns reports whether id is among owned gear
func (l *Ledger) Owns(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.state.OwnedGearIDs, id)
}

// Balance returns the gold on hand
func (l *Ledger) Balance() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Balance
}
